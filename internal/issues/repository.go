package issues

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/steveyegge/issueview/internal/config"
	"github.com/steveyegge/issueview/internal/deduplication"
	"github.com/steveyegge/issueview/internal/types"
)

// ProfileDirectory answers whether a user id belongs to a managed profile.
type ProfileDirectory interface {
	IsManagedProfile(userID int) bool
}

// Repository holds, per user, the sorted and deduplicated list of active
// issues.
type Repository struct {
	collector *Collector
	profiles  ProfileDirectory
	dedup     deduplication.Deduplicator
	compare   CompareFunc
	logger    *slog.Logger

	// userID -> sorted and deduplicated issues
	byUser map[int][]*types.IssueInfo
}

// Option configures a Repository.
type Option func(*Repository)

// WithTieBreak orders issues of equal severity with tieBreak. Without it,
// equal-severity issues keep their collection order.
func WithTieBreak(tieBreak CompareFunc) Option {
	return func(r *Repository) {
		r.compare = severityThen(tieBreak)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRepository creates an empty Repository.
//
// dedup may be nil when the platform has no deduplication capability; issues
// are then sorted but never deduplicated.
func NewRepository(
	cfg config.Reader,
	data SourceDataReader,
	profiles ProfileDirectory,
	dedup deduplication.Deduplicator,
	opts ...Option,
) *Repository {
	r := &Repository{
		collector: NewCollector(cfg, data),
		profiles:  profiles,
		dedup:     dedup,
		compare:   BySeverityDesc,
		logger:    slog.Default(),
		byUser:    make(map[int][]*types.IssueInfo),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UpdateIssues recomputes the issues of userID. Call it after any state change
// that can affect the user's issues.
func (r *Repository) UpdateIssues(userID int) {
	r.updateIssues(userID, r.profiles.IsManagedProfile(userID))
}

// UpdateIssuesForGroup recomputes the issues of the parent user and of every
// managed profile in the group, running or not.
func (r *Repository) UpdateIssuesForGroup(group types.UserProfileGroup) {
	r.updateIssues(group.ParentUserID, false)
	for _, userID := range group.ManagedUserIDs {
		r.updateIssues(userID, true)
	}
}

func (r *Repository) updateIssues(userID int, isManagedProfile bool) {
	issues := r.collector.Collect(userID, isManagedProfile)
	collected := len(issues)

	slices.SortStableFunc(issues, r.compare)
	issues, stats := deduplication.Run(r.dedup, issues)

	// The list is complete before it is installed.
	r.byUser[userID] = issues

	r.logger.Debug("updated issues",
		"user_id", userID,
		"managed_profile", isManagedProfile,
		"collected", collected,
		"kept", stats.UniqueCount,
		"duplicates", stats.DuplicateCount,
		"dedup_available", r.dedup != nil)
}

// ActiveIssuesDedupedSortedDesc returns the issues of the parent user and of
// every running managed profile in the group, sorted by descending severity.
// Each user's list was deduplicated when it was computed; the merged list is
// not deduplicated again.
func (r *Repository) ActiveIssuesDedupedSortedDesc(group types.UserProfileGroup) []*types.IssueInfo {
	issues := r.activeIssues(group)
	slices.SortStableFunc(issues, r.compare)
	return issues
}

// CountActiveLoggableIssues counts the active issues of the group whose source
// is loggable.
func (r *Repository) CountActiveLoggableIssues(group types.UserProfileGroup) int {
	count := 0
	for _, info := range r.activeIssues(group) {
		if info.Source().IsLoggable() {
			count++
		}
	}
	return count
}

// IssuesForUser returns the keys of the current issues of userID, most urgent
// first.
func (r *Repository) IssuesForUser(userID int) []types.IssueKey {
	issues := r.byUser[userID]
	keys := make([]types.IssueKey, 0, len(issues))
	for _, info := range issues {
		keys = append(keys, info.Key())
	}
	return keys
}

// UserIDs returns the ids of every user with a computed list, ascending.
func (r *Repository) UserIDs() []int {
	return slices.Sorted(maps.Keys(r.byUser))
}

// activeIssues concatenates the lists of the parent and running managed
// profiles into a new slice.
func (r *Repository) activeIssues(group types.UserProfileGroup) []*types.IssueInfo {
	issues := slices.Clone(r.byUser[group.ParentUserID])
	if issues == nil {
		issues = []*types.IssueInfo{}
	}
	for _, userID := range group.RunningManagedUserIDs {
		issues = append(issues, r.byUser[userID]...)
	}
	return issues
}
