package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Severity is the urgency of an issue. Greater values are more urgent.
type Severity int

const (
	SeverityUnspecified     Severity = 100
	SeverityInformation     Severity = 200
	SeverityRecommendation  Severity = 300
	SeverityCriticalWarning Severity = 400
)

// IsKnown reports whether s is one of the declared severity levels.
// Unknown levels are still ordered numerically.
func (s Severity) IsKnown() bool {
	switch s {
	case SeverityUnspecified, SeverityInformation, SeverityRecommendation, SeverityCriticalWarning:
		return true
	}
	return false
}

func (s Severity) String() string {
	switch s {
	case SeverityUnspecified:
		return "unspecified"
	case SeverityInformation:
		return "information"
	case SeverityRecommendation:
		return "recommendation"
	case SeverityCriticalWarning:
		return "critical_warning"
	default:
		return strconv.Itoa(int(s))
	}
}

// ParseSeverity parses a severity name case-insensitively.
// Accepts "info" and "critical" as shorthands and raw integers.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unspecified":
		return SeverityUnspecified, nil
	case "information", "info":
		return SeverityInformation, nil
	case "recommendation":
		return SeverityRecommendation, nil
	case "critical_warning", "critical":
		return SeverityCriticalWarning, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return SeverityUnspecified, fmt.Errorf("invalid severity: %q", s)
	}
	return Severity(n), nil
}

// Issue is a single issue as reported by a source.
type Issue struct {
	ID       string   `yaml:"id" json:"id"`
	Title    string   `yaml:"title" json:"title"`
	Summary  string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	Severity Severity `yaml:"severity" json:"severity"`

	// DeduplicationID marks issues that describe the same underlying problem
	// across sources of one deduplication group. Empty means never deduplicated.
	DeduplicationID string `yaml:"deduplication_id,omitempty" json:"deduplication_id,omitempty"`
}

// Validate checks if the issue has valid field values
func (i *Issue) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("issue id is required")
	}
	if len(i.Title) == 0 {
		return fmt.Errorf("title is required for issue %s", i.ID)
	}
	if len(i.Title) > 500 {
		return fmt.Errorf("title must be 500 characters or less (got %d)", len(i.Title))
	}
	if i.Severity < 0 {
		return fmt.Errorf("severity cannot be negative (got %d)", i.Severity)
	}
	return nil
}

// SourceData is the last payload a source reported for one user.
type SourceData struct {
	Issues []Issue `yaml:"issues" json:"issues"`
}

// Validate checks every issue and rejects duplicate issue ids.
func (d *SourceData) Validate() error {
	seen := make(map[string]bool, len(d.Issues))
	for i := range d.Issues {
		if err := d.Issues[i].Validate(); err != nil {
			return err
		}
		if seen[d.Issues[i].ID] {
			return fmt.Errorf("duplicate issue id: %s", d.Issues[i].ID)
		}
		seen[d.Issues[i].ID] = true
	}
	return nil
}

// SourceType describes how a source contributes data
type SourceType string

const (
	// SourceTypeStatic sources are rendered from configuration and never report data
	SourceTypeStatic SourceType = "static"
	// SourceTypeDynamic sources report entries and issues
	SourceTypeDynamic SourceType = "dynamic"
	// SourceTypeIssueOnly sources report issues only
	SourceTypeIssueOnly SourceType = "issue_only"
)

// IsValid checks if the source type value is valid
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeStatic, SourceTypeDynamic, SourceTypeIssueOnly:
		return true
	}
	return false
}

// SourceProfile describes which user profiles a source reports for
type SourceProfile string

const (
	ProfilePrimary SourceProfile = "primary"
	ProfileAll     SourceProfile = "all"
)

// IsValid checks if the profile value is valid
func (p SourceProfile) IsValid() bool {
	switch p {
	case ProfilePrimary, ProfileAll:
		return true
	}
	return false
}

// Source is the configuration of one issue source.
type Source struct {
	ID                 string
	Type               SourceType
	Profile            SourceProfile
	Loggable           bool
	DeduplicationGroup string
}

// IsExternal reports whether the source reports its own data.
func (s *Source) IsExternal() bool {
	return s.Type != SourceTypeStatic
}

// SupportsManagedProfiles reports whether the source reports for managed profiles.
func (s *Source) SupportsManagedProfiles() bool {
	return s.Profile == ProfileAll
}

// IsLoggable reports whether issues from this source count toward logged metrics.
func (s *Source) IsLoggable() bool {
	return s.Loggable
}

// Validate checks if the source has valid field values
func (s *Source) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("source id is required")
	}
	if !s.Type.IsValid() {
		return fmt.Errorf("invalid source type for %s: %q", s.ID, s.Type)
	}
	if !s.Profile.IsValid() {
		return fmt.Errorf("invalid source profile for %s: %q", s.ID, s.Profile)
	}
	return nil
}

// SourcesGroup is a named collection of sources. Grouping is for
// configuration only.
type SourcesGroup struct {
	ID      string
	Title   string
	Sources []*Source
}

// SourceKey identifies the data one source reported for one user.
type SourceKey struct {
	SourceID string
	UserID   int
}

// KeyOf builds a SourceKey.
func KeyOf(sourceID string, userID int) SourceKey {
	return SourceKey{SourceID: sourceID, UserID: userID}
}

func (k SourceKey) String() string {
	return fmt.Sprintf("%s@%d", k.SourceID, k.UserID)
}

// IssueKey identifies one issue without its payload.
type IssueKey struct {
	SourceID string
	IssueID  string
	UserID   int
}

func (k IssueKey) String() string {
	return fmt.Sprintf("%s/%s@%d", k.SourceID, k.IssueID, k.UserID)
}

// IssueInfo binds one reported issue to the source, group and user it came
// from. It is immutable once built.
type IssueInfo struct {
	issue  Issue
	source *Source
	group  *SourcesGroup
	userID int
}

// NewIssueInfo builds an IssueInfo. The issue is copied.
func NewIssueInfo(issue Issue, source *Source, group *SourcesGroup, userID int) *IssueInfo {
	return &IssueInfo{issue: issue, source: source, group: group, userID: userID}
}

func (i *IssueInfo) Issue() Issue { return i.issue }
func (i *IssueInfo) Source() *Source { return i.source }
func (i *IssueInfo) Group() *SourcesGroup { return i.group }
func (i *IssueInfo) UserID() int { return i.userID }
func (i *IssueInfo) Severity() Severity { return i.issue.Severity }
func (i *IssueInfo) DeduplicationID() string { return i.issue.DeduplicationID }

// Key returns the identifying key of the issue.
func (i *IssueInfo) Key() IssueKey {
	return IssueKey{SourceID: i.source.ID, IssueID: i.issue.ID, UserID: i.userID}
}

func (i *IssueInfo) String() string {
	return fmt.Sprintf("IssueInfo{key=%s, group=%s, severity=%s, title=%q, dedupId=%q}",
		i.Key(), i.group.ID, i.issue.Severity, i.issue.Title, i.issue.DeduplicationID)
}

// UserProfileGroup is a parent user plus its managed profiles.
type UserProfileGroup struct {
	ParentUserID int

	// ManagedUserIDs lists every managed profile of the parent
	ManagedUserIDs []int

	// RunningManagedUserIDs is the subset of ManagedUserIDs currently running
	RunningManagedUserIDs []int
}

// AllUserIDs returns the parent followed by every managed profile.
func (g UserProfileGroup) AllUserIDs() []int {
	ids := make([]int, 0, 1+len(g.ManagedUserIDs))
	ids = append(ids, g.ParentUserID)
	return append(ids, g.ManagedUserIDs...)
}

// Contains reports whether userID is the parent or one of its managed profiles.
func (g UserProfileGroup) Contains(userID int) bool {
	for _, id := range g.AllUserIDs() {
		if id == userID {
			return true
		}
	}
	return false
}

// Validate checks that running profiles are managed profiles and that the
// parent is not listed as its own managed profile.
func (g UserProfileGroup) Validate() error {
	if g.ParentUserID < 0 {
		return fmt.Errorf("parent user id cannot be negative (got %d)", g.ParentUserID)
	}
	managed := make(map[int]bool, len(g.ManagedUserIDs))
	for _, id := range g.ManagedUserIDs {
		if id == g.ParentUserID {
			return fmt.Errorf("user %d cannot be a managed profile of itself", id)
		}
		managed[id] = true
	}
	for _, id := range g.RunningManagedUserIDs {
		if !managed[id] {
			return fmt.Errorf("running profile %d is not a managed profile of %d", id, g.ParentUserID)
		}
	}
	return nil
}
