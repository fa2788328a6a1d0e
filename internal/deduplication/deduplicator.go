package deduplication

import (
	"fmt"
	"slices"

	"github.com/steveyegge/issueview/internal/types"
)

// Deduplicator removes issues judged to be duplicates of a more urgent issue
// reported for the same user.
//
// Deduplication runs once per user after the user's issues have been sorted
// by descending severity. Implementations may only remove entries: the
// surviving issues keep their relative order, so the result stays sorted.
// Running Deduplicate on an already deduplicated list must return it unchanged.
//
// Example usage:
//
//	dedup := deduplication.ForCapabilityLevel(level, deduplication.DefaultConfig())
//	if dedup != nil {
//	    issues = dedup.Deduplicate(issues)
//	}
type Deduplicator interface {
	// Deduplicate reduces issues in place and returns the shortened slice.
	// The returned slice shares the backing array of issues.
	Deduplicate(issues []*types.IssueInfo) []*types.IssueInfo
}

// Func adapts an ordinary function to the Deduplicator interface.
type Func func(issues []*types.IssueInfo) []*types.IssueInfo

// Deduplicate calls f(issues).
func (f Func) Deduplicate(issues []*types.IssueInfo) []*types.IssueInfo {
	return f(issues)
}

// KeyDeduplicator collapses issues that share a deduplication id within one
// deduplication group onto the first, most urgent occurrence.
//
// Issues without a deduplication id are never removed. Deduplication keys are
// scoped to a single user.
type KeyDeduplicator struct{}

// NewKeyDeduplicator creates a KeyDeduplicator.
func NewKeyDeduplicator() *KeyDeduplicator {
	return &KeyDeduplicator{}
}

type dedupKey struct {
	group  string
	id     string
	userID int
}

// Deduplicate implements Deduplicator.
func (d *KeyDeduplicator) Deduplicate(issues []*types.IssueInfo) []*types.IssueInfo {
	seen := make(map[dedupKey]bool)
	return slices.DeleteFunc(issues, func(info *types.IssueInfo) bool {
		id := info.DeduplicationID()
		if id == "" {
			return false
		}
		key := dedupKey{group: info.Source().DeduplicationGroup, id: id, userID: info.UserID()}
		if seen[key] {
			return true
		}
		seen[key] = true
		return false
	})
}

// Stats describes one deduplication pass.
type Stats struct {
	// TotalCandidates is the number of issues passed in
	TotalCandidates int `json:"total_candidates"`

	// UniqueCount is the number of issues kept
	UniqueCount int `json:"unique_count"`

	// DuplicateCount is the number of issues removed
	DuplicateCount int `json:"duplicate_count"`
}

// Validate checks if the stats have consistent values
func (s Stats) Validate() error {
	if s.TotalCandidates < 0 || s.UniqueCount < 0 || s.DuplicateCount < 0 {
		return fmt.Errorf("stats cannot be negative (got %+v)", s)
	}
	if s.UniqueCount+s.DuplicateCount != s.TotalCandidates {
		return fmt.Errorf("stats.total_candidates (%d) does not match unique (%d) + duplicates (%d)",
			s.TotalCandidates, s.UniqueCount, s.DuplicateCount)
	}
	return nil
}

// Run applies d to issues and reports what it removed. A nil d leaves issues
// untouched.
func Run(d Deduplicator, issues []*types.IssueInfo) ([]*types.IssueInfo, Stats) {
	total := len(issues)
	if d != nil {
		issues = d.Deduplicate(issues)
	}
	return issues, Stats{
		TotalCandidates: total,
		UniqueCount:     len(issues),
		DuplicateCount:  total - len(issues),
	}
}
