package issues

import (
	"cmp"

	"github.com/steveyegge/issueview/internal/types"
)

// CompareFunc orders two issues. Negative means a sorts first.
type CompareFunc func(a, b *types.IssueInfo) int

// BySeverityDesc orders issues by descending severity. Issues of equal
// severity compare equal.
func BySeverityDesc(a, b *types.IssueInfo) int {
	return cmp.Compare(b.Severity(), a.Severity())
}

// ByKey orders issues by source id, issue id and user id. It is meant as a
// tie-break after BySeverityDesc when display order must not depend on
// configuration order.
func ByKey(a, b *types.IssueInfo) int {
	ka, kb := a.Key(), b.Key()
	return cmp.Or(
		cmp.Compare(ka.SourceID, kb.SourceID),
		cmp.Compare(ka.IssueID, kb.IssueID),
		cmp.Compare(ka.UserID, kb.UserID),
	)
}

// severityThen composes BySeverityDesc with an optional tie-break into one
// ordering.
func severityThen(tieBreak CompareFunc) CompareFunc {
	if tieBreak == nil {
		return BySeverityDesc
	}
	return func(a, b *types.IssueInfo) int {
		return cmp.Or(BySeverityDesc(a, b), tieBreak(a, b))
	}
}
