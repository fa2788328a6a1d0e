// Package deduplication removes duplicate issues from a user's sorted issue list.
//
// # Overview
//
// Several sources may report the same underlying problem. A source declares a
// deduplication group in configuration and tags each issue it reports with a
// deduplication id. Within one user, issues that share both the group and the
// id are collapsed onto the first occurrence in the list. Because the list is
// sorted by descending severity before deduplication runs, the survivor is the
// most urgent report.
//
// # Contract
//
//   - Input is sorted by descending severity.
//   - Entries are only removed, never reordered.
//   - A second pass over the output removes nothing.
//   - Issues without a deduplication id are always kept.
//
// # Capability gating
//
// Deduplication only exists from capability level LevelDeduplication onward.
// The gate is applied once, when the repository is built:
//
//	cfg, err := deduplication.ConfigFromEnv()
//	if err != nil {
//	    return err
//	}
//	dedup := deduplication.ForCapabilityLevel(level, cfg)
//	repo := issues.NewRepository(configReader, sourceStore, profileDir, dedup)
//
// A nil Deduplicator means issues are sorted but never deduplicated. The
// repository's query surface behaves the same either way.
//
// # Custom strategies
//
// Any function with the right shape can be injected through Func:
//
//	byTitle := deduplication.Func(func(in []*types.IssueInfo) []*types.IssueInfo {
//	    seen := map[string]bool{}
//	    return slices.DeleteFunc(in, func(i *types.IssueInfo) bool {
//	        t := i.Issue().Title
//	        if seen[t] {
//	            return true
//	        }
//	        seen[t] = true
//	        return false
//	    })
//	})
package deduplication
