// Package issues maintains the aggregated issue view: for every user, the
// issues reported by all external sources, sorted by descending severity and
// deduplicated.
//
// The Repository is a rebuildable in-memory projection. UpdateIssues
// recomputes one user's list from the raw source data and replaces it whole;
// queries only read the stored lists and never recompute.
//
// A Repository is not safe for concurrent use. The owning service must
// serialize every call (see package service).
package issues
