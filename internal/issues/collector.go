package issues

import (
	"github.com/steveyegge/issueview/internal/config"
	"github.com/steveyegge/issueview/internal/types"
)

// SourceDataReader reads the last data a source reported for a user.
type SourceDataReader interface {
	Get(key types.SourceKey) (*types.SourceData, bool)
}

// Collector flattens the raw data of every eligible source into issue entries.
type Collector struct {
	config config.Reader
	data   SourceDataReader
}

// NewCollector creates a Collector over the given configuration and raw data.
func NewCollector(cfg config.Reader, data SourceDataReader) *Collector {
	return &Collector{config: cfg, data: data}
}

// Collect returns one entry per issue reported for userID, in configuration
// order: group by group, source by source, issue by issue.
//
// Static sources are skipped, as are sources without managed profile support
// when userID is a managed profile. A source that never reported contributes
// nothing. The result is never nil.
func (c *Collector) Collect(userID int, isManagedProfile bool) []*types.IssueInfo {
	issues := []*types.IssueInfo{}
	for _, group := range c.config.SourcesGroups() {
		for _, src := range group.Sources {
			if !src.IsExternal() {
				continue
			}
			if isManagedProfile && !src.SupportsManagedProfiles() {
				continue
			}
			issues = c.appendSourceIssues(issues, src, group, userID)
		}
	}
	return issues
}

func (c *Collector) appendSourceIssues(issues []*types.IssueInfo, src *types.Source, group *types.SourcesGroup, userID int) []*types.IssueInfo {
	data, ok := c.data.Get(types.KeyOf(src.ID, userID))
	if !ok || data == nil {
		return issues
	}
	for _, issue := range data.Issues {
		issues = append(issues, types.NewIssueInfo(issue, src, group, userID))
	}
	return issues
}
