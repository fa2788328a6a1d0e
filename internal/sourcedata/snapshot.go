package sourcedata

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/steveyegge/issueview/internal/types"
)

// SnapshotFile represents the structure of a source data YAML file
type SnapshotFile struct {
	Reports []ReportConfig `yaml:"reports"`
}

// ReportConfig is the data one source reported for one user.
type ReportConfig struct {
	Source string        `yaml:"source"`
	User   int           `yaml:"user"`
	Issues []IssueConfig `yaml:"issues"`
}

// IssueConfig is one issue in a report. Severity accepts a level name or an
// integer. Issues without an id get a random one.
type IssueConfig struct {
	ID              string `yaml:"id"`
	Title           string `yaml:"title"`
	Summary         string `yaml:"summary"`
	Severity        string `yaml:"severity"`
	DeduplicationID string `yaml:"deduplication_id"`
}

// Report pairs a source key with the data reported for it.
type Report struct {
	Key  types.SourceKey
	Data *types.SourceData
}

// LoadSnapshotFile loads reports from a YAML file.
func LoadSnapshotFile(path string) ([]Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading data file: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot parses source data YAML into reports.
func ParseSnapshot(data []byte) ([]Report, error) {
	var file SnapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing data file: %w", err)
	}
	return file.ToReports()
}

// ToReports converts a SnapshotFile to validated reports.
func (f *SnapshotFile) ToReports() ([]Report, error) {
	reports := make([]Report, 0, len(f.Reports))
	seen := make(map[types.SourceKey]bool, len(f.Reports))
	for _, rc := range f.Reports {
		if rc.Source == "" {
			return nil, fmt.Errorf("report source is required")
		}
		if rc.User < 0 {
			return nil, fmt.Errorf("report user cannot be negative (got %d)", rc.User)
		}
		key := types.KeyOf(rc.Source, rc.User)
		if seen[key] {
			return nil, fmt.Errorf("duplicate report for %s", key)
		}
		seen[key] = true

		sd := &types.SourceData{Issues: make([]types.Issue, 0, len(rc.Issues))}
		for _, ic := range rc.Issues {
			issue, err := ic.toIssue()
			if err != nil {
				return nil, fmt.Errorf("report %s: %w", key, err)
			}
			sd.Issues = append(sd.Issues, issue)
		}
		if err := sd.Validate(); err != nil {
			return nil, fmt.Errorf("report %s: %w", key, err)
		}
		reports = append(reports, Report{Key: key, Data: sd})
	}
	return reports, nil
}

func (ic IssueConfig) toIssue() (types.Issue, error) {
	severity := types.SeverityUnspecified
	if ic.Severity != "" {
		s, err := types.ParseSeverity(ic.Severity)
		if err != nil {
			return types.Issue{}, err
		}
		severity = s
	}
	id := ic.ID
	if id == "" {
		id = uuid.New().String()
	}
	return types.Issue{
		ID:              id,
		Title:           ic.Title,
		Summary:         ic.Summary,
		Severity:        severity,
		DeduplicationID: ic.DeduplicationID,
	}, nil
}

// Apply stores every report in s.
func Apply(s *Store, reports []Report) error {
	for _, r := range reports {
		if err := s.Set(r.Key, r.Data); err != nil {
			return err
		}
	}
	return nil
}
