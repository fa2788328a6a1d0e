package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/steveyegge/issueview/internal/types"
)

// Reader exposes the static source configuration. Groups and sources are
// returned in configuration order and must not be modified by callers.
type Reader interface {
	SourcesGroups() []*types.SourcesGroup
}

// SourcesFile represents the structure of a sources YAML file
type SourcesFile struct {
	Groups []GroupConfig `yaml:"groups"`
}

// GroupConfig defines one source group in the config file.
type GroupConfig struct {
	ID      string         `yaml:"id"`
	Title   string         `yaml:"title"`
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines one source in the config file.
type SourceConfig struct {
	ID      string `yaml:"id"`
	Type    string `yaml:"type"`
	Profile string `yaml:"profile"`

	// Loggable defaults to true when omitted
	Loggable *bool `yaml:"loggable,omitempty"`

	DeduplicationGroup string `yaml:"deduplication_group,omitempty"`
}

// Sources is the validated, immutable source configuration.
type Sources struct {
	groups []*types.SourcesGroup
	byID   map[string]*types.Source
}

// NewSources validates groups and builds a Sources. Source ids must be unique
// across all groups.
func NewSources(groups []*types.SourcesGroup) (*Sources, error) {
	s := &Sources{
		groups: groups,
		byID:   make(map[string]*types.Source),
	}
	groupIDs := make(map[string]bool, len(groups))
	for _, group := range groups {
		if group.ID == "" {
			return nil, fmt.Errorf("group id is required")
		}
		if groupIDs[group.ID] {
			return nil, fmt.Errorf("duplicate group id: %s", group.ID)
		}
		groupIDs[group.ID] = true

		for _, src := range group.Sources {
			if err := src.Validate(); err != nil {
				return nil, fmt.Errorf("group %s: %w", group.ID, err)
			}
			if _, exists := s.byID[src.ID]; exists {
				return nil, fmt.Errorf("duplicate source id: %s", src.ID)
			}
			s.byID[src.ID] = src
		}
	}
	return s, nil
}

// SourcesGroups implements Reader.
func (s *Sources) SourcesGroups() []*types.SourcesGroup {
	return s.groups
}

// Source looks up a source by id.
func (s *Sources) Source(id string) (*types.Source, bool) {
	src, ok := s.byID[id]
	return src, ok
}

// LoadSourcesFile loads source configuration from a YAML file.
func LoadSourcesFile(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sources file: %w", err)
	}
	return ParseSources(data)
}

// ParseSources parses source configuration YAML.
func ParseSources(data []byte) (*Sources, error) {
	var file SourcesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing sources file: %w", err)
	}
	return file.ToSources()
}

// ToSources converts a SourcesFile to validated Sources.
func (f *SourcesFile) ToSources() (*Sources, error) {
	groups := make([]*types.SourcesGroup, 0, len(f.Groups))
	for _, gc := range f.Groups {
		group := &types.SourcesGroup{
			ID:      gc.ID,
			Title:   gc.Title,
			Sources: make([]*types.Source, 0, len(gc.Sources)),
		}
		for _, sc := range gc.Sources {
			group.Sources = append(group.Sources, sc.toSource())
		}
		groups = append(groups, group)
	}
	return NewSources(groups)
}

func (sc SourceConfig) toSource() *types.Source {
	loggable := true
	if sc.Loggable != nil {
		loggable = *sc.Loggable
	}
	profile := types.SourceProfile(sc.Profile)
	if sc.Profile == "" {
		profile = types.ProfilePrimary
	}
	return &types.Source{
		ID:                 sc.ID,
		Type:               types.SourceType(sc.Type),
		Profile:            profile,
		Loggable:           loggable,
		DeduplicationGroup: sc.DeduplicationGroup,
	}
}
