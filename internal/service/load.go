package service

import (
	"fmt"
	"log/slog"

	"github.com/steveyegge/issueview/internal/config"
	"github.com/steveyegge/issueview/internal/deduplication"
	"github.com/steveyegge/issueview/internal/profiles"
	"github.com/steveyegge/issueview/internal/sourcedata"
)

// Load builds a Service from runtime configuration. It reads the sources,
// users and data files named by cfg, gates deduplication on the capability
// level and computes every user.
func Load(cfg config.Config, logger *slog.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.SourcesFile == "" {
		return nil, fmt.Errorf("sources file is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	sources, err := config.LoadSourcesFile(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}

	dir := profiles.NewDirectory()
	if cfg.UsersFile != "" {
		dir, err = profiles.LoadUsersFile(cfg.UsersFile)
		if err != nil {
			return nil, err
		}
	}

	store := sourcedata.NewStore()
	if cfg.DataFile != "" {
		reports, err := sourcedata.LoadSnapshotFile(cfg.DataFile)
		if err != nil {
			return nil, err
		}
		if err := sourcedata.Apply(store, reports); err != nil {
			return nil, fmt.Errorf("applying source data: %w", err)
		}
		// Users that only appear in the snapshot are treated as full users.
		for _, key := range store.Keys() {
			if _, known := dir.ParentOf(key.UserID); !known {
				if err := dir.AddUser(key.UserID); err != nil {
					return nil, err
				}
			}
		}
	}

	dedup := deduplication.ForCapabilityLevel(cfg.CapabilityLevel, cfg.Dedup)
	logger.Info("building issue repository",
		"capability_level", cfg.CapabilityLevel,
		"dedup_available", dedup != nil,
		"groups", len(sources.SourcesGroups()),
		"reports", store.Len())

	svc, err := New(&Config{
		Sources:      sources,
		Store:        store,
		Profiles:     dir,
		Deduplicator: dedup,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}
	svc.updateAllLocked()
	return svc, nil
}
