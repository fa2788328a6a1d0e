// Package service owns the issue repository and serializes every call to it.
//
// The repository is not safe for concurrent use. Service holds a single
// serialization slot; every operation acquires it (honoring context
// cancellation), runs against the repository and its collaborators, and
// releases it. External triggers such as a source reporting new data or a
// profile being removed are translated into repository updates here.
package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/semaphore"

	"github.com/steveyegge/issueview/internal/config"
	"github.com/steveyegge/issueview/internal/deduplication"
	"github.com/steveyegge/issueview/internal/issues"
	"github.com/steveyegge/issueview/internal/profiles"
	"github.com/steveyegge/issueview/internal/sourcedata"
	"github.com/steveyegge/issueview/internal/types"
)

// Config holds the collaborators of a Service
type Config struct {
	Sources  config.Reader
	Store    *sourcedata.Store
	Profiles *profiles.Directory

	// Deduplicator is nil when the capability level has no deduplication
	Deduplicator deduplication.Deduplicator

	// TieBreak orders equal-severity issues (optional)
	TieBreak issues.CompareFunc

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// Service serializes access to the issue repository.
type Service struct {
	sem      *semaphore.Weighted
	sources  config.Reader
	store    *sourcedata.Store
	profiles *profiles.Directory
	dedup    deduplication.Deduplicator
	tieBreak issues.CompareFunc
	logger   *slog.Logger
	repo     *issues.Repository
}

// New creates a Service. The repository starts empty; call UpdateAll to
// compute every known user.
func New(cfg *Config) (*Service, error) {
	if cfg.Sources == nil {
		return nil, fmt.Errorf("source configuration is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("source data store is required")
	}
	if cfg.Profiles == nil {
		return nil, fmt.Errorf("profile directory is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Service{
		sem:      semaphore.NewWeighted(1),
		sources:  cfg.Sources,
		store:    cfg.Store,
		profiles: cfg.Profiles,
		dedup:    cfg.Deduplicator,
		tieBreak: cfg.TieBreak,
		logger:   logger,
	}
	s.repo = s.newRepository()
	return s, nil
}

func (s *Service) newRepository() *issues.Repository {
	opts := []issues.Option{issues.WithLogger(s.logger)}
	if s.tieBreak != nil {
		opts = append(opts, issues.WithTieBreak(s.tieBreak))
	}
	return issues.NewRepository(s.sources, s.store, s.profiles, s.dedup, opts...)
}

// do runs fn while holding the serialization slot.
func (s *Service) do(ctx context.Context, operation string, fn func() error) error {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("failed to acquire repository for %s: %w", operation, err)
	}
	defer s.sem.Release(1)
	return fn()
}

// UpdateAll recomputes every user in the profile directory.
func (s *Service) UpdateAll(ctx context.Context) error {
	return s.do(ctx, "update all", func() error {
		s.updateAllLocked()
		return nil
	})
}

func (s *Service) updateAllLocked() {
	groups := s.profiles.Groups()
	for _, g := range groups {
		s.repo.UpdateIssuesForGroup(g)
	}
	s.logger.Debug("updated all users", "groups", len(groups))
}

// UpdateIssues recomputes one user.
func (s *Service) UpdateIssues(ctx context.Context, userID int) error {
	return s.do(ctx, "update", func() error {
		s.repo.UpdateIssues(userID)
		return nil
	})
}

// UpdateGroup recomputes the parent user and every managed profile of parent.
func (s *Service) UpdateGroup(ctx context.Context, parent int) error {
	return s.do(ctx, "update group", func() error {
		g, err := s.profiles.Group(parent)
		if err != nil {
			return err
		}
		s.repo.UpdateIssuesForGroup(g)
		return nil
	})
}

// ActiveIssues returns the deduplicated active issues of parent's profile
// group, most urgent first.
func (s *Service) ActiveIssues(ctx context.Context, parent int) ([]*types.IssueInfo, error) {
	var result []*types.IssueInfo
	err := s.do(ctx, "active issues", func() error {
		g, err := s.profiles.Group(parent)
		if err != nil {
			return err
		}
		result = s.repo.ActiveIssuesDedupedSortedDesc(g)
		return nil
	})
	return result, err
}

// CountActiveLoggableIssues counts the loggable active issues of parent's
// profile group.
func (s *Service) CountActiveLoggableIssues(ctx context.Context, parent int) (int, error) {
	var count int
	err := s.do(ctx, "count", func() error {
		g, err := s.profiles.Group(parent)
		if err != nil {
			return err
		}
		count = s.repo.CountActiveLoggableIssues(g)
		return nil
	})
	return count, err
}

// IssuesForUser returns the issue keys of one user.
func (s *Service) IssuesForUser(ctx context.Context, userID int) ([]types.IssueKey, error) {
	var keys []types.IssueKey
	err := s.do(ctx, "issues for user", func() error {
		keys = s.repo.IssuesForUser(userID)
		return nil
	})
	return keys, err
}

// Dump writes the repository state to w.
func (s *Service) Dump(ctx context.Context, w io.Writer) error {
	return s.do(ctx, "dump", func() error {
		return s.repo.Dump(w)
	})
}

// Clear drops every computed list.
func (s *Service) Clear(ctx context.Context) error {
	return s.do(ctx, "clear", func() error {
		s.repo.Clear()
		return nil
	})
}

// Groups returns the profile group of every full user, ordered by parent id.
func (s *Service) Groups(ctx context.Context) ([]types.UserProfileGroup, error) {
	var groups []types.UserProfileGroup
	err := s.do(ctx, "groups", func() error {
		groups = s.profiles.Groups()
		return nil
	})
	return groups, err
}
