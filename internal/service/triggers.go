package service

import (
	"context"
	"fmt"

	"github.com/steveyegge/issueview/internal/config"
	"github.com/steveyegge/issueview/internal/types"
)

// ReportSourceData stores the data a source reported for a user and
// recomputes that user. A nil data clears the source's report.
func (s *Service) ReportSourceData(ctx context.Context, key types.SourceKey, data *types.SourceData) error {
	return s.do(ctx, "report source data", func() error {
		if err := s.store.Set(key, data); err != nil {
			return err
		}
		s.repo.UpdateIssues(key.UserID)
		return nil
	})
}

// AddUser registers a full user and computes its issues.
func (s *Service) AddUser(ctx context.Context, userID int) error {
	return s.do(ctx, "add user", func() error {
		if err := s.profiles.AddUser(userID); err != nil {
			return err
		}
		s.repo.UpdateIssues(userID)
		return nil
	})
}

// AddManagedProfile registers a managed profile of parent and computes its issues.
func (s *Service) AddManagedProfile(ctx context.Context, parent, userID int, running bool) error {
	return s.do(ctx, "add managed profile", func() error {
		if err := s.profiles.AddManagedProfile(parent, userID, running); err != nil {
			return err
		}
		s.repo.UpdateIssues(userID)
		return nil
	})
}

// ProfileStarted marks a managed profile as running and recomputes it.
func (s *Service) ProfileStarted(ctx context.Context, userID int) error {
	return s.do(ctx, "profile started", func() error {
		if err := s.profiles.SetRunning(userID, true); err != nil {
			return err
		}
		s.repo.UpdateIssues(userID)
		return nil
	})
}

// ProfileStopped marks a managed profile as stopped. Its issues stay computed
// but no longer count as active.
func (s *Service) ProfileStopped(ctx context.Context, userID int) error {
	return s.do(ctx, "profile stopped", func() error {
		return s.profiles.SetRunning(userID, false)
	})
}

// RemoveProfile removes a user (and its managed profiles when it is a parent),
// drops their source data, resets the repository and recomputes every
// remaining user.
func (s *Service) RemoveProfile(ctx context.Context, userID int) error {
	return s.do(ctx, "remove profile", func() error {
		removed := s.profiles.Remove(userID)
		if len(removed) == 0 {
			return fmt.Errorf("unknown user %d", userID)
		}
		for _, id := range removed {
			s.store.RemoveUser(id)
		}
		s.repo.Clear()
		s.updateAllLocked()
		s.logger.Info("removed profile", "user_id", userID, "removed", removed)
		return nil
	})
}

// ReloadConfig replaces the source configuration, resets the repository and
// recomputes every user.
func (s *Service) ReloadConfig(ctx context.Context, sources config.Reader) error {
	if sources == nil {
		return fmt.Errorf("source configuration is required")
	}
	return s.do(ctx, "reload config", func() error {
		s.sources = sources
		s.repo = s.newRepository()
		s.updateAllLocked()
		s.logger.Info("reloaded source configuration", "groups", len(sources.SourcesGroups()))
		return nil
	})
}
