package leaderboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mkrall/hexfall/internal/dependencies/clock"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/storage"
)

const (
	submitAttempts = 3
	retryBackoff   = 5 * time.Millisecond

	defaultTopLimit = 10
	maxTopLimit     = 100
)

// Service maintains the per-date daily challenge leaderboards
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new LeaderboardService
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Submit records the entry unless the player already holds a better score
// for the date. Concurrent submissions race through versioned writes: on a
// version conflict the current entry is reread and the write retried.
func (s *Service) Submit(ctx context.Context, entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error) {
	var lastErr error
	for attempt := 0; attempt < submitAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(retryBackoff)
		}

		version := int64(0)
		existing, err := s.storage.GetEntry(ctx, entry.Date, entry.PlayerID)
		switch {
		case err == nil:
			if existing.Score >= entry.Score {
				return existing, nil
			}
			version = existing.Version
		case errors.Is(err, model.ErrEntryNotFound):
		default:
			return nil, err
		}

		entry.UpdatedAt = s.clock.Now()
		if err := s.storage.SaveEntry(ctx, entry, version); err != nil {
			if errors.Is(err, model.ErrVersionConflict) {
				lastErr = err
				continue
			}
			return nil, err
		}

		s.logger.Info("leaderboard entry recorded",
			slog.String("date", entry.Date),
			slog.String("player_id", string(entry.PlayerID)),
			slog.Int("score", entry.Score),
		)
		return entry, nil
	}

	return nil, lastErr
}

// Top returns the date's highest entries, best first
func (s *Service) Top(ctx context.Context, date string, limit int) ([]*model.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	if limit > maxTopLimit {
		limit = maxTopLimit
	}
	return s.storage.TopEntries(ctx, date, limit)
}

// PlayerEntry returns the player's entry for the date and their 1-based rank
func (s *Service) PlayerEntry(ctx context.Context, date string, playerID model.PlayerID) (*model.LeaderboardEntry, int, error) {
	entry, err := s.storage.GetEntry(ctx, date, playerID)
	if err != nil {
		return nil, 0, err
	}

	rank, err := s.storage.EntryRank(ctx, date, playerID)
	if err != nil {
		return nil, 0, err
	}

	return entry, rank + 1, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Submit(ctx context.Context, entry *model.LeaderboardEntry) (*model.LeaderboardEntry, error)
	Top(ctx context.Context, date string, limit int) ([]*model.LeaderboardEntry, error)
	PlayerEntry(ctx context.Context, date string, playerID model.PlayerID) (*model.LeaderboardEntry, int, error)
}

var _ ServiceInterface = (*Service)(nil)
