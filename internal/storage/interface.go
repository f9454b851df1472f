package storage

import (
	"context"

	"github.com/mkrall/hexfall/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Game session operations
	SaveSession(ctx context.Context, session *model.GameSession) error
	GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error)
	DeleteSession(ctx context.Context, id model.SessionID) error

	// Daily challenge operations. CreateChallenge only writes when no
	// challenge exists for the date yet; concurrent creators all read back
	// the same stored challenge.
	CreateChallenge(ctx context.Context, challenge *model.DailyChallenge) (*model.DailyChallenge, error)
	GetChallenge(ctx context.Context, date string) (*model.DailyChallenge, error)

	// Leaderboard operations. SaveEntry writes only when the stored entry
	// still carries the given version, returning model.ErrVersionConflict
	// otherwise.
	SaveEntry(ctx context.Context, entry *model.LeaderboardEntry, expectedVersion int64) error
	GetEntry(ctx context.Context, date string, playerID model.PlayerID) (*model.LeaderboardEntry, error)
	TopEntries(ctx context.Context, date string, limit int) ([]*model.LeaderboardEntry, error)
	EntryRank(ctx context.Context, date string, playerID model.PlayerID) (int, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
	GetBlacklistWords(ctx context.Context) ([]string, error)
	SaveBlacklistWords(ctx context.Context, words []string) error
}
