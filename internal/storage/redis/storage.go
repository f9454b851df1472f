package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	if ttl > 0 {
		return s.client.Set(ctx, key, data, ttl).Err()
	}
	return s.client.Set(ctx, key, data, 0).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Game session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, sessionKey(session.ID), data, s.cfg.SessionTTL).Err()
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSessionNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// Daily challenge operations

func (s *Storage) CreateChallenge(ctx context.Context, challenge *model.DailyChallenge) (*model.DailyChallenge, error) {
	data, err := json.Marshal(challenge)
	if err != nil {
		return nil, err
	}

	// First writer wins; everyone else reads the stored challenge back
	set, err := s.client.SetNX(ctx, challengeKey(challenge.Date), data, s.cfg.ChallengeTTL).Result()
	if err != nil {
		return nil, err
	}
	if !set {
		return s.GetChallenge(ctx, challenge.Date)
	}
	return challenge, nil
}

func (s *Storage) GetChallenge(ctx context.Context, date string) (*model.DailyChallenge, error) {
	data, err := s.client.Get(ctx, challengeKey(date)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrChallengeNotFound
		}
		return nil, err
	}

	var challenge model.DailyChallenge
	if err := json.Unmarshal(data, &challenge); err != nil {
		return nil, err
	}
	return &challenge, nil
}

// Leaderboard operations

func (s *Storage) SaveEntry(ctx context.Context, entry *model.LeaderboardEntry, expectedVersion int64) error {
	key := entryKey(entry.Date, entry.PlayerID)
	indexKey := leaderboardIndexKey(entry.Date)

	txf := func(tx *redis.Tx) error {
		current := int64(0)
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			var existing model.LeaderboardEntry
			if err := json.Unmarshal(data, &existing); err != nil {
				return err
			}
			current = existing.Version
		}

		if current != expectedVersion {
			return model.ErrVersionConflict
		}

		entry.Version = expectedVersion + 1
		payload, err := json.Marshal(entry)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.cfg.LeaderboardTTL)
			pipe.ZAdd(ctx, indexKey, redis.Z{
				Score:  float64(entry.Score),
				Member: string(entry.PlayerID),
			})
			pipe.Expire(ctx, indexKey, s.cfg.LeaderboardTTL)
			return nil
		})
		return err
	}

	err := s.client.Watch(ctx, txf, key)
	if errors.Is(err, redis.TxFailedErr) {
		// Someone wrote between our read and write; the caller rereads and retries
		return model.ErrVersionConflict
	}
	return err
}

func (s *Storage) GetEntry(ctx context.Context, date string, playerID model.PlayerID) (*model.LeaderboardEntry, error) {
	data, err := s.client.Get(ctx, entryKey(date, playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrEntryNotFound
		}
		return nil, err
	}

	var entry model.LeaderboardEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *Storage) TopEntries(ctx context.Context, date string, limit int) ([]*model.LeaderboardEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit) - 1
	}

	members, err := s.client.ZRevRange(ctx, leaderboardIndexKey(date), 0, stop).Result()
	if err != nil {
		return nil, err
	}
	if len(members) == 0 {
		return []*model.LeaderboardEntry{}, nil
	}

	keys := make([]string, len(members))
	for i, member := range members {
		keys[i] = entryKey(date, model.PlayerID(member))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*model.LeaderboardEntry, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Entry may have expired ahead of the index
		}
		var entry model.LeaderboardEntry
		if err := json.Unmarshal([]byte(val.(string)), &entry); err != nil {
			continue // Skip invalid data
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

func (s *Storage) EntryRank(ctx context.Context, date string, playerID model.PlayerID) (int, error) {
	rank, err := s.client.ZRevRank(ctx, leaderboardIndexKey(date), string(playerID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, model.ErrEntryNotFound
		}
		return 0, err
	}
	return int(rank), nil
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	key := dictionaryKey()

	// Check if dictionary exists
	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, model.ErrDictionaryNotLoaded
	}

	// Get all words from the set
	words, err := s.client.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	return words, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	return s.saveWordSet(ctx, dictionaryKey(), words)
}

func (s *Storage) GetBlacklistWords(ctx context.Context) ([]string, error) {
	// A missing blacklist is just empty
	return s.client.SMembers(ctx, blacklistKey()).Result()
}

func (s *Storage) SaveBlacklistWords(ctx context.Context, words []string) error {
	return s.saveWordSet(ctx, blacklistKey(), words)
}

func (s *Storage) saveWordSet(ctx context.Context, key string, words []string) error {
	// Delete the existing set and add new words atomically
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)

	if len(words) > 0 {
		// Convert []string to []interface{} for SAdd
		members := make([]interface{}, len(words))
		for i, w := range words {
			members[i] = w
		}
		pipe.SAdd(ctx, key, members...)
	}

	_, err := pipe.Exec(ctx)
	return err
}
