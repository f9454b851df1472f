package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	sessions          map[model.SessionID]*model.GameSession
	challenges        map[string]*model.DailyChallenge
	entries           map[entryKey]*model.LeaderboardEntry
	dictionaryWords   []string
	blacklistWords    []string
}

type entryKey struct {
	date     string
	playerID model.PlayerID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		sessions:          make(map[model.SessionID]*model.GameSession),
		challenges:        make(map[string]*model.DailyChallenge),
		entries:           make(map[entryKey]*model.LeaderboardEntry),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Game session operations

func (s *Storage) SaveSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *Storage) GetSession(ctx context.Context, id model.SessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return session, nil
}

func (s *Storage) DeleteSession(ctx context.Context, id model.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Daily challenge operations

func (s *Storage) CreateChallenge(ctx context.Context, challenge *model.DailyChallenge) (*model.DailyChallenge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.challenges[challenge.Date]; ok {
		return existing, nil
	}
	s.challenges[challenge.Date] = challenge
	return challenge, nil
}

func (s *Storage) GetChallenge(ctx context.Context, date string) (*model.DailyChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	challenge, ok := s.challenges[date]
	if !ok {
		return nil, model.ErrChallengeNotFound
	}
	return challenge, nil
}

// Leaderboard operations

func (s *Storage) SaveEntry(ctx context.Context, entry *model.LeaderboardEntry, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := entryKey{date: entry.Date, playerID: entry.PlayerID}
	existing, ok := s.entries[key]
	if !ok {
		if expectedVersion != 0 {
			return model.ErrVersionConflict
		}
	} else if existing.Version != expectedVersion {
		return model.ErrVersionConflict
	}

	entry.Version = expectedVersion + 1
	s.entries[key] = entry
	return nil
}

func (s *Storage) GetEntry(ctx context.Context, date string, playerID model.PlayerID) (*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[entryKey{date: date, playerID: playerID}]
	if !ok {
		return nil, model.ErrEntryNotFound
	}
	return entry, nil
}

func (s *Storage) TopEntries(ctx context.Context, date string, limit int) ([]*model.LeaderboardEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ranked := s.rankedEntries(date)
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

func (s *Storage) EntryRank(ctx context.Context, date string, playerID model.PlayerID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i, entry := range s.rankedEntries(date) {
		if entry.PlayerID == playerID {
			return i, nil
		}
	}
	return 0, model.ErrEntryNotFound
}

// rankedEntries returns the date's entries by descending score. Ties order
// by descending player id, matching the redis sorted-set backend.
func (s *Storage) rankedEntries(date string) []*model.LeaderboardEntry {
	var ranked []*model.LeaderboardEntry
	for key, entry := range s.entries {
		if key.date == date {
			ranked = append(ranked, entry)
		}
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].PlayerID > ranked[j].PlayerID
	})
	return ranked
}

// Dictionary operations

func (s *Storage) GetDictionaryWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dictionaryWords == nil {
		return nil, model.ErrDictionaryNotLoaded
	}
	result := make([]string, len(s.dictionaryWords))
	copy(result, s.dictionaryWords)
	return result, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dictionaryWords = make([]string, len(words))
	copy(s.dictionaryWords, words)
	return nil
}

func (s *Storage) GetBlacklistWords(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]string, len(s.blacklistWords))
	copy(result, s.blacklistWords)
	return result, nil
}

func (s *Storage) SaveBlacklistWords(ctx context.Context, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklistWords = make([]string, len(words))
	copy(s.blacklistWords, words)
	return nil
}
