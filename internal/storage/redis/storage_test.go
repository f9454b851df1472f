package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mkrall/hexfall/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.GuestPlayerTTL = time.Hour
	cfg.SessionTTL = time.Hour
	cfg.ChallengeTTL = time.Hour
	cfg.LeaderboardTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Player tests

func (s *StorageSuite) TestSaveAndGetPlayer() {
	player := &model.Player{
		ID:          "player-1",
		DisplayName: "Alice",
		IsGuest:     false,
		CreatedAt:   time.Now(),
	}

	err := s.storage.SavePlayer(s.ctx, player)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(player.ID, retrieved.ID)
	s.Equal(player.DisplayName, retrieved.DisplayName)
}

func (s *StorageSuite) TestGetPlayerNotFound() {
	_, err := s.storage.GetPlayer(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestDeletePlayer() {
	player := &model.Player{ID: "player-1", DisplayName: "Alice"}
	_ = s.storage.SavePlayer(s.ctx, player)

	err := s.storage.DeletePlayer(s.ctx, "player-1")
	s.Require().NoError(err)

	_, err = s.storage.GetPlayer(s.ctx, "player-1")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

func (s *StorageSuite) TestGuestPlayerTTL() {
	guestPlayer := &model.Player{
		ID:      "guest-1",
		IsGuest: true,
	}
	registeredPlayer := &model.Player{
		ID:      "registered-1",
		IsGuest: false,
	}

	_ = s.storage.SavePlayer(s.ctx, guestPlayer)
	_ = s.storage.SavePlayer(s.ctx, registeredPlayer)

	// Check that guest has TTL and registered doesn't
	guestTTL := s.mini.TTL(playerKey(guestPlayer.ID))
	registeredTTL := s.mini.TTL(playerKey(registeredPlayer.ID))

	s.True(guestTTL > 0, "Guest player should have TTL")
	s.Equal(time.Duration(0), registeredTTL, "Registered player should not have TTL")
}

// Registered player tests

func (s *StorageSuite) TestSaveAndGetRegisteredPlayer() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
		CreatedAt:    time.Now(),
	}

	err := s.storage.SaveRegisteredPlayer(s.ctx, rp)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRegisteredPlayer(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rp.Username, retrieved.Username)
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsername() {
	rp := &model.RegisteredPlayer{
		PlayerID:     "player-1",
		Username:     "alice",
		PasswordHash: "hash123",
	}
	_ = s.storage.SaveRegisteredPlayer(s.ctx, rp)

	retrieved, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("player-1", string(retrieved.PlayerID))
}

func (s *StorageSuite) TestGetRegisteredPlayerByUsernameNotFound() {
	_, err := s.storage.GetRegisteredPlayerByUsername(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Session tests

func (s *StorageSuite) TestSaveAndGetSession() {
	grid := model.NewGrid(5)
	cell := grid.CellByID("r2c2")
	cell.Letter = 'Q'
	cell.Placed = true
	cell.DoubleScore = true

	session := &model.GameSession{
		ID:       "session-1",
		PlayerID: "player-1",
		Mode:     model.ModeDaily,
		State:    model.SessionPlaying,
		Grid:     grid,
		Round:    4,
		Score:    120,
		RNGState: 87628868,
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Round, retrieved.Round)
	s.Equal(session.RNGState, retrieved.RNGState)

	// The grid survives the JSON round trip
	restored := retrieved.Grid.CellByID("r2c2")
	s.Require().NotNil(restored)
	s.Equal('Q', restored.Letter)
	s.True(restored.DoubleScore)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := &model.GameSession{ID: "session-1", PlayerID: "player-1", Grid: model.NewGrid(3)}
	_ = s.storage.SaveSession(s.ctx, session)

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestSessionTTL() {
	session := &model.GameSession{ID: "session-1", Grid: model.NewGrid(3)}
	_ = s.storage.SaveSession(s.ctx, session)

	ttl := s.mini.TTL(sessionKey(session.ID))
	s.True(ttl > 0, "Session should have TTL")
}

// Daily challenge tests

func (s *StorageSuite) TestCreateAndGetChallenge() {
	challenge := &model.DailyChallenge{
		Date:            "2025-03-14",
		Seed:            12345,
		StartingLetters: []rune{'H', 'E', 'X', 'F', 'A', 'L'},
	}

	created, err := s.storage.CreateChallenge(s.ctx, challenge)
	s.Require().NoError(err)
	s.Equal(uint32(12345), created.Seed)

	retrieved, err := s.storage.GetChallenge(s.ctx, "2025-03-14")
	s.Require().NoError(err)
	s.Equal(challenge.Seed, retrieved.Seed)
	s.Equal(challenge.StartingLetters, retrieved.StartingLetters)
}

func (s *StorageSuite) TestCreateChallengeKeepsFirstWrite() {
	first := &model.DailyChallenge{Date: "2025-03-14", Seed: 111}
	second := &model.DailyChallenge{Date: "2025-03-14", Seed: 222}

	_, err := s.storage.CreateChallenge(s.ctx, first)
	s.Require().NoError(err)

	stored, err := s.storage.CreateChallenge(s.ctx, second)
	s.Require().NoError(err)
	s.Equal(uint32(111), stored.Seed)
}

func (s *StorageSuite) TestGetChallengeNotFound() {
	_, err := s.storage.GetChallenge(s.ctx, "2025-01-01")
	s.ErrorIs(err, model.ErrChallengeNotFound)
}

func (s *StorageSuite) TestChallengeTTL() {
	challenge := &model.DailyChallenge{Date: "2025-03-14", Seed: 1}
	_, _ = s.storage.CreateChallenge(s.ctx, challenge)

	ttl := s.mini.TTL(challengeKey("2025-03-14"))
	s.True(ttl > 0, "Challenge should have TTL")
}

// Leaderboard tests

func (s *StorageSuite) entry(playerID model.PlayerID, score int) *model.LeaderboardEntry {
	return &model.LeaderboardEntry{
		Date:        "2025-03-14",
		PlayerID:    playerID,
		DisplayName: string(playerID),
		Score:       score,
		UpdatedAt:   time.Now(),
	}
}

func (s *StorageSuite) TestSaveAndGetEntry() {
	err := s.storage.SaveEntry(s.ctx, s.entry("player-1", 100), 0)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetEntry(s.ctx, "2025-03-14", "player-1")
	s.Require().NoError(err)
	s.Equal(100, retrieved.Score)
	s.Equal(int64(1), retrieved.Version)
}

func (s *StorageSuite) TestGetEntryNotFound() {
	_, err := s.storage.GetEntry(s.ctx, "2025-03-14", "nonexistent")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

func (s *StorageSuite) TestSaveEntryVersionConflict() {
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-1", 100), 0)

	err := s.storage.SaveEntry(s.ctx, s.entry("player-1", 90), 0)
	s.ErrorIs(err, model.ErrVersionConflict)

	err = s.storage.SaveEntry(s.ctx, s.entry("player-1", 150), 1)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetEntry(s.ctx, "2025-03-14", "player-1")
	s.Require().NoError(err)
	s.Equal(150, retrieved.Score)
	s.Equal(int64(2), retrieved.Version)
}

func (s *StorageSuite) TestTopEntriesOrdersByScore() {
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-1", 50), 0)
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-2", 150), 0)
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-3", 100), 0)

	top, err := s.storage.TopEntries(s.ctx, "2025-03-14", 2)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("player-2"), top[0].PlayerID)
	s.Equal(model.PlayerID("player-3"), top[1].PlayerID)
}

func (s *StorageSuite) TestTopEntriesReflectsUpdatedScore() {
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-1", 50), 0)
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-2", 100), 0)

	// player-1 improves past player-2; the index follows the new score
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-1", 200), 1)

	top, err := s.storage.TopEntries(s.ctx, "2025-03-14", 10)
	s.Require().NoError(err)
	s.Require().Len(top, 2)
	s.Equal(model.PlayerID("player-1"), top[0].PlayerID)
	s.Equal(200, top[0].Score)
}

func (s *StorageSuite) TestTopEntriesEmptyDate() {
	top, err := s.storage.TopEntries(s.ctx, "2024-01-01", 10)
	s.Require().NoError(err)
	s.Empty(top)
}

func (s *StorageSuite) TestEntryRank() {
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-1", 50), 0)
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-2", 150), 0)
	_ = s.storage.SaveEntry(s.ctx, s.entry("player-3", 100), 0)

	rank, err := s.storage.EntryRank(s.ctx, "2025-03-14", "player-2")
	s.Require().NoError(err)
	s.Equal(0, rank)

	rank, err = s.storage.EntryRank(s.ctx, "2025-03-14", "player-1")
	s.Require().NoError(err)
	s.Equal(2, rank)
}

func (s *StorageSuite) TestEntryRankNotFound() {
	_, err := s.storage.EntryRank(s.ctx, "2025-03-14", "nonexistent")
	s.ErrorIs(err, model.ErrEntryNotFound)
}

// Dictionary tests

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"apple", "banana", "cherry"}

	err := s.storage.SaveDictionaryWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved) // Order may differ (SET)
}

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplacesExisting() {
	words1 := []string{"apple", "banana"}
	words2 := []string{"cherry", "date", "elderberry"}

	_ = s.storage.SaveDictionaryWords(s.ctx, words1)
	_ = s.storage.SaveDictionaryWords(s.ctx, words2)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words2, retrieved)
}

func (s *StorageSuite) TestDictionaryNoTTL() {
	words := []string{"apple"}
	_ = s.storage.SaveDictionaryWords(s.ctx, words)

	ttl := s.mini.TTL(dictionaryKey())
	s.Equal(time.Duration(0), ttl, "Dictionary should not have TTL")
}

func (s *StorageSuite) TestSaveAndGetBlacklistWords() {
	words := []string{"bad", "worse"}

	err := s.storage.SaveBlacklistWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBlacklistWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}

func (s *StorageSuite) TestGetBlacklistWordsEmptyByDefault() {
	retrieved, err := s.storage.GetBlacklistWords(s.ctx)
	s.Require().NoError(err)
	s.Empty(retrieved)
}
