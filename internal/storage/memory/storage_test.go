package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mkrall/hexfall/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
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
	session := &model.GameSession{
		ID:       "session-1",
		PlayerID: "player-1",
		Mode:     model.ModeClassic,
		State:    model.SessionPlaying,
		Grid:     model.NewGrid(5),
		Round:    3,
		Score:    42,
	}

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Round, retrieved.Round)
	s.Equal(session.Score, retrieved.Score)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	session := &model.GameSession{ID: "session-1", PlayerID: "player-1", Grid: model.NewGrid(5)}
	_ = s.storage.SaveSession(s.ctx, session)

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

// Daily challenge tests

func (s *StorageSuite) TestCreateAndGetChallenge() {
	challenge := &model.DailyChallenge{
		Date:            "2025-03-14",
		Seed:            12345,
		StartingLetters: []rune{'A', 'B', 'C', 'D', 'E', 'F'},
	}

	created, err := s.storage.CreateChallenge(s.ctx, challenge)
	s.Require().NoError(err)
	s.Equal(challenge.Seed, created.Seed)

	retrieved, err := s.storage.GetChallenge(s.ctx, "2025-03-14")
	s.Require().NoError(err)
	s.Equal(challenge.Seed, retrieved.Seed)
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

	// A stale writer still expecting version 0 must be refused
	err := s.storage.SaveEntry(s.ctx, s.entry("player-1", 90), 0)
	s.ErrorIs(err, model.ErrVersionConflict)

	err = s.storage.SaveEntry(s.ctx, s.entry("player-1", 150), 1)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetEntry(s.ctx, "2025-03-14", "player-1")
	s.Require().NoError(err)
	s.Equal(150, retrieved.Score)
	s.Equal(int64(2), retrieved.Version)
}

func (s *StorageSuite) TestSaveEntryMissingWithNonZeroVersion() {
	err := s.storage.SaveEntry(s.ctx, s.entry("player-1", 100), 3)
	s.ErrorIs(err, model.ErrVersionConflict)
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
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetBlacklistWords() {
	words := []string{"bad", "worse"}

	err := s.storage.SaveBlacklistWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetBlacklistWords(s.ctx)
	s.Require().NoError(err)
	s.Equal(words, retrieved)
}

func (s *StorageSuite) TestGetBlacklistWordsEmptyByDefault() {
	retrieved, err := s.storage.GetBlacklistWords(s.ctx)
	s.Require().NoError(err)
	s.Empty(retrieved)
}
