package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mkrall/hexfall/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
	s.Require().NoError(s.app.LoadTestDictionary())
}

func (s *IntegrationSuite) createGuest(name string) *model.Player {
	session, err := s.app.AuthService.CreateGuestPlayer(s.ctx, name)
	s.Require().NoError(err)
	return &session.Player
}

// Test: Classic session from creation through rounds to abandonment
func (s *IntegrationSuite) TestClassicSessionLifecycle() {
	player := s.createGuest("Alice")

	s.app.MockRandom.QueueString("CLASSIC00001")
	session, err := s.app.GameController.CreateSession(s.ctx, player.ID, 0)
	s.Require().NoError(err)

	s.Equal(model.SessionID("CLASSIC00001"), session.ID)
	s.Equal(model.ModeClassic, session.Mode)
	s.Equal(model.SessionPlaying, session.State)
	s.Equal(1, session.Round)
	s.Equal(6, session.Grid.LetterCount())

	// Rounds two and three drop three letters each
	for round := 2; round <= 3; round++ {
		updated, placement, err := s.app.GameController.AdvanceRound(s.ctx, session.ID, player.ID)
		s.Require().NoError(err)
		s.Equal(round, updated.Round)
		s.Len(placement.Paths, model.TilesForRound(round))
		s.Empty(placement.Unplaced)
	}

	fetched, err := s.app.GameController.GetSession(s.ctx, session.ID, player.ID)
	s.Require().NoError(err)
	s.Equal(6+3+3, fetched.Grid.LetterCount())

	s.Require().NoError(s.app.GameController.AbandonSession(s.ctx, session.ID, player.ID))

	fetched, err = s.app.GameController.GetSession(s.ctx, session.ID, player.ID)
	s.Require().NoError(err)
	s.Equal(model.SessionOver, fetched.State)

	_, _, err = s.app.GameController.AdvanceRound(s.ctx, session.ID, player.ID)
	s.ErrorIs(err, model.ErrGameOver)
}

// Test: Sessions are private to their owner
func (s *IntegrationSuite) TestSessionOwnership() {
	alice := s.createGuest("Alice")
	bob := s.createGuest("Bob")

	s.app.MockRandom.QueueString("CLASSIC00001")
	session, err := s.app.GameController.CreateSession(s.ctx, alice.ID, 0)
	s.Require().NoError(err)

	_, err = s.app.GameController.GetSession(s.ctx, session.ID, bob.ID)
	s.ErrorIs(err, model.ErrNotSessionOwner)

	_, _, err = s.app.GameController.AdvanceRound(s.ctx, session.ID, bob.ID)
	s.ErrorIs(err, model.ErrNotSessionOwner)
}

// Test: Every player starting today's daily gets an identical board and
// identical drops, round after round
func (s *IntegrationSuite) TestDailySessionsAreShared() {
	alice := s.createGuest("Alice")
	bob := s.createGuest("Bob")

	s.app.MockRandom.QueueString("DAILYSESS001", "DAILYSESS002")

	first, err := s.app.GameController.CreateDailySession(s.ctx, alice.ID)
	s.Require().NoError(err)
	second, err := s.app.GameController.CreateDailySession(s.ctx, bob.ID)
	s.Require().NoError(err)

	s.Equal(s.app.DailyService.Today(), first.DailyDate)
	s.Equal(first.RNGState, second.RNGState)
	s.assertGridsEqual(first.Grid, second.Grid)

	// The scripted and generated drops stay in lockstep
	for round := 2; round <= 4; round++ {
		updatedFirst, _, err := s.app.GameController.AdvanceRound(s.ctx, first.ID, alice.ID)
		s.Require().NoError(err)
		updatedSecond, _, err := s.app.GameController.AdvanceRound(s.ctx, second.ID, bob.ID)
		s.Require().NoError(err)

		s.Equal(updatedFirst.State, updatedSecond.State)
		s.Equal(updatedFirst.RNGState, updatedSecond.RNGState)
		s.assertGridsEqual(updatedFirst.Grid, updatedSecond.Grid)

		if !updatedFirst.IsPlaying() {
			break
		}
	}
}

// Test: Daily board matches the stored challenge payload
func (s *IntegrationSuite) TestDailySessionUsesChallengePayload() {
	player := s.createGuest("Alice")

	s.app.MockRandom.QueueString("DAILYSESS001")
	session, err := s.app.GameController.CreateDailySession(s.ctx, player.ID)
	s.Require().NoError(err)

	challenge, err := s.app.DailyService.GetOrCreate(s.ctx, s.app.DailyService.Today())
	s.Require().NoError(err)

	var boardLetters []rune
	session.Grid.ForEach(func(c *model.Cell) {
		if !c.IsEmpty() {
			boardLetters = append(boardLetters, c.Letter)
		}
	})
	s.ElementsMatch(challenge.StartingLetters, boardLetters)
}

// Test: Leaderboard round-trip through the wired services
func (s *IntegrationSuite) TestLeaderboardRoundTrip() {
	date := s.app.DailyService.Today()

	entries, err := s.app.LeaderboardService.Top(s.ctx, date, 10)
	s.Require().NoError(err)
	s.Empty(entries)

	saved, err := s.app.LeaderboardService.Submit(s.ctx, &model.LeaderboardEntry{
		Date:        date,
		PlayerID:    "player-1",
		DisplayName: "Alice",
		Score:       40,
		WordCount:   3,
		LongestWord: "TRAIN",
	})
	s.Require().NoError(err)
	s.Equal(40, saved.Score)

	// A lower score never displaces the stored best
	kept, err := s.app.LeaderboardService.Submit(s.ctx, &model.LeaderboardEntry{
		Date:     date,
		PlayerID: "player-1",
		Score:    12,
	})
	s.Require().NoError(err)
	s.Equal(40, kept.Score)

	_, err = s.app.LeaderboardService.Submit(s.ctx, &model.LeaderboardEntry{
		Date:        date,
		PlayerID:    "player-2",
		DisplayName: "Bob",
		Score:       55,
		WordCount:   4,
		LongestWord: "STONE",
	})
	s.Require().NoError(err)

	entries, err = s.app.LeaderboardService.Top(s.ctx, date, 10)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(model.PlayerID("player-2"), entries[0].PlayerID)
	s.Equal(model.PlayerID("player-1"), entries[1].PlayerID)

	entry, rank, err := s.app.LeaderboardService.PlayerEntry(s.ctx, date, "player-1")
	s.Require().NoError(err)
	s.Equal(40, entry.Score)
	s.Equal(2, rank)
}

func (s *IntegrationSuite) assertGridsEqual(a, b *model.Grid) {
	s.Require().Equal(a.Size, b.Size)
	a.ForEach(func(cell *model.Cell) {
		other := b.CellByID(cell.ID)
		s.Require().NotNil(other)
		s.Equal(cell.Letter, other.Letter, "letter at %s", cell.ID)
		s.Equal(cell.DoubleScore, other.DoubleScore, "double flag at %s", cell.ID)
	})
}
