package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mkrall/hexfall/internal/dependencies/clock"
	"github.com/mkrall/hexfall/internal/dependencies/random"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/daily"
	"github.com/mkrall/hexfall/internal/services/dictionary"
	"github.com/mkrall/hexfall/internal/services/flood"
	"github.com/mkrall/hexfall/internal/services/gravity"
	"github.com/mkrall/hexfall/internal/services/leaderboard"
	"github.com/mkrall/hexfall/internal/services/letters"
	"github.com/mkrall/hexfall/internal/services/scoring"
	"github.com/mkrall/hexfall/internal/storage"
)

const (
	defaultGridSize = 5
	minGridSize     = 3
	maxGridSize     = 11
	sessionIDLength = 12
	idAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Controller manages session state and round flow
type Controller struct {
	storage            storage.Storage
	gravityService     *gravity.Service
	floodService       *flood.Service
	lettersService     *letters.Service
	scoringService     *scoring.Service
	dictionaryService  *dictionary.Service
	dailyService       *daily.Service
	leaderboardService *leaderboard.Service
	clock              clock.Clock
	random             random.Random
	logger             *slog.Logger
}

// NewController creates a new game Controller
func NewController(
	storage storage.Storage,
	gravityService *gravity.Service,
	floodService *flood.Service,
	lettersService *letters.Service,
	scoringService *scoring.Service,
	dictionaryService *dictionary.Service,
	dailyService *daily.Service,
	leaderboardService *leaderboard.Service,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:            storage,
		gravityService:     gravityService,
		floodService:       floodService,
		lettersService:     lettersService,
		scoringService:     scoringService,
		dictionaryService:  dictionaryService,
		dailyService:       dailyService,
		leaderboardService: leaderboardService,
		clock:              clock,
		random:             random,
		logger:             logger,
	}
}

// CreateSession starts a classic-mode session: a fresh board with randomly
// chosen double-score cells, seeded with adaptively drawn starting tiles
func (c *Controller) CreateSession(ctx context.Context, playerID model.PlayerID, gridSize int) (*model.GameSession, error) {
	if gridSize == 0 {
		gridSize = defaultGridSize
	}
	if gridSize < minGridSize || gridSize > maxGridSize || gridSize%2 == 0 {
		return nil, model.ErrInvalidGridSize
	}
	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	// One seed more than the board is wide: fills out the bottom without
	// crowding smaller boards.
	grid := model.NewGridWithDoubleCells(gridSize, gridSize/2+1, c.random.Intn)
	starting := c.lettersService.SupplyAdaptive(gridSize+1, grid, c.random)
	placement, err := c.floodService.PlaceScattered(grid, starting, c.random)
	if err != nil {
		return nil, err
	}
	seedBoard(placement)

	session := c.newSession(playerID, model.ModeClassic, placement.Grid)
	if err := c.saveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("mode", string(session.Mode)),
		slog.Int("grid_size", gridSize),
	)

	return session, nil
}

// CreateDailySession starts a session against today's shared challenge. The
// board layout, starting tiles, and every subsequent drop derive from the
// challenge payload, so all players face an identical game.
func (c *Controller) CreateDailySession(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error) {
	if _, err := c.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}

	challenge, err := c.dailyService.GetOrCreate(ctx, c.dailyService.Today())
	if err != nil {
		return nil, err
	}

	// Resume the challenge generator where payload generation left off; the
	// double-cell draws advance it, and the state after them is what each
	// session persists. Every client walks the same sequence.
	rng := random.NewLCG(challenge.RNGState)
	grid := model.NewGridWithDoubleCells(defaultGridSize, defaultGridSize/2+1, rng.Intn)
	placement, err := c.floodService.Place(grid, model.FallingBatch(challenge.StartingLetters))
	if err != nil {
		return nil, err
	}
	seedBoard(placement)

	session := c.newSession(playerID, model.ModeDaily, placement.Grid)
	session.DailyDate = challenge.Date
	session.RNGState = rng.State()
	if err := c.saveSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("mode", string(session.Mode)),
		slog.String("daily_date", challenge.Date),
	)

	return session, nil
}

// AdvanceRound runs one round: settle leftovers from the previous round, drop
// the next batch of letters, and check whether the board has sealed shut. The
// returned placement carries the descent paths and any unplaced letters.
func (c *Controller) AdvanceRound(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, *model.Placement, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.PlayerID != playerID {
		return nil, nil, model.ErrNotSessionOwner
	}
	if !session.IsPlaying() {
		return nil, nil, model.ErrGameOver
	}

	nextRound := session.Round + 1

	// The engine steps all work on clones; the session is only touched once
	// every step has succeeded, so a consistency fault leaves it stored as it
	// was.
	grid, err := c.gravityService.Consolidate(session.Grid)
	if err != nil {
		return nil, nil, err
	}
	grid.ClearTurnFlags()

	batch, rngState, err := c.supplyRound(ctx, session, nextRound, grid)
	if err != nil {
		return nil, nil, err
	}

	placement, err := c.placeBatch(grid, batch, session.Mode)
	if err != nil {
		return nil, nil, err
	}

	session.Round = nextRound
	session.Grid = placement.Grid
	session.LastUnplaced = len(placement.Unplaced)
	session.RNGState = rngState
	if GameOver(placement.Grid, len(placement.Unplaced)) {
		session.State = model.SessionOver
		c.submitResult(ctx, session)
	}
	if err := c.saveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("round advanced",
		slog.String("session_id", string(session.ID)),
		slog.Int("round", session.Round),
		slog.Int("dropped", len(batch)),
		slog.Int("unplaced", session.LastUnplaced),
		slog.String("state", string(session.State)),
	)

	return session, placement, nil
}

// SubmitWord scores a chain of cells as a word. The chain must be valid, in
// the dictionary, not blacklisted, and not already scored this session. On
// acceptance the cells are cleared and the survivors settle into the gap; a
// rejected submission changes nothing.
func (c *Controller) SubmitWord(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, cellIDs []model.CellID) (*model.GameSession, *model.ScoredWord, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.PlayerID != playerID {
		return nil, nil, model.ErrNotSessionOwner
	}
	if !session.IsPlaying() {
		return nil, nil, model.ErrGameOver
	}

	if err := c.scoringService.ValidatePath(session.Grid, cellIDs); err != nil {
		return nil, nil, err
	}

	word := c.scoringService.Word(session.Grid, cellIDs)
	normalized := strings.ToLower(word)
	if session.WordUsed(normalized) {
		return nil, nil, fmt.Errorf("%w: %s", model.ErrWordAlreadyUsed, word)
	}
	if !c.dictionaryService.IsValidWord(word) {
		return nil, nil, fmt.Errorf("%w: %s", model.ErrWordNotInDictionary, word)
	}
	if c.dictionaryService.IsBlacklisted(word) {
		return nil, nil, fmt.Errorf("%w: %s", model.ErrBlacklistedWord, word)
	}

	edges := c.scoringService.AdjacentEdges(session.Grid, cellIDs)
	points := c.scoringService.WordPoints(session.Grid, cellIDs, session.Round)

	// Clear the word's cells on a clone and let the survivors fall into the
	// opened space. Double-score cells keep their bonus for later words.
	grid := session.Grid.Clone()
	for _, id := range cellIDs {
		cell := grid.CellByID(id)
		cell.Letter = 0
		cell.Placed = false
		cell.PrePlaced = false
		cell.PlacedThisTurn = false
	}
	grid.ForEach(func(cell *model.Cell) {
		if !cell.IsEmpty() {
			cell.PlacedThisTurn = true
		}
	})
	grid, err = c.gravityService.Consolidate(grid)
	if err != nil {
		return nil, nil, err
	}

	scored := model.ScoredWord{
		Word:          word,
		Round:         session.Round,
		AdjacentEdges: edges,
		Points:        points,
		CellIDs:       cellIDs,
	}

	session.Grid = grid
	session.Score += points
	session.Words = append(session.Words, scored)
	session.MarkWordUsed(normalized)
	if err := c.saveSession(ctx, session); err != nil {
		return nil, nil, err
	}

	c.logger.Info("word scored",
		slog.String("session_id", string(session.ID)),
		slog.String("word", word),
		slog.Int("points", points),
		slog.Int("round", session.Round),
		slog.Int("total_score", session.Score),
	)

	return session, &scored, nil
}

// GetSession retrieves a session for its owner
func (c *Controller) GetSession(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, error) {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.PlayerID != playerID {
		return nil, model.ErrNotSessionOwner
	}
	return session, nil
}

// AbandonSession ends a session early. Abandoned runs do not reach the
// leaderboard; only naturally finished daily games count.
func (c *Controller) AbandonSession(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) error {
	session, err := c.storage.GetSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.PlayerID != playerID {
		return model.ErrNotSessionOwner
	}
	if !session.IsPlaying() {
		return nil // Already finished
	}

	session.State = model.SessionOver
	if err := c.saveSession(ctx, session); err != nil {
		return err
	}

	c.logger.Info("session abandoned",
		slog.String("session_id", string(sessionID)),
		slog.String("player_id", string(playerID)),
	)

	return nil
}

// newSession assembles a fresh playing session around a seeded grid
func (c *Controller) newSession(playerID model.PlayerID, mode model.GameMode, grid *model.Grid) *model.GameSession {
	now := c.clock.Now()
	return &model.GameSession{
		ID:        model.SessionID(c.random.String(sessionIDLength, idAlphabet)),
		PlayerID:  playerID,
		Mode:      mode,
		State:     model.SessionPlaying,
		Grid:      grid,
		Round:     1,
		UsedWords: make(map[string]bool),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// supplyRound yields the letters falling in the given round, plus the
// generator state to persist afterwards. Daily sessions replay the scripted
// challenge drops for rounds two and three, then continue drawing from the
// persisted generator; classic sessions draw adaptively against the board.
func (c *Controller) supplyRound(ctx context.Context, session *model.GameSession, round int, grid *model.Grid) (model.FallingBatch, uint32, error) {
	count := model.TilesForRound(round)
	if session.Mode != model.ModeDaily {
		return c.lettersService.SupplyAdaptive(count, grid, c.random), session.RNGState, nil
	}

	switch round {
	case 2, 3:
		challenge, err := c.dailyService.GetOrCreate(ctx, session.DailyDate)
		if err != nil {
			return nil, 0, err
		}
		if round == 2 {
			return model.FallingBatch(challenge.FirstDrop), session.RNGState, nil
		}
		return model.FallingBatch(challenge.SecondDrop), session.RNGState, nil
	default:
		rng := random.NewLCG(session.RNGState)
		batch := c.lettersService.Supply(count, rng)
		return batch, rng.State(), nil
	}
}

// placeBatch drops the batch: daily sessions place deterministically so every
// client lands identical boards, classic sessions scatter the entries
func (c *Controller) placeBatch(grid *model.Grid, batch model.FallingBatch, mode model.GameMode) (*model.Placement, error) {
	if mode == model.ModeDaily {
		return c.floodService.Place(grid, batch)
	}
	return c.floodService.PlaceScattered(grid, batch, c.random)
}

// submitResult records a finished daily run on the leaderboard. Failures are
// logged, not returned: the leaderboard service retries conflicts itself, and
// the session result stands either way.
func (c *Controller) submitResult(ctx context.Context, session *model.GameSession) {
	if session.Mode != model.ModeDaily {
		return
	}

	displayName := string(session.PlayerID)
	if player, err := c.storage.GetPlayer(ctx, session.PlayerID); err == nil {
		displayName = player.DisplayName
	}

	entry := &model.LeaderboardEntry{
		Date:        session.DailyDate,
		PlayerID:    session.PlayerID,
		DisplayName: displayName,
		Score:       session.Score,
		WordCount:   len(session.Words),
		LongestWord: session.LongestWord(),
	}
	if _, err := c.leaderboardService.Submit(ctx, entry); err != nil {
		c.logger.Error("leaderboard submission failed",
			slog.String("session_id", string(session.ID)),
			slog.String("daily_date", session.DailyDate),
			slog.String("error", err.Error()),
		)
	}
}

// seedBoard converts freshly dropped tiles into the starting seeds: they
// count as settled board, not as a round's drop
func seedBoard(p *model.Placement) {
	for id := range p.Paths {
		if cell := p.Grid.CellByID(id); cell != nil {
			cell.PrePlaced = true
		}
	}
	p.Grid.ClearTurnFlags()
}

func (c *Controller) saveSession(ctx context.Context, session *model.GameSession) error {
	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// Interface for dependency injection
type ControllerInterface interface {
	CreateSession(ctx context.Context, playerID model.PlayerID, gridSize int) (*model.GameSession, error)
	CreateDailySession(ctx context.Context, playerID model.PlayerID) (*model.GameSession, error)
	AdvanceRound(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, *model.Placement, error)
	SubmitWord(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID, cellIDs []model.CellID) (*model.GameSession, *model.ScoredWord, error)
	GetSession(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) (*model.GameSession, error)
	AbandonSession(ctx context.Context, sessionID model.SessionID, playerID model.PlayerID) error
}

var _ ControllerInterface = (*Controller)(nil)
