package daily

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mkrall/hexfall/internal/dependencies/clock"
	"github.com/mkrall/hexfall/internal/dependencies/random"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/letters"
	"github.com/mkrall/hexfall/internal/storage"
)

// DateLayout is the key format for daily challenge dates
const DateLayout = "2006-01-02"

const (
	startingLetterCount = 6
	dropSize            = 3
)

// Service generates and serves the shared daily challenge payloads
type Service struct {
	storage storage.Storage
	letters *letters.Service
	clock   clock.Clock
	salt    uint32
	logger  *slog.Logger
}

// New creates a new DailyService. The salt perturbs the per-date seed so
// separate deployments do not share letter sequences.
func New(
	storage storage.Storage,
	lettersService *letters.Service,
	clock clock.Clock,
	salt uint32,
	logger *slog.Logger,
) *Service {
	return &Service{
		storage: storage,
		letters: lettersService,
		clock:   clock,
		salt:    salt,
		logger:  logger,
	}
}

// Today returns the current challenge date key in UTC
func (s *Service) Today() string {
	return s.clock.Now().UTC().Format(DateLayout)
}

// GetOrCreate returns the challenge for the date, generating and storing it
// on first request. Storage writes are create-if-absent, so concurrent
// generators all end up with the same stored payload.
func (s *Service) GetOrCreate(ctx context.Context, date string) (*model.DailyChallenge, error) {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", model.ErrInvalidDate, date)
	}

	challenge, err := s.storage.GetChallenge(ctx, date)
	if err == nil {
		return challenge, nil
	}
	if !errors.Is(err, model.ErrChallengeNotFound) {
		return nil, err
	}

	generated := s.generate(date)
	stored, err := s.storage.CreateChallenge(ctx, generated)
	if err != nil {
		return nil, err
	}

	if stored == generated {
		s.logger.Info("daily challenge created",
			slog.String("date", date),
			slog.String("starting_letters", string(stored.StartingLetters)),
		)
	}

	return stored, nil
}

// generate builds the date's payload from a fresh seeded generator. Supply
// order is fixed: starting letters, then the two scripted drops; the final
// generator state carries into daily sessions.
func (s *Service) generate(date string) *model.DailyChallenge {
	seed := seedForDate(date, s.salt)
	rng := random.NewLCG(seed)

	challenge := &model.DailyChallenge{
		Date:            date,
		Seed:            seed,
		StartingLetters: []rune(s.letters.Supply(startingLetterCount, rng)),
		FirstDrop:       []rune(s.letters.Supply(dropSize, rng)),
		SecondDrop:      []rune(s.letters.Supply(dropSize, rng)),
		CreatedAt:       s.clock.Now(),
	}
	challenge.RNGState = rng.State()
	return challenge
}

// seedForDate folds the date key into a 32-bit seed and mixes in the salt
func seedForDate(date string, salt uint32) uint32 {
	var h uint32
	for _, b := range []byte(date) {
		h = h*31 + uint32(b)
	}
	return h ^ salt
}

// Interface for dependency injection
type ServiceInterface interface {
	Today() string
	GetOrCreate(ctx context.Context, date string) (*model.DailyChallenge, error)
}

var _ ServiceInterface = (*Service)(nil)
