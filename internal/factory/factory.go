package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mkrall/hexfall/internal/dependencies/clock"
	"github.com/mkrall/hexfall/internal/dependencies/random"
	"github.com/mkrall/hexfall/internal/services/air"
	"github.com/mkrall/hexfall/internal/services/auth"
	"github.com/mkrall/hexfall/internal/services/daily"
	"github.com/mkrall/hexfall/internal/services/dictionary"
	"github.com/mkrall/hexfall/internal/services/flood"
	"github.com/mkrall/hexfall/internal/services/game"
	"github.com/mkrall/hexfall/internal/services/gravity"
	"github.com/mkrall/hexfall/internal/services/leaderboard"
	"github.com/mkrall/hexfall/internal/services/letters"
	"github.com/mkrall/hexfall/internal/services/scoring"
	"github.com/mkrall/hexfall/internal/storage"
	"github.com/mkrall/hexfall/internal/storage/memory"
	redisstorage "github.com/mkrall/hexfall/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	DictionaryService  *dictionary.Service
	LettersService     *letters.Service
	AirService         *air.Service
	GravityService     *gravity.Service
	FloodService       *flood.Service
	ScoringService     *scoring.Service
	DailyService       *daily.Service
	LeaderboardService *leaderboard.Service
	GameController     *game.Controller
	AuthService        *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// DictionaryPath is the path to the dictionary file (optional)
	// If empty, dictionary must be loaded manually
	DictionaryPath string
	// BlacklistPath is the path to the blacklist file (optional)
	BlacklistPath string
	// DailySalt perturbs the per-date challenge seeds (optional)
	DailySalt uint32
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Use default auth config if not provided
	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	return newWithDependencies(store, clk, rnd, authCfg, cfg.DailySalt, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, authCfg auth.Config, dailySalt uint32, logger *slog.Logger) *App {
	// Create services
	dictService := dictionary.New(store)
	lettersService := letters.New(letters.DefaultConfig())
	airService := air.New()
	gravityService := gravity.New()
	floodService := flood.New(airService)
	scoringService := scoring.New()
	dailyService := daily.New(store, lettersService, clk, dailySalt, logger)
	leaderboardService := leaderboard.New(store, clk, logger)
	gameController := game.NewController(
		store,
		gravityService,
		floodService,
		lettersService,
		scoringService,
		dictService,
		dailyService,
		leaderboardService,
		clk,
		rnd,
		logger,
	)
	authService := auth.New(store, clk, authCfg)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		DictionaryService:  dictService,
		LettersService:     lettersService,
		AirService:         airService,
		GravityService:     gravityService,
		FloodService:       floodService,
		ScoringService:     scoringService,
		DailyService:       dailyService,
		LeaderboardService: leaderboardService,
		GameController:     gameController,
		AuthService:        authService,
	}
}
