package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mkrall/hexfall/internal/api"
	"github.com/mkrall/hexfall/internal/factory"
	redisstorage "github.com/mkrall/hexfall/internal/storage/redis"
)

func main() {
	// Load .env if present (local development)
	_ = godotenv.Load()

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	dictionaryPath := getEnv("DICTIONARY_PATH", "data/words.txt")
	blacklistPath := getEnv("BLACKLIST_PATH", "data/blacklist.txt")

	cfg := factory.Config{
		DictionaryPath: dictionaryPath,
		BlacklistPath:  blacklistPath,
		Logger:         logger,
		StorageType:    os.Getenv("STORAGE_TYPE"),
	}

	// The salt keeps self-hosted instances from sharing challenge payloads
	// with the public deployment
	if salt := os.Getenv("DAILY_SALT"); salt != "" {
		parsed, err := strconv.ParseUint(salt, 10, 32)
		if err != nil {
			logger.Error("DAILY_SALT must be an unsigned 32-bit integer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		cfg.DailySalt = uint32(parsed)
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Load dictionary and blacklist
	if err := app.DictionaryService.LoadFromFile(context.Background(), dictionaryPath); err != nil {
		logger.Error("could not load dictionary", slog.String("path", dictionaryPath), slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("dictionary loaded", slog.Int("words", app.DictionaryService.WordCount()))

	if err := app.DictionaryService.LoadBlacklistFromFile(context.Background(), blacklistPath); err != nil {
		logger.Warn("could not load blacklist", slog.String("path", blacklistPath), slog.String("error", err.Error()))
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:             logger,
		AuthService:        app.AuthService,
		GameController:     app.GameController,
		DailyService:       app.DailyService,
		LeaderboardService: app.LeaderboardService,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := os.Getenv("PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			logger.Error("PORT must be an integer", slog.String("error", err.Error()))
			os.Exit(1)
		}
		serverConfig.Port = parsed
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
