package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkrall/hexfall/internal/api/handler"
	"github.com/mkrall/hexfall/internal/api/middleware"
	"github.com/mkrall/hexfall/internal/services/auth"
	"github.com/mkrall/hexfall/internal/services/daily"
	"github.com/mkrall/hexfall/internal/services/game"
	"github.com/mkrall/hexfall/internal/services/leaderboard"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger             *slog.Logger
	AuthService        *auth.Service
	GameController     *game.Controller
	DailyService       *daily.Service
	LeaderboardService *leaderboard.Service
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	sessionHandler := handler.NewSessionHandler(cfg.GameController)
	dailyHandler := handler.NewDailyHandler(cfg.DailyService)
	leaderboardHandler := handler.NewLeaderboardHandler(cfg.LeaderboardService)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)

	// Session routes (all require auth)
	sessions := api.PathPrefix("/sessions").Subrouter()
	sessions.Use(authMiddleware)
	sessions.HandleFunc("", sessionHandler.Create).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}", sessionHandler.Get).Methods(http.MethodGet)
	sessions.HandleFunc("/{id}", sessionHandler.Abandon).Methods(http.MethodDelete)
	sessions.HandleFunc("/{id}/round", sessionHandler.AdvanceRound).Methods(http.MethodPost)
	sessions.HandleFunc("/{id}/words", sessionHandler.SubmitWord).Methods(http.MethodPost)

	// Daily challenge payloads (no auth, read-only)
	api.HandleFunc("/daily", dailyHandler.GetToday).Methods(http.MethodGet)
	api.HandleFunc("/daily/{date}", dailyHandler.GetByDate).Methods(http.MethodGet)

	// Leaderboard routes (no auth, read-only)
	api.HandleFunc("/leaderboard/{date}", leaderboardHandler.Top).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard/{date}/players/{id}", leaderboardHandler.PlayerEntry).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
