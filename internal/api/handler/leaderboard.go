package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/mkrall/hexfall/internal/api/response"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/daily"
	"github.com/mkrall/hexfall/internal/services/leaderboard"
)

// LeaderboardHandler handles daily leaderboard endpoints
type LeaderboardHandler struct {
	leaderboardService *leaderboard.Service
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(leaderboardService *leaderboard.Service) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

// Top handles GET /api/v1/leaderboard/{date}
func (h *LeaderboardHandler) Top(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(daily.DateLayout, date); err != nil {
		WriteError(w, fmt.Errorf("%w: %q", model.ErrInvalidDate, date))
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.leaderboardService.Top(r.Context(), date, limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(date, entries))
}

// PlayerEntry handles GET /api/v1/leaderboard/{date}/players/{id}
func (h *LeaderboardHandler) PlayerEntry(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	date := vars["date"]
	playerID := model.PlayerID(vars["id"])

	if _, err := time.Parse(daily.DateLayout, date); err != nil {
		WriteError(w, fmt.Errorf("%w: %q", model.ErrInvalidDate, date))
		return
	}

	entry, rank, err := h.leaderboardService.PlayerEntry(r.Context(), date, playerID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardEntryFromModel(entry, rank))
}
