package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mkrall/hexfall/internal/api/response"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/daily"
)

// DailyHandler handles daily challenge endpoints
type DailyHandler struct {
	dailyService *daily.Service
}

// NewDailyHandler creates a new daily challenge handler
func NewDailyHandler(dailyService *daily.Service) *DailyHandler {
	return &DailyHandler{
		dailyService: dailyService,
	}
}

// GetToday handles GET /api/v1/daily
func (h *DailyHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.dailyService.GetOrCreate(r.Context(), h.dailyService.Today())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(challenge))
}

// GetByDate handles GET /api/v1/daily/{date}
func (h *DailyHandler) GetByDate(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(daily.DateLayout, date); err != nil {
		WriteError(w, fmt.Errorf("%w: %q", model.ErrInvalidDate, date))
		return
	}

	// Future payloads stay hidden until their day arrives
	if date > h.dailyService.Today() {
		WriteError(w, model.ErrChallengeNotFound)
		return
	}

	challenge, err := h.dailyService.GetOrCreate(r.Context(), date)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ChallengeFromModel(challenge))
}
