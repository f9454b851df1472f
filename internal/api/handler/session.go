package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mkrall/hexfall/internal/api/middleware"
	"github.com/mkrall/hexfall/internal/api/request"
	"github.com/mkrall/hexfall/internal/api/response"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/game"
)

// SessionHandler handles game session endpoints
type SessionHandler struct {
	gameController *game.Controller
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(gameController *game.Controller) *SessionHandler {
	return &SessionHandler{
		gameController: gameController,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var session *model.GameSession
	var err error
	switch req.Mode {
	case "", string(model.ModeClassic):
		session, err = h.gameController.CreateSession(r.Context(), player.ID, req.GridSize)
	case string(model.ModeDaily):
		session, err = h.gameController.CreateDailySession(r.Context(), player.ID)
	default:
		WriteError(w, NewInvalidRequestError("mode must be classic or daily"))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(session))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	session, err := h.gameController.GetSession(r.Context(), sessionID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// AdvanceRound handles POST /api/v1/sessions/{id}/round
func (h *SessionHandler) AdvanceRound(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	session, placement, err := h.gameController.AdvanceRound(r.Context(), sessionID, player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.RoundResponse{
		Session:   response.SessionFromModel(session),
		Placement: response.PlacementFromModel(placement),
	}
	response.JSON(w, http.StatusOK, resp)
}

// SubmitWord handles POST /api/v1/sessions/{id}/words
func (h *SessionHandler) SubmitWord(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	var req request.SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if len(req.Cells) == 0 {
		WriteError(w, NewInvalidRequestError("cells is required"))
		return
	}

	cellIDs := make([]model.CellID, len(req.Cells))
	for i, id := range req.Cells {
		cellIDs[i] = model.CellID(id)
	}

	session, word, err := h.gameController.SubmitWord(r.Context(), sessionID, player.ID, cellIDs)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.WordResponse{
		Session: response.SessionFromModel(session),
		Word:    response.ScoredWordFromModel(*word),
	}
	response.JSON(w, http.StatusOK, resp)
}

// Abandon handles DELETE /api/v1/sessions/{id}
func (h *SessionHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	sessionID := model.SessionID(mux.Vars(r)["id"])

	if err := h.gameController.AbandonSession(r.Context(), sessionID, player.ID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
