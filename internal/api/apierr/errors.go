package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidGridSize     = "INVALID_GRID_SIZE"
	CodeInvalidCell         = "INVALID_CELL"
	CodeInvalidDate         = "INVALID_DATE"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeNotSessionOwner     = "NOT_SESSION_OWNER"
	CodeGameOver            = "GAME_OVER"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeChallengeNotFound   = "CHALLENGE_NOT_FOUND"
	CodeEntryNotFound       = "ENTRY_NOT_FOUND"
	CodeWordTooShort        = "WORD_TOO_SHORT"
	CodeWordNotInDictionary = "WORD_NOT_IN_DICTIONARY"
	CodeWordBlacklisted     = "WORD_BLACKLISTED"
	CodeWordNotAdjacent     = "WORD_NOT_ADJACENT"
	CodeWordAlreadyUsed     = "WORD_ALREADY_USED"
	CodeCellEmpty           = "CELL_EMPTY"
	CodeVersionConflict     = "VERSION_CONFLICT"
	CodeUsernameExists      = "USERNAME_EXISTS"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSessionNotFound, "Session not found"}}
	case errors.Is(err, model.ErrNotSessionOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotSessionOwner, "Session belongs to another player"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is already over"}}
	case errors.Is(err, model.ErrInvalidGridSize):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidGridSize, "Grid size must be odd and between 3 and 11"}}
	case errors.Is(err, model.ErrWordTooShort):
		return &httpError{http.StatusBadRequest, APIError{CodeWordTooShort, "Word must use at least three cells"}}
	case errors.Is(err, model.ErrWordNotInDictionary):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeWordNotInDictionary, "Word is not in the dictionary"}}
	case errors.Is(err, model.ErrBlacklistedWord):
		return &httpError{http.StatusUnprocessableEntity, APIError{CodeWordBlacklisted, "Word is not allowed"}}
	case errors.Is(err, model.ErrWordNotAdjacent):
		return &httpError{http.StatusBadRequest, APIError{CodeWordNotAdjacent, "Cells must form a chain of adjacent, distinct cells"}}
	case errors.Is(err, model.ErrWordAlreadyUsed):
		return &httpError{http.StatusConflict, APIError{CodeWordAlreadyUsed, "Word was already scored this session"}}
	case errors.Is(err, model.ErrCellEmpty):
		return &httpError{http.StatusBadRequest, APIError{CodeCellEmpty, "Selected cell holds no letter"}}
	case errors.Is(err, model.ErrInvalidCellID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCell, "Invalid cell id"}}
	case errors.Is(err, model.ErrChallengeNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeChallengeNotFound, "Daily challenge not found"}}
	case errors.Is(err, model.ErrInvalidDate):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDate, "Date must be formatted YYYY-MM-DD"}}
	case errors.Is(err, model.ErrEntryNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEntryNotFound, "Leaderboard entry not found"}}
	case errors.Is(err, model.ErrVersionConflict):
		return &httpError{http.StatusConflict, APIError{CodeVersionConflict, "Leaderboard entry was updated concurrently"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
