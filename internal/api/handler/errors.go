package handler

import (
	"net/http"

	"github.com/mkrall/hexfall/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeInvalidGridSize     = apierr.CodeInvalidGridSize
	CodeInvalidCell         = apierr.CodeInvalidCell
	CodeInvalidDate         = apierr.CodeInvalidDate
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeNotSessionOwner     = apierr.CodeNotSessionOwner
	CodeGameOver            = apierr.CodeGameOver
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeSessionNotFound     = apierr.CodeSessionNotFound
	CodeChallengeNotFound   = apierr.CodeChallengeNotFound
	CodeEntryNotFound       = apierr.CodeEntryNotFound
	CodeWordTooShort        = apierr.CodeWordTooShort
	CodeWordNotInDictionary = apierr.CodeWordNotInDictionary
	CodeWordBlacklisted     = apierr.CodeWordBlacklisted
	CodeWordNotAdjacent     = apierr.CodeWordNotAdjacent
	CodeWordAlreadyUsed     = apierr.CodeWordAlreadyUsed
	CodeCellEmpty           = apierr.CodeCellEmpty
	CodeVersionConflict     = apierr.CodeVersionConflict
	CodeUsernameExists      = apierr.CodeUsernameExists
	CodeInvalidCredentials  = apierr.CodeInvalidCredentials
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
