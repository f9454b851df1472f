package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrNotSessionOwner = errors.New("player does not own this session")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidGridSize = errors.New("grid size must be odd and between 3 and 11")

	// Word submission errors
	ErrWordTooShort        = errors.New("word must use at least three cells")
	ErrWordNotInDictionary = errors.New("word not in dictionary")
	ErrBlacklistedWord     = errors.New("word is blacklisted")
	ErrWordNotAdjacent     = errors.New("selected cells must form a chain of adjacent, distinct cells")
	ErrWordAlreadyUsed     = errors.New("word already scored this session")
	ErrCellEmpty           = errors.New("selected cell holds no letter")
	ErrInvalidCellID       = errors.New("invalid cell id")

	// Engine errors
	ErrGridConsistency = errors.New("grid consistency fault")

	// Daily challenge errors
	ErrChallengeNotFound = errors.New("daily challenge not found")
	ErrInvalidDate       = errors.New("invalid challenge date")

	// Leaderboard errors
	ErrEntryNotFound   = errors.New("leaderboard entry not found")
	ErrVersionConflict = errors.New("leaderboard entry version conflict")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
