package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// GameMode selects how a session's letters are generated
type GameMode string

const (
	ModeClassic GameMode = "classic" // adaptive letters, fresh board
	ModeDaily   GameMode = "daily"   // seeded letters shared by everyone on the day
)

// SessionState represents the lifecycle phase of a session
type SessionState string

const (
	SessionPlaying SessionState = "playing"
	SessionOver    SessionState = "over"
)

// GameSession is a single player's run of the game
type GameSession struct {
	ID       SessionID
	PlayerID PlayerID
	Mode     GameMode
	State    SessionState

	Grid  *Grid
	Round int // 1-indexed
	Score int

	Words     []ScoredWord    // accepted words in submission order
	UsedWords map[string]bool // rejects duplicate submissions

	// Unplaced letter count from the most recent round advance; feeds the
	// game-over check
	LastUnplaced int

	// Daily mode: date key plus the persisted generator state, so every
	// client resuming the shared payload sees identical drops
	DailyDate string
	RNGState  uint32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPlaying reports whether the session still accepts moves
func (s *GameSession) IsPlaying() bool {
	return s.State == SessionPlaying
}

// WordUsed reports whether the word has already scored this session
func (s *GameSession) WordUsed(word string) bool {
	return s.UsedWords[word]
}

// MarkWordUsed records a scored word against duplicate resubmission
func (s *GameSession) MarkWordUsed(word string) {
	if s.UsedWords == nil {
		s.UsedWords = make(map[string]bool)
	}
	s.UsedWords[word] = true
}

// LongestWord returns the longest word scored this session, or empty
func (s *GameSession) LongestWord() string {
	longest := ""
	for _, w := range s.Words {
		if len(w.Word) > len(longest) {
			longest = w.Word
		}
	}
	return longest
}

// ScoredWord records one accepted word submission
type ScoredWord struct {
	Word          string
	Round         int
	AdjacentEdges int
	Points        int
	CellIDs       []CellID
}
