package model

import "time"

// DailyChallenge is the shared seeded payload for one UTC calendar day. Every
// player starting a daily session that day gets the same starting letters and
// the same first two drops, and resumes the generator from the same state.
type DailyChallenge struct {
	Date            string // "2006-01-02" (UTC)
	Seed            uint32
	StartingLetters []rune
	FirstDrop       []rune
	SecondDrop      []rune
	RNGState        uint32 // generator state after producing the letters above
	CreatedAt       time.Time
}
