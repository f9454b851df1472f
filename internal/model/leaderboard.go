package model

import "time"

// LeaderboardEntry is one player's best result for a daily challenge date.
// Version is the optimistic-concurrency token: a writer passes the version it
// read, and the store rejects the write if the stored version has moved on.
type LeaderboardEntry struct {
	Date        string // "2006-01-02" (UTC)
	PlayerID    PlayerID
	DisplayName string
	Score       int
	WordCount   int
	LongestWord string
	Version     int64
	UpdatedAt   time.Time
}
