package redis

import (
	"fmt"

	"github.com/mkrall/hexfall/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "hexfall"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// sessionKey returns the Redis key for a GameSession
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// challengeKey returns the Redis key for a DailyChallenge
func challengeKey(date string) string {
	return fmt.Sprintf("%s:daily:%s", keyPrefix, date)
}

// entryKey returns the Redis key for a player's LeaderboardEntry on a date
func entryKey(date string, playerID model.PlayerID) string {
	return fmt.Sprintf("%s:lb:%s:%s", keyPrefix, date, playerID)
}

// leaderboardIndexKey returns the Redis key for the per-date score ZSET
func leaderboardIndexKey(date string) string {
	return fmt.Sprintf("%s:idx:lb:%s", keyPrefix, date)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}

// blacklistKey returns the Redis key for the blacklisted word set
func blacklistKey() string {
	return fmt.Sprintf("%s:blacklist", keyPrefix)
}
