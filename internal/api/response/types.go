package response

import (
	"time"

	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/auth"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Cell represents one grid cell. Empty cells are listed too, so clients can
// draw the diamond without knowing its geometry rules.
type Cell struct {
	ID             string `json:"id"`
	Row            int    `json:"row"`
	Col            int    `json:"col"`
	Letter         string `json:"letter,omitempty"`
	PrePlaced      bool   `json:"pre_placed,omitempty"`
	DoubleScore    bool   `json:"double_score,omitempty"`
	PlacedThisTurn bool   `json:"placed_this_turn,omitempty"`
}

// Grid represents the diamond board as a sparse cell list
type Grid struct {
	Size  int    `json:"size"`
	Cells []Cell `json:"cells"`
}

// GridFromModel converts model.Grid to a response Grid
func GridFromModel(g *model.Grid) Grid {
	out := Grid{Size: g.Size, Cells: make([]Cell, 0, g.Size*g.Size)}
	g.ForEach(func(c *model.Cell) {
		cell := Cell{
			ID:             string(c.ID),
			Row:            c.Pos.Row,
			Col:            c.Pos.Col,
			PrePlaced:      c.PrePlaced,
			DoubleScore:    c.DoubleScore,
			PlacedThisTurn: c.PlacedThisTurn,
		}
		if c.Letter != 0 {
			cell.Letter = string(c.Letter)
		}
		out.Cells = append(out.Cells, cell)
	})
	return out
}

// ScoredWord represents one accepted word submission
type ScoredWord struct {
	Word          string   `json:"word"`
	Round         int      `json:"round"`
	AdjacentEdges int      `json:"adjacent_edges"`
	Points        int      `json:"points"`
	Cells         []string `json:"cells"`
}

// ScoredWordFromModel converts model.ScoredWord
func ScoredWordFromModel(w model.ScoredWord) ScoredWord {
	cells := make([]string, len(w.CellIDs))
	for i, id := range w.CellIDs {
		cells[i] = string(id)
	}
	return ScoredWord{
		Word:          w.Word,
		Round:         w.Round,
		AdjacentEdges: w.AdjacentEdges,
		Points:        w.Points,
		Cells:         cells,
	}
}

// Session represents a game session in API responses
type Session struct {
	ID           string       `json:"id"`
	Mode         string       `json:"mode"`
	State        string       `json:"state"`
	Round        int          `json:"round"`
	Score        int          `json:"score"`
	Grid         Grid         `json:"grid"`
	Words        []ScoredWord `json:"words"`
	LastUnplaced int          `json:"last_unplaced"`
	DailyDate    string       `json:"daily_date,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// SessionFromModel converts model.GameSession to a response Session
func SessionFromModel(s *model.GameSession) Session {
	words := make([]ScoredWord, len(s.Words))
	for i, w := range s.Words {
		words[i] = ScoredWordFromModel(w)
	}
	return Session{
		ID:           string(s.ID),
		Mode:         string(s.Mode),
		State:        string(s.State),
		Round:        s.Round,
		Score:        s.Score,
		Grid:         GridFromModel(s.Grid),
		Words:        words,
		LastUnplaced: s.LastUnplaced,
		DailyDate:    s.DailyDate,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// Drop traces one letter's descent: the cell it rests on and the entry-to-rest
// path it took
type Drop struct {
	Cell   string   `json:"cell"`
	Letter string   `json:"letter"`
	Path   []string `json:"path"`
}

// Placement represents the outcome of a round's letter drop
type Placement struct {
	Drops    []Drop   `json:"drops"`
	Unplaced []string `json:"unplaced"`
}

// PlacementFromModel converts model.Placement. Drops are keyed off the
// placement grid so each trace carries its letter.
func PlacementFromModel(p *model.Placement) Placement {
	out := Placement{
		Drops:    make([]Drop, 0, len(p.Paths)),
		Unplaced: make([]string, len(p.Unplaced)),
	}
	for id, path := range p.Paths {
		d := Drop{Cell: string(id), Path: make([]string, len(path))}
		for i, step := range path {
			d.Path[i] = string(step)
		}
		if cell := p.Grid.CellByID(id); cell != nil && cell.Letter != 0 {
			d.Letter = string(cell.Letter)
		}
		out.Drops = append(out.Drops, d)
	}
	for i, letter := range p.Unplaced {
		out.Unplaced[i] = string(letter)
	}
	return out
}

// RoundResponse is the response after advancing a session to its next round
type RoundResponse struct {
	Session   Session   `json:"session"`
	Placement Placement `json:"placement"`
}

// WordResponse is the response after a word submission is accepted
type WordResponse struct {
	Session Session    `json:"session"`
	Word    ScoredWord `json:"word"`
}

// Challenge represents a daily challenge payload
type Challenge struct {
	Date            string    `json:"date"`
	Seed            uint32    `json:"seed"`
	StartingLetters []string  `json:"starting_letters"`
	FirstDrop       []string  `json:"first_drop"`
	SecondDrop      []string  `json:"second_drop"`
	CreatedAt       time.Time `json:"created_at"`
}

// ChallengeFromModel converts model.DailyChallenge. The generator state stays
// server-side; clients only see the letters.
func ChallengeFromModel(c *model.DailyChallenge) Challenge {
	return Challenge{
		Date:            c.Date,
		Seed:            c.Seed,
		StartingLetters: runesToStrings(c.StartingLetters),
		FirstDrop:       runesToStrings(c.FirstDrop),
		SecondDrop:      runesToStrings(c.SecondDrop),
		CreatedAt:       c.CreatedAt,
	}
}

// LeaderboardEntry represents one ranked daily result
type LeaderboardEntry struct {
	Rank        int       `json:"rank"`
	PlayerID    string    `json:"player_id"`
	DisplayName string    `json:"display_name"`
	Score       int       `json:"score"`
	WordCount   int       `json:"word_count"`
	LongestWord string    `json:"longest_word,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeaderboardEntryFromModel converts model.LeaderboardEntry at the given
// 1-based rank
func LeaderboardEntryFromModel(e *model.LeaderboardEntry, rank int) LeaderboardEntry {
	return LeaderboardEntry{
		Rank:        rank,
		PlayerID:    string(e.PlayerID),
		DisplayName: e.DisplayName,
		Score:       e.Score,
		WordCount:   e.WordCount,
		LongestWord: e.LongestWord,
		UpdatedAt:   e.UpdatedAt,
	}
}

// Leaderboard is a date's ranked entries
type Leaderboard struct {
	Date    string             `json:"date"`
	Entries []LeaderboardEntry `json:"entries"`
}

// LeaderboardFromModel converts a date's top entries, ranking from one
func LeaderboardFromModel(date string, entries []*model.LeaderboardEntry) Leaderboard {
	out := Leaderboard{Date: date, Entries: make([]LeaderboardEntry, len(entries))}
	for i, e := range entries {
		out.Entries[i] = LeaderboardEntryFromModel(e, i+1)
	}
	return out
}

func runesToStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
