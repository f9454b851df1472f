package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Session:
		o.printSession(v)
	case RoundResult:
		o.printRoundResult(v)
	case WordResult:
		o.printWordResult(v)
	case Challenge:
		o.printChallenge(v)
	case Leaderboard:
		o.printLeaderboard(v)
	case LeaderboardEntry:
		o.printLeaderboardEntry(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Cell response type
type Cell struct {
	ID          string `json:"id"`
	Row         int    `json:"row"`
	Col         int    `json:"col"`
	Letter      string `json:"letter,omitempty"`
	DoubleScore bool   `json:"double_score,omitempty"`
}

// Grid response type
type Grid struct {
	Size  int    `json:"size"`
	Cells []Cell `json:"cells"`
}

// ScoredWord response type
type ScoredWord struct {
	Word          string   `json:"word"`
	Round         int      `json:"round"`
	AdjacentEdges int      `json:"adjacent_edges"`
	Points        int      `json:"points"`
	Cells         []string `json:"cells"`
}

// Session response type
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
}

// Drop response type
type Drop struct {
	Cell   string   `json:"cell"`
	Letter string   `json:"letter"`
	Path   []string `json:"path"`
}

// Placement response type
type Placement struct {
	Drops    []Drop   `json:"drops"`
	Unplaced []string `json:"unplaced"`
}

// RoundResult response type
type RoundResult struct {
	Session   Session   `json:"session"`
	Placement Placement `json:"placement"`
}

// WordResult response type
type WordResult struct {
	Session Session    `json:"session"`
	Word    ScoredWord `json:"word"`
}

// Challenge response type
type Challenge struct {
	Date            string   `json:"date"`
	Seed            uint32   `json:"seed"`
	StartingLetters []string `json:"starting_letters"`
	FirstDrop       []string `json:"first_drop"`
	SecondDrop      []string `json:"second_drop"`
}

// LeaderboardEntry response type
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	WordCount   int    `json:"word_count"`
	LongestWord string `json:"longest_word,omitempty"`
}

// Leaderboard response type
type Leaderboard struct {
	Date    string             `json:"date"`
	Entries []LeaderboardEntry `json:"entries"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printSession(s Session) {
	fmt.Printf("Session: %s (%s)\n", s.ID, s.Mode)
	fmt.Printf("State: %s\n", s.State)
	fmt.Printf("Round: %d\n", s.Round)
	fmt.Printf("Score: %d\n", s.Score)
	if s.DailyDate != "" {
		fmt.Printf("Daily: %s\n", s.DailyDate)
	}
	if s.LastUnplaced > 0 {
		fmt.Printf("Unplaced last round: %d\n", s.LastUnplaced)
	}

	fmt.Println()
	o.printGrid(s.Grid)

	if len(s.Words) > 0 {
		fmt.Printf("\nWords (%d):\n", len(s.Words))
		for _, w := range s.Words {
			fmt.Printf("  - %s (%d pts, round %d)\n", w.Word, w.Points, w.Round)
		}
	}
}

// printGrid draws the diamond row by row. Lowercase letters sit on
// double-score cells; '*' marks an empty one.
func (o *Output) printGrid(g Grid) {
	rows := make([][]Cell, g.Size)
	maxWidth := 0
	for _, c := range g.Cells {
		if c.Row < 0 || c.Row >= g.Size {
			continue
		}
		rows[c.Row] = append(rows[c.Row], c)
		if len(rows[c.Row]) > maxWidth {
			maxWidth = len(rows[c.Row])
		}
	}

	for r, cells := range rows {
		if len(cells) == 0 {
			continue
		}
		sort.Slice(cells, func(i, j int) bool { return cells[i].Col < cells[j].Col })

		var b strings.Builder
		b.WriteString(strings.Repeat(" ", maxWidth-len(cells)))
		for i, c := range cells {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(cellGlyph(c))
		}
		fmt.Printf(" %d  %-*s  (cols %d-%d)\n", r, 2*maxWidth-1, b.String(), cells[0].Col, cells[len(cells)-1].Col)
	}
}

func cellGlyph(c Cell) string {
	switch {
	case c.Letter != "" && c.DoubleScore:
		return strings.ToLower(c.Letter)
	case c.Letter != "":
		return c.Letter
	case c.DoubleScore:
		return "*"
	default:
		return "."
	}
}

func (o *Output) printRoundResult(r RoundResult) {
	fmt.Printf("Round %d: %d letters dropped\n", r.Session.Round, len(r.Placement.Drops))
	for _, d := range r.Placement.Drops {
		fmt.Printf("  %s -> %s (via %s)\n", d.Letter, d.Cell, strings.Join(d.Path, " "))
	}
	if len(r.Placement.Unplaced) > 0 {
		fmt.Printf("Unplaced: %s\n", strings.Join(r.Placement.Unplaced, ", "))
	}
	if r.Session.State != "playing" {
		fmt.Println("\nGame over!")
		fmt.Printf("Final score: %d\n", r.Session.Score)
	}

	fmt.Println()
	o.printGrid(r.Session.Grid)
}

func (o *Output) printWordResult(w WordResult) {
	fmt.Printf("Scored %s for %d points (round %d, %d adjacent edges)\n",
		w.Word.Word, w.Word.Points, w.Word.Round, w.Word.AdjacentEdges)
	fmt.Printf("Total score: %d\n", w.Session.Score)

	fmt.Println()
	o.printGrid(w.Session.Grid)
}

func (o *Output) printChallenge(c Challenge) {
	fmt.Printf("Daily challenge for %s\n", c.Date)
	fmt.Printf("Seed: %d\n", c.Seed)
	fmt.Printf("Starting letters: %s\n", strings.Join(c.StartingLetters, " "))
	fmt.Printf("Round 2 drop: %s\n", strings.Join(c.FirstDrop, " "))
	fmt.Printf("Round 3 drop: %s\n", strings.Join(c.SecondDrop, " "))
}

func (o *Output) printLeaderboard(l Leaderboard) {
	fmt.Printf("Leaderboard for %s (%d entries):\n", l.Date, len(l.Entries))
	for _, e := range l.Entries {
		o.printEntryLine(e)
	}
}

func (o *Output) printLeaderboardEntry(e LeaderboardEntry) {
	o.printEntryLine(e)
}

func (o *Output) printEntryLine(e LeaderboardEntry) {
	line := fmt.Sprintf("  %d. %s - %d pts (%d words", e.Rank, e.DisplayName, e.Score, e.WordCount)
	if e.LongestWord != "" {
		line += ", longest " + e.LongestWord
	}
	fmt.Println(line + ")")
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
