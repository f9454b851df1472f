package model

import (
	"encoding/json"
	"fmt"
)

// CellID is a stable identifier for a grid cell, formatted "r{row}c{col}"
type CellID string

// Position identifies a cell on the grid
type Position struct {
	Row int // 0-indexed from top
	Col int // 0-indexed from left, absolute against the widest row
}

// ID returns the canonical cell identifier for this position
func (p Position) ID() CellID {
	return CellID(fmt.Sprintf("r%dc%d", p.Row, p.Col))
}

// ParseCellID recovers the position encoded in a cell identifier
func ParseCellID(id CellID) (Position, error) {
	var pos Position
	if _, err := fmt.Sscanf(string(id), "r%dc%d", &pos.Row, &pos.Col); err != nil {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	if pos.ID() != id {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidCellID, id)
	}
	return pos, nil
}

// Cell is a single hexagonal cell on the grid
type Cell struct {
	ID          CellID
	Pos         Position
	Letter      rune // 0 means empty
	Placed      bool // a letter has settled here
	PrePlaced   bool // seeded at game start
	DoubleScore bool // doubles the score of words routed through this cell

	// Transient per-round marker: set when a tile lands or shifts this round,
	// cleared before the next round's drop. Gravity only moves marked tiles.
	PlacedThisTurn bool
}

// IsEmpty reports whether the cell holds no letter
func (c *Cell) IsEmpty() bool {
	return c.Letter == 0
}

// Grid is the diamond-shaped hexagonal board: an odd number of rows whose
// widths grow by one up to the middle row and shrink back down. Narrow rows
// are horizontally centered against the widest row; odd gaps round left.
type Grid struct {
	Size int       // width of the middle row; always odd
	Rows [][]*Cell // Rows[r] holds RowWidth(r) cells ordered by column
}

// NewGrid creates an empty diamond grid of the given odd size
func NewGrid(size int) *Grid {
	g := &Grid{Size: size, Rows: make([][]*Cell, size)}
	for r := 0; r < size; r++ {
		width := g.RowWidth(r)
		first := g.FirstCol(r)
		row := make([]*Cell, width)
		for i := 0; i < width; i++ {
			pos := Position{Row: r, Col: first + i}
			row[i] = &Cell{ID: pos.ID(), Pos: pos}
		}
		g.Rows[r] = row
	}
	return g
}

// NewGridWithDoubleCells creates a grid and marks count distinct cells as
// double-score, chosen by the supplied Intn-style picker. Seeded pickers give
// every player identical boards.
func NewGridWithDoubleCells(size, count int, intn func(int) int) *Grid {
	g := NewGrid(size)
	var candidates []*Cell
	g.ForEach(func(c *Cell) {
		candidates = append(candidates, c)
	})
	for i := 0; i < count && len(candidates) > 0; i++ {
		idx := intn(len(candidates))
		candidates[idx].DoubleScore = true
		candidates = append(candidates[:idx], candidates[idx+1:]...)
	}
	return g
}

// RowWidth returns the number of cells in the given row
func (g *Grid) RowWidth(row int) int {
	mid := g.Size / 2
	d := row - mid
	if d < 0 {
		d = -d
	}
	return g.Size - d
}

// FirstCol returns the absolute column of the leftmost cell in the row
func (g *Grid) FirstCol(row int) int {
	return (g.Size - g.RowWidth(row)) / 2
}

// Cell returns the cell at pos, or nil if pos lies outside the diamond
func (g *Grid) Cell(pos Position) *Cell {
	if pos.Row < 0 || pos.Row >= g.Size {
		return nil
	}
	idx := pos.Col - g.FirstCol(pos.Row)
	if idx < 0 || idx >= g.RowWidth(pos.Row) {
		return nil
	}
	return g.Rows[pos.Row][idx]
}

// CellByID returns the cell with the given identifier, or nil
func (g *Grid) CellByID(id CellID) *Cell {
	pos, err := ParseCellID(id)
	if err != nil {
		return nil
	}
	return g.Cell(pos)
}

// IsValidPosition reports whether pos lies on the diamond
func (g *Grid) IsValidPosition(pos Position) bool {
	return g.Cell(pos) != nil
}

// Adjacent reports whether two positions are neighbouring hex cells: same row
// and columns differing by exactly one, or rows differing by one and columns
// differing by at most one. Every adjacency decision in the engine
// (reachability, gravity, placement, scoring) defers to this predicate.
func (g *Grid) Adjacent(a, b Position) bool {
	if a == b || !g.IsValidPosition(a) || !g.IsValidPosition(b) {
		return false
	}
	switch absInt(a.Row - b.Row) {
	case 0:
		return absInt(a.Col-b.Col) == 1
	case 1:
		return absInt(a.Col-b.Col) <= 1
	default:
		return false
	}
}

// Neighbors returns the cells adjacent to pos, in row-major order
func (g *Grid) Neighbors(pos Position) []*Cell {
	var out []*Cell
	for r := pos.Row - 1; r <= pos.Row+1; r++ {
		for c := pos.Col - 1; c <= pos.Col+1; c++ {
			cand := Position{Row: r, Col: c}
			if g.Adjacent(pos, cand) {
				out = append(out, g.Cell(cand))
			}
		}
	}
	return out
}

// TopRow returns the cells of row zero ordered by column
func (g *Grid) TopRow() []*Cell {
	return g.Rows[0]
}

// IsTopRowFull reports whether every top-row cell holds a letter
func (g *Grid) IsTopRowFull() bool {
	for _, c := range g.Rows[0] {
		if c.IsEmpty() {
			return false
		}
	}
	return true
}

// LetterCount returns the number of cells holding a letter
func (g *Grid) LetterCount() int {
	count := 0
	g.ForEach(func(c *Cell) {
		if !c.IsEmpty() {
			count++
		}
	})
	return count
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	g.ForEach(func(c *Cell) {
		if c.IsEmpty() {
			count++
		}
	})
	return count
}

// VowelRatio returns the fraction of placed letters that are vowels, or zero
// when the grid holds no letters
func (g *Grid) VowelRatio() float64 {
	letters, vowels := 0, 0
	g.ForEach(func(c *Cell) {
		if c.IsEmpty() {
			return
		}
		letters++
		switch c.Letter {
		case 'A', 'E', 'I', 'O', 'U':
			vowels++
		}
	})
	if letters == 0 {
		return 0
	}
	return float64(vowels) / float64(letters)
}

// ForEach visits every cell in row-major order
func (g *Grid) ForEach(fn func(*Cell)) {
	for _, row := range g.Rows {
		for _, c := range row {
			fn(c)
		}
	}
}

// ClearTurnFlags resets the per-round placement markers
func (g *Grid) ClearTurnFlags() {
	g.ForEach(func(c *Cell) {
		c.PlacedThisTurn = false
	})
}

// Clone returns a deep copy. Engine passes mutate clones, so a failed
// operation never corrupts the caller's grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{Size: g.Size, Rows: make([][]*Cell, len(g.Rows))}
	for r, row := range g.Rows {
		out.Rows[r] = make([]*Cell, len(row))
		for i, c := range row {
			copied := *c
			out.Rows[r][i] = &copied
		}
	}
	return out
}

type gridJSON struct {
	Size  int        `json:"size"`
	Cells []cellJSON `json:"cells"`
}

type cellJSON struct {
	ID             CellID `json:"id"`
	Row            int    `json:"row"`
	Col            int    `json:"col"`
	Letter         string `json:"letter,omitempty"`
	Placed         bool   `json:"placed,omitempty"`
	PrePlaced      bool   `json:"pre_placed,omitempty"`
	DoubleScore    bool   `json:"double_score,omitempty"`
	PlacedThisTurn bool   `json:"placed_this_turn,omitempty"`
}

// MarshalJSON flattens the diamond into a sparse cell list
func (g *Grid) MarshalJSON() ([]byte, error) {
	raw := gridJSON{Size: g.Size, Cells: make([]cellJSON, 0, g.Size*g.Size)}
	g.ForEach(func(c *Cell) {
		cj := cellJSON{
			ID:             c.ID,
			Row:            c.Pos.Row,
			Col:            c.Pos.Col,
			Placed:         c.Placed,
			PrePlaced:      c.PrePlaced,
			DoubleScore:    c.DoubleScore,
			PlacedThisTurn: c.PlacedThisTurn,
		}
		if c.Letter != 0 {
			cj.Letter = string(c.Letter)
		}
		raw.Cells = append(raw.Cells, cj)
	})
	return json.Marshal(raw)
}

// UnmarshalJSON rebuilds the diamond row structure from the cell list
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rebuilt := NewGrid(raw.Size)
	for _, cj := range raw.Cells {
		cell := rebuilt.Cell(Position{Row: cj.Row, Col: cj.Col})
		if cell == nil {
			return fmt.Errorf("%w: cell %q outside grid", ErrGridConsistency, cj.ID)
		}
		if cj.Letter != "" {
			cell.Letter = []rune(cj.Letter)[0]
		}
		cell.Placed = cj.Placed
		cell.PrePlaced = cj.PrePlaced
		cell.DoubleScore = cj.DoubleScore
		cell.PlacedThisTurn = cj.PlacedThisTurn
	}
	*g = *rebuilt
	return nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
