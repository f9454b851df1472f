package gravity

import (
	"fmt"

	"github.com/mkrall/hexfall/internal/model"
)

// Service settles the tiles placed this round into the deepest cells
// reachable below them. Tiles from earlier rounds never move.
type Service struct{}

// New creates a new gravity service
func New() *Service {
	return &Service{}
}

// passCapFactor bounds the settle loop at gridSize * passCapFactor passes;
// a clean grid always settles well inside the cap
const passCapFactor = 3

// Consolidate returns a copy of the grid with every tile flagged
// PlacedThisTurn dropped as deep as it can go. Each pass scans the bottom row
// to the top so lower tiles vacate space before the tiles above them move,
// and a tile walks strictly one row down per step into an adjacent empty cell
// (same column preferred, then the lowest column). Passes repeat until one
// moves nothing. Exceeding the pass cap means the grid violates its own
// invariants, and ErrGridConsistency is returned rather than a truncated
// settle. Idempotent once settled; the input grid is never mutated.
func (s *Service) Consolidate(grid *model.Grid) (*model.Grid, error) {
	out := grid.Clone()
	maxPasses := out.Size * passCapFactor

	for pass := 0; ; pass++ {
		if pass >= maxPasses {
			return nil, fmt.Errorf("%w: settling exceeded %d passes", model.ErrGridConsistency, maxPasses)
		}
		if !s.settleOnce(out) {
			return out, nil
		}
	}
}

// settleOnce runs one bottom-up pass and reports whether any tile moved
func (s *Service) settleOnce(g *model.Grid) bool {
	moved := false
	for r := g.Size - 1; r >= 0; r-- {
		for _, cell := range g.Rows[r] {
			if cell.IsEmpty() || !cell.PlacedThisTurn {
				continue
			}
			dest := s.deepestBelow(g, cell.Pos)
			if dest == nil {
				continue
			}
			dest.Letter = cell.Letter
			dest.Placed = true
			dest.PlacedThisTurn = true
			dest.PrePlaced = false
			cell.Letter = 0
			cell.Placed = false
			cell.PlacedThisTurn = false
			cell.PrePlaced = false
			moved = true
		}
	}
	return moved
}

// deepestBelow follows row+1 steps through empty adjacent cells and returns
// the deepest destination, or nil when the tile cannot move
func (s *Service) deepestBelow(g *model.Grid, from model.Position) *model.Cell {
	var dest *model.Cell
	cur := from
	for {
		next := s.stepDown(g, cur)
		if next == nil {
			return dest
		}
		dest = next
		cur = next.Pos
	}
}

// stepDown picks the next cell one row down: the same column when open,
// otherwise the lowest open column
func (s *Service) stepDown(g *model.Grid, from model.Position) *model.Cell {
	candidates := []model.Position{
		{Row: from.Row + 1, Col: from.Col},
		{Row: from.Row + 1, Col: from.Col - 1},
		{Row: from.Row + 1, Col: from.Col + 1},
	}
	for _, pos := range candidates {
		if !g.Adjacent(from, pos) {
			continue
		}
		if c := g.Cell(pos); c.IsEmpty() {
			return c
		}
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Consolidate(grid *model.Grid) (*model.Grid, error)
}

var _ ServiceInterface = (*Service)(nil)
