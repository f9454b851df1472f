package air

import (
	"github.com/mkrall/hexfall/internal/model"
)

// Service computes which empty cells are reachable from the air above the
// grid. A falling tile can only occupy cells connected to an empty top-row
// cell through a chain of empty adjacent cells.
type Service struct{}

// New creates a new reachability service
func New() *Service {
	return &Service{}
}

// Analyze returns the set of empty cells reachable from above: a breadth-first
// walk seeded with every empty top-row cell, expanding through empty adjacent
// cells at unbounded depth, so air pockets that stay connected around settled
// tiles remain reachable. Only membership is defined; callers must not depend
// on any visitation order.
func (s *Service) Analyze(grid *model.Grid) map[model.CellID]bool {
	reachable := make(map[model.CellID]bool)
	var queue []*model.Cell

	for _, c := range grid.TopRow() {
		if c.IsEmpty() {
			reachable[c.ID] = true
			queue = append(queue, c)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range grid.Neighbors(cur.Pos) {
			if n.IsEmpty() && !reachable[n.ID] {
				reachable[n.ID] = true
				queue = append(queue, n)
			}
		}
	}

	return reachable
}

// EntryPoints returns the reachable empty top-row cells ordered by column.
// These are the cells a falling letter may enter the grid through.
func (s *Service) EntryPoints(grid *model.Grid) []*model.Cell {
	reachable := s.Analyze(grid)
	var out []*model.Cell
	for _, c := range grid.TopRow() {
		if c.IsEmpty() && reachable[c.ID] {
			out = append(out, c)
		}
	}
	return out
}

// Interface for dependency injection
type ServiceInterface interface {
	Analyze(grid *model.Grid) map[model.CellID]bool
	EntryPoints(grid *model.Grid) []*model.Cell
}

var _ ServiceInterface = (*Service)(nil)
