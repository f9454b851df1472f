package scoring

import (
	"fmt"

	"github.com/mkrall/hexfall/internal/model"
)

const edgeBonus = 0.5

// Service scores letter chains traced across the grid
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// ValidatePath checks that the cell ids form a scorable chain: at least
// model.MinWordLength cells, every cell holding a letter, no cell visited
// twice, and every consecutive pair adjacent on the grid
func (s *Service) ValidatePath(grid *model.Grid, cellIDs []model.CellID) error {
	if len(cellIDs) < model.MinWordLength {
		return model.ErrWordTooShort
	}

	seen := make(map[model.CellID]bool, len(cellIDs))
	var prev *model.Cell
	for _, id := range cellIDs {
		cell := grid.CellByID(id)
		if cell == nil {
			return fmt.Errorf("%w: %s", model.ErrInvalidCellID, id)
		}
		if cell.IsEmpty() {
			return fmt.Errorf("%w: %s", model.ErrCellEmpty, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: %s selected twice", model.ErrWordNotAdjacent, id)
		}
		seen[id] = true

		if prev != nil && !grid.Adjacent(prev.Pos, cell.Pos) {
			return fmt.Errorf("%w: %s and %s", model.ErrWordNotAdjacent, prev.ID, id)
		}
		prev = cell
	}

	return nil
}

// Word reads the letters along the chain into the submitted word
func (s *Service) Word(grid *model.Grid, cellIDs []model.CellID) string {
	letters := make([]rune, 0, len(cellIDs))
	for _, id := range cellIDs {
		cell := grid.CellByID(id)
		if cell == nil || cell.IsEmpty() {
			continue
		}
		letters = append(letters, cell.Letter)
	}
	return string(letters)
}

// AdjacentEdges counts the pairs of selected cells that touch on the grid
// without being consecutive in the chain. Chains that fold back on
// themselves earn a compactness bonus through this count.
func (s *Service) AdjacentEdges(grid *model.Grid, cellIDs []model.CellID) int {
	edges := 0
	for i := 0; i < len(cellIDs); i++ {
		first := grid.CellByID(cellIDs[i])
		if first == nil {
			continue
		}
		for j := i + 2; j < len(cellIDs); j++ {
			second := grid.CellByID(cellIDs[j])
			if second == nil {
				continue
			}
			if grid.Adjacent(first.Pos, second.Pos) {
				edges++
			}
		}
	}
	return edges
}

// Score computes the points for a word of the given length scored in the
// given round, with the given count of non-consecutive adjacent pairs.
// Length counts quadratically, each extra adjacency adds half the base
// again, and the round multiplier steps up every three rounds.
func (s *Service) Score(wordLength, round, adjacentEdges int) int {
	if wordLength < model.MinWordLength {
		return 0
	}
	base := wordLength * wordLength
	multiplier := 1.0 + edgeBonus*float64(adjacentEdges)
	roundBonus := round / 3
	if roundBonus < 1 {
		roundBonus = 1
	}
	return int(float64(base) * multiplier * float64(roundBonus))
}

// WordPoints computes the full points for a validated chain, doubling once
// for every double-score cell the chain passes through
func (s *Service) WordPoints(grid *model.Grid, cellIDs []model.CellID, round int) int {
	edges := s.AdjacentEdges(grid, cellIDs)
	points := s.Score(len(cellIDs), round, edges)
	for _, id := range cellIDs {
		cell := grid.CellByID(id)
		if cell != nil && cell.DoubleScore {
			points *= 2
		}
	}
	return points
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidatePath(grid *model.Grid, cellIDs []model.CellID) error
	Word(grid *model.Grid, cellIDs []model.CellID) string
	AdjacentEdges(grid *model.Grid, cellIDs []model.CellID) int
	Score(wordLength, round, adjacentEdges int) int
	WordPoints(grid *model.Grid, cellIDs []model.CellID, round int) int
}

var _ ServiceInterface = (*Service)(nil)
