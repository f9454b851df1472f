package flood

import (
	"fmt"

	"github.com/mkrall/hexfall/internal/dependencies/random"
	"github.com/mkrall/hexfall/internal/model"
	"github.com/mkrall/hexfall/internal/services/air"
)

// Service drops a batch of letters onto the grid from the top, wave by wave.
// All letters of one round fall simultaneously, so no two of them may cross
// or rest on the same cell, even across waves; letters that find no free
// entry point carry over to the next wave, which re-derives entry points from
// the updated board but still sees earlier descent corridors as taken.
type Service struct {
	air air.ServiceInterface
}

// New creates a new flood placement service
func New(airService air.ServiceInterface) *Service {
	return &Service{air: airService}
}

// maxWaves caps the wave loop; letters still pending afterwards are returned
// unplaced, never dropped silently
const maxWaves = 5

// Place drops the letters onto a copy of the grid. Letters enter in batch
// order, each taking the first free entry point, so placement is a pure
// function of grid and batch. Daily sessions rely on this: the shared payload
// alone determines every board.
func (s *Service) Place(grid *model.Grid, letters model.FallingBatch) (*model.Placement, error) {
	return s.place(grid, letters, nil)
}

// PlaceScattered drops the letters with each one entering at a random free
// entry point. Classic mode uses this for variety; the descent below the
// entry stays fully deterministic.
func (s *Service) PlaceScattered(grid *model.Grid, letters model.FallingBatch, rnd random.Random) (*model.Placement, error) {
	return s.place(grid, letters, rnd)
}

func (s *Service) place(grid *model.Grid, letters model.FallingBatch, rnd random.Random) (*model.Placement, error) {
	out := grid.Clone()
	placement := &model.Placement{
		Grid:  out,
		Paths: make(map[model.CellID][]model.CellID),
	}
	if len(letters) == 0 {
		return placement, nil
	}

	pending := make([]rune, len(letters))
	copy(pending, letters)

	// Descent corridors claimed by letters of this round. Entry cells are not
	// claimed: a later wave may enter where an earlier letter entered, but it
	// may not fall through the same cells below the top row.
	claimed := make(map[model.CellID]bool)

	for wave := 0; wave < maxWaves && len(pending) > 0; wave++ {
		placed, carried, err := s.placeWave(out, pending, placement.Paths, claimed, rnd)
		if err != nil {
			return nil, err
		}
		if placed == 0 {
			break
		}
		pending = carried
	}

	placement.Unplaced = pending
	return placement, nil
}

// placeWave assigns as many pending letters as the free entry points allow
// and walks each down to rest. Returns the number placed and the letters
// carried to the next wave.
func (s *Service) placeWave(g *model.Grid, letters []rune, paths map[model.CellID][]model.CellID, claimed map[model.CellID]bool, rnd random.Random) (int, []rune, error) {
	entries := s.air.EntryPoints(g)
	placed := 0
	var carried []rune

	for _, letter := range letters {
		if len(entries) == 0 {
			carried = append(carried, letter)
			continue
		}

		idx := 0
		if rnd != nil {
			idx = rnd.Intn(len(entries))
		}
		entry := entries[idx]
		entries = append(entries[:idx], entries[idx+1:]...)

		path, rest, err := s.descend(g, entry.Pos, claimed)
		if err != nil {
			return 0, nil, err
		}

		cell := g.Cell(rest)
		cell.Letter = letter
		cell.Placed = true
		cell.PlacedThisTurn = true
		// A descent only ever moves down a row, so path[0] is the sole
		// top-row cell; everything after it is corridor.
		for _, id := range path[1:] {
			claimed[id] = true
		}
		paths[cell.ID] = path
		placed++
	}

	return placed, carried, nil
}

// descend walks a letter down from its entry point. Straight down wins while
// the cell below is open; otherwise the open diagonal with the longer run of
// open cells beneath it, ties to the lower column. The returned path runs
// entry to rest inclusive.
func (s *Service) descend(g *model.Grid, from model.Position, claimed map[model.CellID]bool) ([]model.CellID, model.Position, error) {
	stepCap := g.Size * g.Size
	path := []model.CellID{from.ID()}
	cur := from

	for steps := 0; ; steps++ {
		if steps > stepCap {
			return nil, model.Position{}, fmt.Errorf("%w: descent exceeded %d steps", model.ErrGridConsistency, stepCap)
		}
		next, ok := s.stepDown(g, cur, claimed)
		if !ok {
			return path, cur, nil
		}
		path = append(path, next.ID())
		cur = next
	}
}

func (s *Service) stepDown(g *model.Grid, from model.Position, claimed map[model.CellID]bool) (model.Position, bool) {
	down := model.Position{Row: from.Row + 1, Col: from.Col}
	if s.open(g, from, down, claimed) {
		return down, true
	}

	left := model.Position{Row: from.Row + 1, Col: from.Col - 1}
	right := model.Position{Row: from.Row + 1, Col: from.Col + 1}
	leftOpen := s.open(g, from, left, claimed)
	rightOpen := s.open(g, from, right, claimed)

	switch {
	case leftOpen && rightOpen:
		if s.openRunBelow(g, right, claimed) > s.openRunBelow(g, left, claimed) {
			return right, true
		}
		return left, true
	case leftOpen:
		return left, true
	case rightOpen:
		return right, true
	default:
		return model.Position{}, false
	}
}

// open reports whether to is an adjacent, empty, unclaimed cell
func (s *Service) open(g *model.Grid, from, to model.Position, claimed map[model.CellID]bool) bool {
	if !g.Adjacent(from, to) {
		return false
	}
	c := g.Cell(to)
	return c.IsEmpty() && !claimed[c.ID]
}

// openRunBelow counts the straight-down run of open cells beneath pos
func (s *Service) openRunBelow(g *model.Grid, pos model.Position, claimed map[model.CellID]bool) int {
	count := 0
	cur := pos
	for {
		next := model.Position{Row: cur.Row + 1, Col: cur.Col}
		if !s.open(g, cur, next, claimed) {
			return count
		}
		count++
		cur = next
	}
}

// Interface for dependency injection
type ServiceInterface interface {
	Place(grid *model.Grid, letters model.FallingBatch) (*model.Placement, error)
	PlaceScattered(grid *model.Grid, letters model.FallingBatch, rnd random.Random) (*model.Placement, error)
}

var _ ServiceInterface = (*Service)(nil)
