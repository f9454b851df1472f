package gravity

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mkrall/hexfall/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
}

// Helper building a grid from row strings: '.' empty, lowercase letters are
// settled tiles, uppercase letters are tiles placed this turn.
func (s *ServiceSuite) buildGrid(rows ...string) *model.Grid {
	grid := model.NewGrid(len(rows))
	for r, letters := range rows {
		s.Require().Len([]rune(letters), grid.RowWidth(r), "row %d", r)
		for i, letter := range letters {
			if letter == '.' {
				continue
			}
			cell := grid.Rows[r][i]
			cell.Placed = true
			if letter >= 'a' && letter <= 'z' {
				cell.Letter = letter - 'a' + 'A'
			} else {
				cell.Letter = letter
				cell.PlacedThisTurn = true
			}
		}
	}
	return grid
}

func (s *ServiceSuite) letterAt(g *model.Grid, id model.CellID) rune {
	cell := g.CellByID(id)
	s.Require().NotNil(cell, "cell %s", id)
	return cell.Letter
}

func (s *ServiceSuite) TestConsolidate_TileFallsToBottom() {
	grid := s.buildGrid(
		".A.",
		"....",
		".....",
		"....",
		"...",
	)

	out, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	s.Equal('A', int32(s.letterAt(out, "r4c2")))
	s.True(out.CellByID("r4c2").PlacedThisTurn)
	s.True(out.CellByID("r0c2").IsEmpty())
}

func (s *ServiceSuite) TestConsolidate_SettledTilesDoNotMove() {
	grid := s.buildGrid(
		".a.",
		"....",
		".....",
		"....",
		"...",
	)

	out, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	s.Equal('A', int32(s.letterAt(out, "r0c2")))
	s.True(out.CellByID("r4c2").IsEmpty())
}

func (s *ServiceSuite) TestConsolidate_TilesStack() {
	grid := s.buildGrid(
		".A.",
		"..B.",
		".....",
		"....",
		"x.x",
	)

	out, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	// Bottom-up scan settles B first; with both diagonals held by settled
	// tiles, A has nowhere to slide and stacks on top.
	s.Equal('B', int32(s.letterAt(out, "r4c2")))
	s.Equal('A', int32(s.letterAt(out, "r3c2")))
}

func (s *ServiceSuite) TestConsolidate_SlidesOffAStackedTile() {
	grid := s.buildGrid(
		".A.",
		"..B.",
		".....",
		"....",
		"...",
	)

	out, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	// B reaches the bottom first; A follows the same column until the low
	// diagonal opens next to B and slides off it.
	s.Equal('B', int32(s.letterAt(out, "r4c2")))
	s.Equal('A', int32(s.letterAt(out, "r4c1")))
}

func (s *ServiceSuite) TestConsolidate_DiagonalAroundBlocker() {
	grid := s.buildGrid(
		".A.",
		"..x.",
		".....",
		"....",
		"...",
	)

	out, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	// Straight down is blocked; the lower column diagonal wins the tie and
	// the tile keeps falling from there.
	s.Equal('A', int32(s.letterAt(out, "r4c1")))
	s.Equal('X', int32(s.letterAt(out, "r1c2")))
}

func (s *ServiceSuite) TestConsolidate_MovedTileLosesPrePlaced() {
	grid := model.NewGrid(5)
	cell := grid.CellByID("r2c2")
	cell.Letter = 'P'
	cell.Placed = true
	cell.PrePlaced = true
	cell.PlacedThisTurn = true

	out, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	landed := out.CellByID("r4c2")
	s.Equal('P', int32(landed.Letter))
	s.False(landed.PrePlaced)
	s.True(landed.PlacedThisTurn)
}

func (s *ServiceSuite) TestConsolidate_Idempotent() {
	grid := s.buildGrid(
		".A.",
		".B..",
		"...C.",
		"....",
		"...",
	)

	once, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	twice, err := s.service.Consolidate(once)
	s.Require().NoError(err)

	once.ForEach(func(c *model.Cell) {
		s.Equal(c.Letter, twice.CellByID(c.ID).Letter, "cell %s", c.ID)
	})
}

func (s *ServiceSuite) TestConsolidate_InputGridUntouched() {
	grid := s.buildGrid(
		".A.",
		"....",
		".....",
		"....",
		"...",
	)

	_, err := s.service.Consolidate(grid)
	s.Require().NoError(err)

	s.Equal('A', int32(s.letterAt(grid, "r0c2")))
	s.True(grid.CellByID("r4c2").IsEmpty())
}
