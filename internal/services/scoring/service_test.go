package scoring

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

// Helper to build a grid from row strings; '.' is empty, letters are tiles.
// Each string must match the diamond row width.
func (s *ServiceSuite) buildGrid(rows ...string) *model.Grid {
	grid := model.NewGrid(len(rows))
	for r, letters := range rows {
		s.Require().Len([]rune(letters), grid.RowWidth(r), "row %d", r)
		for i, letter := range letters {
			if letter == '.' {
				continue
			}
			cell := grid.Rows[r][i]
			cell.Letter = letter
			cell.Placed = true
		}
	}
	return grid
}

func ids(raw ...string) []model.CellID {
	out := make([]model.CellID, len(raw))
	for i, r := range raw {
		out[i] = model.CellID(r)
	}
	return out
}

func (s *ServiceSuite) TestScore() {
	tests := []struct {
		name     string
		length   int
		round    int
		edges    int
		expected int
	}{
		{"three letter word round one", 3, 1, 0, 9},
		{"four letter word early round", 4, 3, 0, 16},
		{"four letter word with two extra adjacencies", 4, 3, 2, 32},
		{"five letter word round nine", 5, 9, 0, 75},
		{"round below three keeps multiplier one", 3, 2, 0, 9},
		{"round six doubles", 3, 6, 0, 18},
		{"half bonus truncates", 3, 1, 1, 13},
		{"below minimum length scores nothing", 2, 1, 0, 0},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.Equal(tt.expected, s.service.Score(tt.length, tt.round, tt.edges))
		})
	}
}

func (s *ServiceSuite) TestValidatePath_AcceptsAdjacentChain() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT..",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1", "r2c2"))

	s.NoError(err)
}

func (s *ServiceSuite) TestValidatePath_AcceptsRowCrossingChain() {
	grid := s.buildGrid(
		"...",
		".N..",
		".OT..",
		"....",
		"...",
	)

	// r1c1 -> r2c1 -> r2c2 steps down a row then along it
	err := s.service.ValidatePath(grid, ids("r1c1", "r2c1", "r2c2"))

	s.NoError(err)
}

func (s *ServiceSuite) TestValidatePath_RejectsShortChain() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT..",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1"))

	s.ErrorIs(err, model.ErrWordTooShort)
}

func (s *ServiceSuite) TestValidatePath_RejectsUnknownCell() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT..",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1", "r9c9"))

	s.ErrorIs(err, model.ErrInvalidCellID)
}

func (s *ServiceSuite) TestValidatePath_RejectsMalformedCellID() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT..",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1", "bogus"))

	s.ErrorIs(err, model.ErrInvalidCellID)
}

func (s *ServiceSuite) TestValidatePath_RejectsEmptyCell() {
	grid := s.buildGrid(
		"...",
		"....",
		"CA...",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1", "r2c2"))

	s.ErrorIs(err, model.ErrCellEmpty)
}

func (s *ServiceSuite) TestValidatePath_RejectsRepeatedCell() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT..",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1", "r2c0"))

	s.ErrorIs(err, model.ErrWordNotAdjacent)
}

func (s *ServiceSuite) TestValidatePath_RejectsGap() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT.S",
		"....",
		"...",
	)

	err := s.service.ValidatePath(grid, ids("r2c0", "r2c1", "r2c4"))

	s.ErrorIs(err, model.ErrWordNotAdjacent)
}

func (s *ServiceSuite) TestWord_ReadsLettersInChainOrder() {
	grid := s.buildGrid(
		"...",
		"....",
		"TAC..",
		"....",
		"...",
	)

	word := s.service.Word(grid, ids("r2c2", "r2c1", "r2c0"))

	s.Equal("CAT", word)
}

func (s *ServiceSuite) TestAdjacentEdges_StraightChainHasNone() {
	grid := s.buildGrid(
		"...",
		"....",
		"WORD.",
		"....",
		"...",
	)

	edges := s.service.AdjacentEdges(grid, ids("r2c0", "r2c1", "r2c2", "r2c3"))

	s.Equal(0, edges)
}

func (s *ServiceSuite) TestAdjacentEdges_FoldedChainCountsTouches() {
	grid := s.buildGrid(
		"...",
		".LO.",
		".OP..",
		"....",
		"...",
	)

	// The four cells form a ring: every non-consecutive pair still touches.
	edges := s.service.AdjacentEdges(grid, ids("r1c1", "r1c2", "r2c2", "r2c1"))

	s.Equal(3, edges)
}

func (s *ServiceSuite) TestWordPoints_DoubleCellsDoublePerCell() {
	grid := s.buildGrid(
		"...",
		"....",
		"CAT..",
		"....",
		"...",
	)
	grid.CellByID("r2c1").DoubleScore = true

	points := s.service.WordPoints(grid, ids("r2c0", "r2c1", "r2c2"), 1)

	// Base 9, one double cell
	s.Equal(18, points)

	grid.CellByID("r2c2").DoubleScore = true
	s.Equal(36, s.service.WordPoints(grid, ids("r2c0", "r2c1", "r2c2"), 1))
}

func (s *ServiceSuite) TestWordPoints_FoldedChainEarnsEdgeBonus() {
	grid := s.buildGrid(
		"...",
		".LO.",
		".OP..",
		"....",
		"...",
	)

	points := s.service.WordPoints(grid, ids("r1c1", "r1c2", "r2c2", "r2c1"), 1)

	// Length 4, three extra adjacencies: 16 * 2.5
	s.Equal(40, points)
}
