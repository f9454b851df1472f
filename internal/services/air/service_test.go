package air

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

func (s *ServiceSuite) TestAnalyze_EmptyGridFullyReachable() {
	grid := s.buildGrid(
		"...",
		"....",
		".....",
		"....",
		"...",
	)

	reachable := s.service.Analyze(grid)

	s.Len(reachable, 19)
	grid.ForEach(func(c *model.Cell) {
		s.True(reachable[c.ID], "cell %s", c.ID)
	})
}

func (s *ServiceSuite) TestAnalyze_FullRowSealsLowerHalf() {
	grid := s.buildGrid(
		"..",
		"XXX",
		"..",
	)

	reachable := s.service.Analyze(grid)

	s.Len(reachable, 2)
	s.True(reachable["r0c0"])
	s.True(reachable["r0c1"])
	s.False(reachable["r2c0"])
	s.False(reachable["r2c1"])
}

func (s *ServiceSuite) TestAnalyze_PocketAroundTilesStaysConnected() {
	// The right side of the middle row stays open, so air flows around the
	// wall and under it.
	grid := s.buildGrid(
		"...",
		"....",
		"XXXX.",
		"....",
		"...",
	)

	reachable := s.service.Analyze(grid)

	s.True(reachable["r2c4"])
	s.True(reachable["r3c3"], "reached around the wall")
	s.True(reachable["r4c1"], "bottom row via the open channel")
	s.False(reachable["r2c0"], "occupied cells are never reachable")
}

func (s *ServiceSuite) TestAnalyze_OccupiedTopRowCellIsNoSeed() {
	grid := s.buildGrid(
		"X..",
		"....",
		".....",
		"....",
		"...",
	)

	reachable := s.service.Analyze(grid)

	s.False(reachable["r0c1"], "occupied cells are never reachable")
	s.True(reachable["r0c2"], "remaining open top cells still seed")
	s.Len(reachable, 18)
}

func (s *ServiceSuite) TestEntryPoints_SortedByColumnSkippingOccupied() {
	grid := s.buildGrid(
		".X.",
		"....",
		".....",
		"....",
		"...",
	)

	entries := s.service.EntryPoints(grid)

	s.Require().Len(entries, 2)
	s.Equal(model.CellID("r0c1"), entries[0].ID)
	s.Equal(model.CellID("r0c3"), entries[1].ID)
}

func (s *ServiceSuite) TestEntryPoints_NoneWhenTopRowFull() {
	grid := s.buildGrid(
		"XXX",
		"....",
		".....",
		"....",
		"...",
	)

	s.Empty(s.service.EntryPoints(grid))
}
