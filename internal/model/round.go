package model

// MinWordLength is the fewest cells a scorable word may use
const MinWordLength = 3

// TilesForRound returns how many letter tiles fall at the start of the given
// round. Round one drops nothing (the board is seeded with starting tiles);
// later rounds ramp from three tiles up to six.
func TilesForRound(round int) int {
	switch {
	case round <= 1:
		return 0
	case round <= 4:
		return 3
	case round <= 7:
		return 4
	case round <= 10:
		return 5
	default:
		return 6
	}
}

// FallingBatch is the ordered set of letters dropped in a single round
type FallingBatch []rune

// Placement is the outcome of dropping a batch onto the grid
type Placement struct {
	Grid     *Grid
	Paths    map[CellID][]CellID // resting cell -> ordered entry-to-rest path
	Unplaced []rune              // letters that found no resting cell
}
