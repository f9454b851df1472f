package game

import "github.com/mkrall/hexfall/internal/model"

// GameOver reports whether the session has ended: letters went unplaced this
// round AND the top row is sealed. Unplaced letters alone are not terminal;
// while a top-row cell stays open the next drop can still find a way in.
func GameOver(grid *model.Grid, unplaced int) bool {
	return unplaced > 0 && grid.IsTopRowFull()
}
