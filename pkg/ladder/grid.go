package ladder

// grid is the mutable working structure shared by the generation stages.
// cells[r][c] is true when a rung connects columns c and c+1 at row r, so
// each row has cols-1 usable cells.
//
// The row invariant (no two rungs in one row touch a common column) is
// enforced at every insertion point via free, never repaired after the fact.
type grid struct {
	cols  int
	cells [][]bool
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols}
	for range rows {
		g.addRow()
	}
	return g
}

func (g *grid) rows() int { return len(g.cells) }

func (g *grid) addRow() {
	g.cells = append(g.cells, make([]bool, g.cols-1))
}

// at reports whether a rung starts at column c in row r.
func (g *grid) at(r, c int) bool {
	return c >= 0 && c < g.cols-1 && g.cells[r][c]
}

// set places a rung connecting columns c and c+1 at row r.
func (g *grid) set(r, c int) {
	g.cells[r][c] = true
}

// free reports whether a rung at (r, c) would keep the row invariant: the
// cell itself and both neighboring cells must be empty, since a rung at c-1
// or c+1 would share a column with the new rung.
func (g *grid) free(r, c int) bool {
	return !g.at(r, c-1) && !g.at(r, c) && !g.at(r, c+1)
}

// rungs extracts all placed rungs ordered by row, then column. The scan
// order makes sorting implicit.
func (g *grid) rungs() []Rung {
	var out []Rung
	for r, row := range g.cells {
		for c, set := range row {
			if set {
				out = append(out, Rung{Row: r, Column: c})
			}
		}
	}
	return out
}
