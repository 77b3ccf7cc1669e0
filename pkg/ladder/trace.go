package ladder

import "iter"

// traceColumn walks one column from the top of the grid to the bottom.
// At each row the path crosses right if a rung starts at the current
// column, crosses left if one starts at the column to its left, and
// continues straight otherwise. The row invariant guarantees at most one
// of the two rungs exists.
func traceColumn(g *grid, start int) int {
	col := start
	for r := 0; r < g.rows(); r++ {
		switch {
		case g.at(r, col):
			col++
		case g.at(r, col-1):
			col--
		}
	}
	return col
}

// traceAll computes the permutation realized by the grid: element i is the
// bottom column reached from top column i.
func traceAll(g *grid) []int {
	m := make([]int, g.cols)
	for c := range m {
		m[c] = traceColumn(g, c)
	}
	return m
}

// Tag marks a waypoint's relation to a rung crossing.
type Tag int

const (
	// TagNone marks a plain pass through a row with no crossing.
	TagNone Tag = iota

	// TagBeforeMove marks the position just before crossing a rung.
	TagBeforeMove

	// TagAfterMove marks the position just after crossing a rung.
	TagAfterMove
)

// Waypoint is one position along a traced path. Row -1 is the label
// position above the ladder and Row == Rows the one below it, so a consumer
// can animate the full descent including both endpoints.
type Waypoint struct {
	Column int
	Row    int
	Tag    Tag
}

// Trace returns the bottom column reached from top column start by
// re-walking the rung list. For any Ladder produced by [Generate] this
// equals Mapping[start]; the method exists so consumers and tests can
// verify that consistency independently.
func (l *Ladder) Trace(start int) int {
	return traceColumn(l.grid(), start)
}

// Walk returns the ordered waypoint sequence for the path starting at top
// column start. The sequence is lazy and restartable: each range over it
// re-traces from the top. Rows where a rung is crossed contribute two
// waypoints, tagged [TagBeforeMove] and [TagAfterMove]; all other rows
// contribute one.
//
// Walk yields nothing for an out-of-range start column.
func (l *Ladder) Walk(start int) iter.Seq[Waypoint] {
	return func(yield func(Waypoint) bool) {
		if start < 0 || start >= l.Columns {
			return
		}
		g := l.grid()
		col := start
		if !yield(Waypoint{Column: col, Row: -1}) {
			return
		}
		for r := 0; r < g.rows(); r++ {
			next := col
			switch {
			case g.at(r, col):
				next = col + 1
			case g.at(r, col-1):
				next = col - 1
			}
			if next == col {
				if !yield(Waypoint{Column: col, Row: r}) {
					return
				}
				continue
			}
			if !yield(Waypoint{Column: col, Row: r, Tag: TagBeforeMove}) {
				return
			}
			col = next
			if !yield(Waypoint{Column: col, Row: r, Tag: TagAfterMove}) {
				return
			}
		}
		yield(Waypoint{Column: col, Row: g.rows()})
	}
}

// grid rebuilds the occupancy structure from the immutable rung list.
func (l *Ladder) grid() *grid {
	g := newGrid(l.Columns, l.Rows)
	for _, rung := range l.Rungs {
		g.set(rung.Row, rung.Column)
	}
	return g
}
