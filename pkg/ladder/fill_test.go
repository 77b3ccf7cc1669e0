package ladder

import (
	"slices"
	"testing"
)

func TestFillDecorativeNeutral(t *testing.T) {
	src := NewSeededSource(17)
	for _, cols := range []int{2, 3, 5, 12, 40} {
		for range 20 {
			g := newGrid(cols, 14)
			fillNatural(g, 0.5, src)
			before := traceAll(g)

			fillDecorative(g, 0.4, src)
			after := traceAll(g)

			if !slices.Equal(before, after) {
				t.Fatalf("cols=%d: decorative fill changed mapping from %v to %v", cols, before, after)
			}
			checkRowInvariant(t, g)
		}
	}
}

func TestFillDecorativeAddsPairs(t *testing.T) {
	// On an empty grid with probability 1 every scanned position accepts a
	// pair, so the grid must gain rungs and still trace to the identity.
	g := newGrid(6, 11)
	fillDecorative(g, 0.99, NewSeededSource(2))

	if len(g.rungs()) == 0 {
		t.Fatal("decorative fill added no rungs to an empty grid")
	}
	if got := traceAll(g); !slices.Equal(got, []int{0, 1, 2, 3, 4, 5}) {
		t.Errorf("decorative-only grid traces to %v, want identity", got)
	}

	// Pairs come in consecutive-row couples at the same column.
	rows := make(map[[2]int]bool)
	for _, r := range g.rungs() {
		rows[[2]int{r.Row, r.Column}] = true
	}
	for pos := range rows {
		partner := [2]int{pos[0] + 1, pos[1]}
		mirror := [2]int{pos[0] - 1, pos[1]}
		if !rows[partner] && !rows[mirror] {
			t.Errorf("rung at row %d column %d has no canceling partner", pos[0], pos[1])
		}
	}
}

func TestFillDecorativeZeroProbability(t *testing.T) {
	g := newGrid(5, 9)
	fillNatural(g, 0.5, NewSeededSource(4))
	before := len(g.rungs())

	fillDecorative(g, 0, NewSeededSource(4))
	if got := len(g.rungs()); got != before {
		t.Errorf("probability 0 added rungs: %d -> %d", before, got)
	}
}
