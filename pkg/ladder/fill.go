package ladder

// fillDecorative sprinkles canceling rung pairs over the finished grid.
// A pair is two rungs at the same column in consecutive rows: any path
// entering the upper rung crosses and immediately crosses back, so the
// realized permutation is untouched while the ladder gains visual density.
//
// Row pairs (1,2), (3,4), … are scanned; a pair is only inserted where
// neither row has a rung touching the pair's two columns, which preserves
// the per-row invariant and keeps the cancellation airtight: a third rung
// adjacent to the pair could otherwise reroute a path between the two rows.
func fillDecorative(g *grid, prob float64, src Source) {
	if prob <= 0 {
		return
	}
	for r := 1; r+1 < g.rows(); r += 2 {
		for c := 0; c < g.cols-1; c++ {
			if g.free(r, c) && g.free(r+1, c) && src.Float64() < prob {
				g.set(r, c)
				g.set(r+1, c)
			}
		}
	}
}
