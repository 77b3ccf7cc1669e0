package ladder

// fillNatural populates rows 1..rows-1 of g with randomly placed rungs.
//
// Each row is scanned left to right; every cell still free under the row
// invariant receives a rung with probability prob. The greedy scan needs no
// backtracking: placing a rung only removes its two columns from the
// remaining candidates of the same row.
//
// Row 0 is left empty. The rungless top row gives the participant labels
// breathing room before the first crossing; uniformity does not depend on
// it either way, since the adjustment pass corrects whatever permutation
// the natural layout happens to realize.
func fillNatural(g *grid, prob float64, src Source) {
	for r := 1; r < g.rows(); r++ {
		for c := 0; c < g.cols-1; c++ {
			if g.free(r, c) && src.Float64() < prob {
				g.set(r, c)
			}
		}
	}
}
