package ladder

import "github.com/amidalab/amidakuji/pkg/perm"

// adjustments computes the ordered adjacent-swap sequence that converts the
// actual permutation into the target. Each returned value c means "swap
// columns c and c+1"; applied in order below the natural layout, the swaps
// carry every path to its target column.
//
// The algorithm works on arrangements indexed by bottom position: for each
// final position left to right, find the start index that must land there
// and bubble it into place with adjacent swaps. This is insertion via
// adjacent exchanges, so the swap count is the minimal number of adjacent
// transpositions between the two arrangements (bounded by n·(n-1)/2), and
// the emission order is directly placeable top to bottom.
func adjustments(actual, target []int) []int {
	arr := perm.Inverse(actual)  // arr[pos] = start index currently at pos
	want := perm.Inverse(target) // want[pos] = start index that must end at pos

	var swaps []int
	for pos := range arr {
		j := pos
		for arr[j] != want[pos] {
			j++
		}
		for ; j > pos; j-- {
			arr[j-1], arr[j] = arr[j], arr[j-1]
			swaps = append(swaps, j-1)
		}
	}
	return swaps
}

// placeAdjustments appends the swap sequence to the grid as rungs, packing
// them into as few rows as possible below startRow.
//
// Two constraints shape the packing. A row may not hold overlapping rungs
// (the usual invariant), and a swap may never land in an earlier row than a
// swap emitted before it: the sequence is order-sensitive, and hoisting a
// later swap above an earlier one would re-permute columns that are already
// settled. The row pointer enforces the second constraint: it only moves
// forward, and each swap scans from it for the first conflict-free row,
// opening a new row when none of the existing ones fit.
func placeAdjustments(g *grid, swaps []int, startRow int) {
	ptr := startRow
	for _, c := range swaps {
		r := ptr
		for {
			if r == g.rows() {
				g.addRow()
			}
			if g.free(r, c) {
				break
			}
			r++
		}
		g.set(r, c)
		ptr = r
	}
}
