package ladder

import "github.com/amidalab/amidakuji/pkg/perm"

// samplePermutation draws a permutation of [0, n) uniformly over all n!
// orderings using the Fisher–Yates shuffle: walk from the last index down,
// swapping each element with a uniformly chosen element at or before it.
//
// The loop structure is load-bearing. Seemingly similar schemes, such as a
// fixed number of random pairwise swaps or swapping every element with a
// fully random index, are measurably biased and must not be substituted
// here.
func samplePermutation(n int, src Source) []int {
	p := perm.Seq(n)
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}
