// Package perm provides small permutation utilities used by the ladder
// generator and its tests.
//
// A permutation of n elements is represented as an []int of length n in
// which every value in [0, n) appears exactly once. p[i] = j reads as
// "element i maps to position j".
//
// The package covers three needs:
//
//   - Construction helpers ([Seq], [Inverse], [Apply]) used by the
//     adjustment algorithm that reconciles a traced ladder with its
//     sampled target permutation
//   - Validation ([IsPermutation]) for invariant checks
//   - Enumeration ([Generate], [Factorial]) used by the statistical
//     uniformity tests, which must index all n! outcomes for small n
package perm

import "slices"

// Seq returns the identity permutation [0, 1, 2, ..., n-1].
//
// For n <= 0, Seq returns an empty slice.
func Seq(n int) []int {
	result := make([]int, max(n, 0))
	for i := range result {
		result[i] = i
	}
	return result
}

// Factorial returns n! (n factorial), the product 1 × 2 × ... × n.
// For n <= 1, Factorial returns 1.
//
// Note that factorials grow extremely fast: 13! = 6,227,020,800 exceeds
// 32-bit int, so callers should keep n small.
func Factorial(n int) int {
	result := 1
	for i := 2; i <= n; i++ {
		result *= i
	}
	return result
}

// IsPermutation reports whether p contains every value in [0, len(p))
// exactly once.
func IsPermutation(p []int) bool {
	seen := make([]bool, len(p))
	for _, v := range p {
		if v < 0 || v >= len(p) || seen[v] {
			return false
		}
		seen[v] = true
	}
	return true
}

// Inverse returns the inverse permutation q with q[p[i]] = i.
//
// Viewing p as "start index → final position", the inverse answers
// "which start index occupies this final position". Inverse assumes p
// is a valid permutation; validate with [IsPermutation] first when the
// input is untrusted.
func Inverse(p []int) []int {
	q := make([]int, len(p))
	for i, v := range p {
		q[v] = i
	}
	return q
}

// Apply returns the composition r with r[i] = q[p[i]], i.e. p applied
// first, then q. Both arguments must have the same length.
func Apply(p, q []int) []int {
	r := make([]int, len(p))
	for i, v := range p {
		r[i] = q[v]
	}
	return r
}

// Generate returns permutations of [0, 1, ..., n-1] using Heap's algorithm.
//
// If limit > 0, Generate returns at most limit permutations.
// If limit <= 0, Generate returns all n! permutations.
//
// Each returned slice is a separate allocation, safe to modify without
// affecting others. For n = 0 the result is [[]], for n = 1 it is [[0]].
//
// For n >= 13 the number of permutations exceeds billions; always pass a
// limit for large n. Heap's algorithm produces each permutation exactly
// once, in a non-lexicographic order.
func Generate(n, limit int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	if n == 1 {
		return [][]int{{0}}
	}

	p := Seq(n)
	state := make([]int, n)

	capacity := limit
	if capacity <= 0 || n <= 12 {
		capacity = Factorial(min(n, 12))
	}
	result := make([][]int, 0, capacity)
	result = append(result, slices.Clone(p))

	for i := 0; i < n && (limit <= 0 || len(result) < limit); {
		if state[i] < i {
			if i&1 == 0 {
				p[0], p[i] = p[i], p[0]
			} else {
				p[state[i]], p[i] = p[i], p[state[i]]
			}
			result = append(result, slices.Clone(p))
			state[i]++
			i = 0
		} else {
			state[i] = 0
			i++
		}
	}
	return result
}
