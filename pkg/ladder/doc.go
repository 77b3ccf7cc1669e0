// Package ladder generates amidakuji (ladder lottery) structures.
//
// An amidakuji maps N participants at the top of N vertical lines to N
// results at the bottom, through horizontal rungs between adjacent lines.
// Tracing a line from top to bottom, crossing sideways at every rung it
// meets, yields a permutation of the columns.
//
// # Uniformity
//
// Randomly sprinkled rungs do not produce a uniform permutation: the number
// of rung layouts realizing a permutation varies wildly, so some outcomes
// would be far more likely than others. This package therefore works
// backwards:
//
//  1. Sample a target permutation with an unbiased Fisher–Yates shuffle,
//     which is provably uniform over all N! orderings.
//  2. Generate a natural-looking random rung layout.
//  3. Trace the layout to find the permutation it actually realizes.
//  4. Append the minimal sequence of adjacent swaps, as extra rungs below
//     the natural layout, that corrects the actual permutation into the
//     target.
//  5. Sprinkle canceling rung pairs that add visual noise without touching
//     the mapping.
//
// The resulting [Ladder] realizes exactly the uniformly sampled target, yet
// looks organically random rather than mechanically constructed.
//
// # Purity
//
// Generation is a pure function of its inputs and its [Source]: no I/O, no
// shared state, no goroutines. Concurrent calls need no coordination as long
// as each call uses its own Source ([NewSeededSource] values are not safe
// for concurrent use; the process-wide default source is).
package ladder
