package ladder

import (
	"slices"

	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/perm"
)

// Generate builds a complete [Ladder] for the given participants and
// results. The two lists must be equal-length with 2..100 entries and
// distinct participant names; invalid input is rejected before any random
// number is drawn.
//
// src may be nil, in which case the process-wide default source is used.
// Passing a [NewSeededSource] makes the output fully deterministic.
//
// The stages run strictly in sequence, each feeding the next:
//
//	sample target → generate natural rungs → trace actual →
//	compute adjustments → place adjustments → decorative fill → finalize
//
// The returned ladder realizes the uniformly sampled target permutation
// exactly; Generate re-traces the final rung set and fails with an
// INTERNAL_ERROR if it does not, which would indicate a defect in the
// generator rather than a condition callers can handle.
func Generate(participants, results []string, src Source, cfg Config) (*Ladder, error) {
	if err := Validate(participants, results); err != nil {
		return nil, err
	}
	if src == nil {
		src = DefaultSource()
	}
	cfg = cfg.withDefaults()

	n := len(participants)
	rows := max(cfg.MinRows, n)

	target := samplePermutation(n, src)

	g := newGrid(n, rows)
	fillNatural(g, cfg.RungProbability, src)

	actual := traceAll(g)
	swaps := adjustments(actual, target)
	placeAdjustments(g, swaps, rows)

	fillDecorative(g, cfg.FillProbability, src)

	mapping := traceAll(g)
	if !perm.IsPermutation(mapping) || !slices.Equal(mapping, target) {
		return nil, errors.New(errors.ErrCodeInternal,
			"generated ladder traces to %v instead of sampled target %v", mapping, target)
	}

	return &Ladder{
		Participants: slices.Clone(participants),
		Results:      slices.Clone(results),
		Columns:      n,
		Rows:         g.rows(),
		Rungs:        g.rungs(),
		Mapping:      mapping,
	}, nil
}
