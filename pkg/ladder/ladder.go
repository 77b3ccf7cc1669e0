package ladder

import (
	"github.com/amidalab/amidakuji/pkg/errors"
)

// Default generation parameters.
const (
	// DefaultMinRows is the minimum number of rows regardless of size.
	// Very small lotteries still get enough vertical space to look like a
	// ladder instead of a single crossing.
	DefaultMinRows = 6

	// DefaultRungProbability is the chance of placing a natural rung at an
	// eligible column pair.
	DefaultRungProbability = 0.5

	// DefaultFillProbability is the chance of inserting a decorative
	// canceling pair at an eligible position.
	DefaultFillProbability = 0.4
)

// Config tunes ladder generation. The zero value means "use defaults"; all
// fields are optional.
type Config struct {
	// MinRows is the minimum row count. The actual row count is
	// max(MinRows, N) before adjustment rows are appended.
	MinRows int

	// RungProbability is the per-position chance of a natural rung.
	// Values outside (0, 1) fall back to the default.
	RungProbability float64

	// FillProbability is the per-position chance of a decorative pair.
	// Zero disables decorative filling; values outside [0, 1) fall back
	// to the default.
	FillProbability float64

	// NoFill disables the decorative filler entirely.
	NoFill bool
}

// withDefaults returns a copy of c with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.MinRows <= 0 {
		c.MinRows = DefaultMinRows
	}
	if c.RungProbability <= 0 || c.RungProbability >= 1 {
		c.RungProbability = DefaultRungProbability
	}
	if c.FillProbability < 0 || c.FillProbability >= 1 {
		c.FillProbability = DefaultFillProbability
	}
	if c.NoFill {
		c.FillProbability = 0
	}
	return c
}

// Rung is a horizontal connector at Row between column Column and column
// Column+1. Rungs are created during generation and never mutated after.
type Rung struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Ladder is the complete, immutable output of [Generate].
//
// Mapping[i] is the result column reached by tracing participant column i
// from top to bottom through Rungs. It is consistent by construction: it is
// exactly what re-tracing the rungs yields, never independently set.
type Ladder struct {
	Participants []string `json:"participants"`
	Results      []string `json:"results"`
	Columns      int      `json:"columns"`
	Rows         int      `json:"rows"`

	// Rungs is sorted by row, then column, for deterministic rendering.
	Rungs []Rung `json:"rungs"`

	// Mapping is the permutation from start column to end column.
	Mapping []int `json:"mapping"`
}

// Pair associates one participant with the result their column reaches.
type Pair struct {
	Participant string `json:"participant"`
	Result      string `json:"result"`
}

// Pairs returns the participant→result association list in participant
// order. This is the human-readable form consumed by exporters.
func (l *Ladder) Pairs() []Pair {
	pairs := make([]Pair, len(l.Participants))
	for i, p := range l.Participants {
		pairs[i] = Pair{Participant: p, Result: l.Results[l.Mapping[i]]}
	}
	return pairs
}

// ResultFor returns the result reached from participant column col.
func (l *Ladder) ResultFor(col int) (string, error) {
	if col < 0 || col >= l.Columns {
		return "", errors.New(errors.ErrCodeInvalidInput, "column %d out of range [0, %d)", col, l.Columns)
	}
	return l.Results[l.Mapping[col]], nil
}

// Validate checks the two input lists without generating anything. It is
// the rejection gate the input side calls before [Generate]: too few or too
// many entries, length mismatch, duplicate participants, and malformed
// names are all reported here, and [Generate] itself refuses to run on
// input that fails it.
func Validate(participants, results []string) error {
	return errors.ValidateEntries(participants, results)
}
