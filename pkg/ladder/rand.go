package ladder

import "math/rand/v2"

// Source supplies the randomness consumed by generation. It exists so tests
// can inject a deterministic sequence; production code normally passes nil
// and gets the process-wide default.
//
// Implementations must return IntN values uniformly in [0, n) and Float64
// values uniformly in [0, 1).
type Source interface {
	IntN(n int) int
	Float64() float64
}

// defaultSource delegates to the auto-seeded top-level math/rand/v2
// generator, which is safe for concurrent use.
type defaultSource struct{}

func (defaultSource) IntN(n int) int    { return rand.IntN(n) }
func (defaultSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns the process-wide random source.
func DefaultSource() Source { return defaultSource{} }

// seededSource is a reproducible PCG-backed source for tests and
// simulations. Not safe for concurrent use.
type seededSource struct {
	r *rand.Rand
}

// NewSeededSource returns a deterministic Source seeded with seed.
// The same seed always yields the same generation sequence.
func NewSeededSource(seed uint64) Source {
	return &seededSource{r: rand.New(rand.NewPCG(seed, seed^0xdeadbeef))}
}

func (s *seededSource) IntN(n int) int    { return s.r.IntN(n) }
func (s *seededSource) Float64() float64 { return s.r.Float64() }
