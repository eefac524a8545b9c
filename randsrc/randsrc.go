// Package randsrc provides the seedable RandomSource used by the MC core.
// It wraps gonum's distuv.Uniform the same way gonum's own CMA-ES and
// CMA-ES-bounded implementations do: a golang.org/x/exp/rand.Rand backs a
// distuv distribution, and the whole chain is deterministic for a fixed
// seed regardless of how many times it is drawn from.
package randsrc

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Source is a seeded source of uniform and log-uniform draws within
// per-call bounds, plus bounded integers for index selection (prior
// duplication/subselection, proposal shuffling). A Source owned by one
// repetition and never shared is what makes RepetitionDriver's concurrent
// repetitions deterministic regardless of worker count.
type Source struct {
	rng *rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	return &Source{rng: rand.New(rand.NewSource(seed))}
}

// Uniform draws a value uniformly from [a, b).
func (s *Source) Uniform(a, b float64) float64 {
	if a >= b {
		return a
	}
	u := distuv.Uniform{Min: a, Max: b, Src: s.rng}
	return u.Rand()
}

// LogUniform draws a value uniformly in log10-space from [a, b), i.e. with
// density proportional to 1/x. a must be strictly positive.
func (s *Source) LogUniform(a, b float64) float64 {
	if a <= 0 {
		a = math.SmallestNonzeroFloat64
	}
	u := distuv.Uniform{Min: math.Log10(a), Max: math.Log10(b), Src: s.rng}
	return math.Pow(10, u.Rand())
}

// Intn returns a pseudo-random integer in [0, n).
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.rng.Int63n(int64(n)))
}
