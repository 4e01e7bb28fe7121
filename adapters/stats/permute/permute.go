// Package permute generates index relabelings for permutation
// inference. Relabelings are applied at lookup time; the underlying
// coordinate storage is never reordered, so trials cannot alias each
// other and engines with independent generators may run in parallel.
package permute

import (
	"math/rand"
)

// Engine draws permutations from an injected generator. It is not safe
// for concurrent use; give each goroutine its own Engine.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine around the supplied generator.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Indices returns a uniform random permutation of 0..n-1 (Fisher-Yates).
func (e *Engine) Indices(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Values returns a permuted copy of xs, leaving xs untouched.
func (e *Engine) Values(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	for i := len(out) - 1; i > 0; i-- {
		j := e.rng.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
