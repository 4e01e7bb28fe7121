package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic
// permutation inference. Every test receives its own generator so runs
// are independently seedable and tests may execute in parallel without
// sharing generator state.
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for
	// a named operation. The same (name, seed) pair always yields the
	// same stream.
	SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error)
}
