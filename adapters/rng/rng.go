// Package rng implements ports.RNGPort with name-keyed deterministic
// streams.
package rng

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
)

// Streams derives independent generators from (name, seed) pairs. The
// name is folded into the seed so each test in a battery run draws from
// its own sequence even when every test shares one base seed.
type Streams struct{}

// New creates a new stream factory.
func New() *Streams {
	return &Streams{}
}

// SeededStream returns a generator for the named operation.
func (s *Streams) SeededStream(_ context.Context, name string, seed int64) (*rand.Rand, error) {
	if name == "" {
		return nil, fmt.Errorf("stream name cannot be empty")
	}
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := int64(h.Sum64()) ^ seed
	return rand.New(rand.NewSource(mixed)), nil
}
