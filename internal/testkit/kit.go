// Package testkit generates synthetic event sets for tests.
package testkit

import (
	"math/rand"

	"spacetime/domain/events"
)

// LineEvents places n events on the x axis at unit spacing with times
// equal to positions. Fully deterministic.
func LineEvents(n int) *events.EventSet {
	space := make([][]float64, n)
	times := make([]float64, n)
	for i := 0; i < n; i++ {
		space[i] = []float64{float64(i), 0}
		times[i] = float64(i)
	}
	set, err := events.New(space, times)
	if err != nil {
		panic(err)
	}
	return set
}

// UniformEvents scatters n events uniformly over [0,size)^2 with
// uniform times over [0,span).
func UniformEvents(rng *rand.Rand, n int, size, span float64) *events.EventSet {
	space := make([][]float64, n)
	times := make([]float64, n)
	for i := 0; i < n; i++ {
		space[i] = []float64{rng.Float64() * size, rng.Float64() * size}
		times[i] = rng.Float64() * span
	}
	set, err := events.New(space, times)
	if err != nil {
		panic(err)
	}
	return set
}

// ClusteredEvents builds clusters of events tight in both space and
// time, a configuration every interaction test should flag.
func ClusteredEvents(rng *rand.Rand, clusters, perCluster int, spread float64) *events.EventSet {
	n := clusters * perCluster
	space := make([][]float64, 0, n)
	times := make([]float64, 0, n)
	for c := 0; c < clusters; c++ {
		cx := float64(c) * 1000
		cy := float64(c) * 1000
		ct := float64(c) * 1000
		for i := 0; i < perCluster; i++ {
			space = append(space, []float64{
				cx + rng.Float64()*spread,
				cy + rng.Float64()*spread,
			})
			times = append(times, ct+rng.Float64()*spread)
		}
	}
	set, err := events.New(space, times)
	if err != nil {
		panic(err)
	}
	return set
}
