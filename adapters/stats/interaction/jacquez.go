package interaction

import (
	"fmt"
	"math/rand"

	"spacetime/adapters/stats/neighbor"
	"spacetime/adapters/stats/permute"
	"spacetime/domain/core"
	"spacetime/domain/events"
	"spacetime/domain/result"
)

// Jacquez runs the Jacquez k-nearest-neighbor test: the total count,
// over all events, of other events appearing in both the focal event's
// spatial k-NN set and its temporal k-NN set. The nearest-neighbor
// relation is directed, so a pair may contribute at both endpoints;
// the statistic is bounded by n*k. Inference permutes the temporal
// coordinate assignment and rebuilds the temporal k-NN sets while the
// spatial sets stay fixed.
func Jacquez(set *events.EventSet, k, permutations int, rng *rand.Rand) (*result.JacquezResult, error) {
	if set == nil {
		return nil, fmt.Errorf("nil event set")
	}
	n := set.N()
	if k < 1 || k > n-1 {
		return nil, core.NewNeighborKError(k, n)
	}
	if permutations < 0 {
		return nil, core.ErrInvalidPermutations
	}
	if permutations > 0 && rng == nil {
		return nil, core.ErrMissingRandSource
	}

	nns, err := neighbor.KNearest(set.Space(), k)
	if err != nil {
		return nil, err
	}
	nnt, err := neighbor.KNearest(set.TimeColumn(), k)
	if err != nil {
		return nil, err
	}

	observed := knnOverlap(nns, nnt)
	res := &result.JacquezResult{Stat: observed, K: k, Permutations: permutations}
	if permutations == 0 {
		return res, nil
	}

	times := set.Times()
	eng := permute.New(rng)
	count := 0
	for p := 0; p < permutations; p++ {
		trand := eng.Values(times)
		col := make([][]float64, n)
		for i, v := range trand {
			col[i] = []float64{v}
		}
		rnnt, err := neighbor.KNearest(col, k)
		if err != nil {
			return nil, err
		}
		if knnOverlap(nns, rnnt) >= observed {
			count++
		}
	}
	res.PSim = (float64(count) + 1) / (float64(permutations) + 1)
	return res, nil
}

// knnOverlap counts, across all focal points, members common to the
// spatial and temporal nearest-neighbor lists.
func knnOverlap(nns, nnt [][]int) int {
	total := 0
	for i := range nns {
		members := make(map[int]struct{}, len(nnt[i]))
		for _, j := range nnt[i] {
			members[j] = struct{}{}
		}
		for _, j := range nns[i] {
			if _, ok := members[j]; ok {
				total++
			}
		}
	}
	return total
}
