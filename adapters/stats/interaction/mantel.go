package interaction

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"spacetime/adapters/stats/permute"
	"spacetime/domain/core"
	"spacetime/domain/events"
	"spacetime/domain/result"
)

// Mantel runs the standardized Mantel test: the Pearson correlation
// between the transformed strictly-lower-triangular entries of the
// spatial and temporal distance matrices, with transforms applied as
// (distance + con)^pow. Inference jointly relabels the rows and
// columns of the temporal matrix. With permutations == 0 only the bare
// statistic is returned.
func Mantel(set *events.EventSet, permutations int, scon, spow, tcon, tpow float64, rng *rand.Rand) (*result.MantelResult, error) {
	if set == nil {
		return nil, fmt.Errorf("nil event set")
	}
	if permutations < 0 {
		return nil, core.ErrInvalidPermutations
	}
	if permutations > 0 && rng == nil {
		return nil, core.ErrMissingRandSource
	}

	smat := distanceMatrix(set.Space())
	tmat := distanceMatrix(set.TimeColumn())
	distvec := transform(lowerTriangle(smat), scon, spow)
	timevec := transform(lowerTriangle(tmat), tcon, tpow)

	r := stat.Correlation(timevec, distvec, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil, fmt.Errorf("%w: pearson correlation undefined for transformed distance vectors", core.ErrDegenerateDistance)
	}

	res := &result.MantelResult{Stat: r, Permutations: permutations}
	if permutations == 0 {
		return res, nil
	}

	n := set.N()
	eng := permute.New(rng)
	count := 0
	for p := 0; p < permutations; p++ {
		rids := eng.Indices(n)
		tv := transform(relabeledLowerTriangle(tmat, rids), tcon, tpow)
		if stat.Correlation(tv, distvec, nil) >= r {
			count++
		}
	}
	res.PSim = (float64(count) + 1) / (float64(permutations) + 1)
	return res, nil
}
