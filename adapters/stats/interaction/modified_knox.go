package interaction

import (
	"fmt"
	"math/rand"

	"spacetime/adapters/stats/permute"
	"spacetime/domain/core"
	"spacetime/domain/events"
	"spacetime/domain/result"
)

// ModifiedKnox runs Baker's modified Knox test. The raw joint count of
// within-delta, within-tau pairs (diagonal removed) is centered by the
// degree-product expectation term and halved to count unordered pairs:
//
//	stat = (obsstat - expstat/(n-1)) / 2
//
// where expstat sums the products of each event's spatial and temporal
// degrees. Inference jointly relabels the rows and columns of the
// temporal distance matrix.
func ModifiedKnox(set *events.EventSet, delta, tau float64, permutations int, keep bool, rng *rand.Rand) (*result.ModifiedKnoxResult, error) {
	if set == nil {
		return nil, fmt.Errorf("nil event set")
	}
	if delta < 0 {
		return nil, core.NewThresholdError("delta", delta)
	}
	if tau < 0 {
		return nil, core.NewThresholdError("tau", tau)
	}
	if permutations < 0 {
		return nil, core.ErrInvalidPermutations
	}
	if permutations > 0 && rng == nil {
		return nil, core.ErrMissingRandSource
	}

	n := set.N()
	smat := distanceMatrix(set.Space())
	tmat := distanceMatrix(set.TimeColumn())

	sadj := make([][]bool, n)
	sdeg := make([]int, n)
	for i := 0; i < n; i++ {
		sadj[i] = make([]bool, n)
		for j := 0; j < n; j++ {
			if smat[i][j] <= delta {
				sadj[i][j] = true
				if i != j {
					sdeg[i]++
				}
			}
		}
	}

	identity := make([]int, n)
	for i := range identity {
		identity[i] = i
	}
	observed := bakerStat(sadj, sdeg, tmat, tau, identity)

	res := &result.ModifiedKnoxResult{Stat: observed, Permutations: permutations}
	if permutations == 0 {
		return res, nil
	}

	eng := permute.New(rng)
	if keep {
		res.Sim = make([]float64, permutations)
	}
	count := 0
	for p := 0; p < permutations; p++ {
		rids := eng.Indices(n)
		temp := bakerStat(sadj, sdeg, tmat, tau, rids)
		if temp >= observed {
			count++
		}
		if keep {
			res.Sim[p] = temp
		}
	}
	res.PSim = (float64(count) + 1) / (float64(permutations) + 1)
	return res, nil
}

// bakerStat evaluates the modified Knox statistic with the temporal
// distance matrix relabeled by rids. Spatial adjacency and degrees are
// fixed across trials.
func bakerStat(sadj [][]bool, sdeg []int, tmat [][]float64, tau float64, rids []int) float64 {
	n := len(sadj)
	obs := 0
	expstat := 0
	for i := 0; i < n; i++ {
		tdeg := 0
		for j := 0; j < n; j++ {
			within := tmat[rids[i]][rids[j]] <= tau
			if !within {
				continue
			}
			if i != j {
				tdeg++
			}
			if sadj[i][j] {
				obs++
			}
		}
		expstat += sdeg[i] * tdeg
	}
	obs -= n // diagonal is within-threshold in both matrices
	return (float64(obs) - float64(expstat)/float64(n-1)) / 2
}
