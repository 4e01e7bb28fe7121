package interaction

import (
	"math/rand"

	"spacetime/adapters/stats/permute"
	"spacetime/domain/events"
	"spacetime/domain/result"
)

// KnoxLocal runs the local Knox test. The local statistic NSTi counts,
// for each event, the other events that are neighbors in both space
// and time; each unordered pair is attributed to both endpoints, so
// the local statistics sum to twice the global NST.
//
// Inference is conditional: in every trial each focal unit is pinned
// back to its own temporal label by a single transposition of the
// trial's relabeling, its local statistic is recomputed against the
// perturbed assignment, and the transposition is undone before moving
// to the next unit. This isolates the contribution of the focal unit's
// own placement while the rest of the assignment stays fixed.
//
// The analytical alternative draws the per-unit p-value from a
// hypergeometric tail with population n-1 and draw size equal to the
// unit's spatial degree, averaging the survival function over every
// unit's temporal degree. The averaged family departs from the
// single-table textbook test; treat its output accordingly.
func KnoxLocal(set *events.EventSet, delta, tau float64, permutations int, keep bool, rng *rand.Rand) (*result.LocalKnoxResult, error) {
	kc, err := newKnoxCore(set, delta, tau)
	if err != nil {
		return nil, err
	}
	res := &result.LocalKnoxResult{KnoxResult: kc.global}
	if err := runGlobalInference(&res.KnoxResult, kc, permutations, keep, rng); err != nil {
		return nil, err
	}

	n := kc.n
	nsti := make([]int, n)
	for i := range nsti {
		nsti[i] = kc.sn.IntersectionCount(kc.tn, i)
	}
	res.NSTi = nsti

	if permutations > 0 {
		eng := permute.New(rng)
		exceed := make([]int, n)
		var sims [][]float64
		if keep {
			sims = make([][]float64, n)
			for i := range sims {
				sims[i] = make([]float64, permutations)
			}
		}
		for p := 0; p < permutations; p++ {
			cond := permute.NewConditional(eng.Indices(n))
			for i := 0; i < n; i++ {
				displaced := cond.Pin(i)
				count := 0
				for j := range kc.sn[i] {
					if kc.tn.Has(i, cond.Label(j)) {
						count++
					}
				}
				if count >= nsti[i] {
					exceed[i]++
				}
				if keep {
					sims[i][p] = float64(count)
				}
				cond.Unpin(i, displaced)
			}
		}
		psims := make([]float64, n)
		for i, e := range exceed {
			psims[i] = (float64(e) + 1) / (float64(permutations) + 1)
		}
		res.Exceedances = exceed
		res.PSims = psims
		res.Sims = sims
	}

	ntj := make([]int, n)
	for j := range ntj {
		ntj[j] = kc.tn.Degree(j)
	}
	ph := make([]float64, n)
	for i := 0; i < n; i++ {
		nsi := kc.sn.Degree(i)
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += hypergeomCDF(nsti[i]-1, n-1, ntj[j], nsi)
		}
		ph[i] = 1 - sum/float64(n)
	}
	res.PHypergeom = ph

	return res, nil
}
