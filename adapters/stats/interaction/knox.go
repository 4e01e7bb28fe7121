package interaction

import (
	"fmt"
	"math/rand"
	"sort"

	"spacetime/adapters/stats/neighbor"
	"spacetime/adapters/stats/permute"
	"spacetime/domain/core"
	"spacetime/domain/events"
	"spacetime/domain/result"
)

// knoxCore holds the neighbor relations and global outputs shared by
// the global and local Knox tests.
type knoxCore struct {
	n      int
	sn     neighbor.Sets // spatial neighbors within delta
	tn     neighbor.Sets // temporal neighbors within tau
	global result.KnoxResult
}

func newKnoxCore(set *events.EventSet, delta, tau float64) (*knoxCore, error) {
	if set == nil {
		return nil, fmt.Errorf("nil event set")
	}
	if delta < 0 {
		return nil, core.NewThresholdError("delta", delta)
	}
	if tau < 0 {
		return nil, core.NewThresholdError("tau", tau)
	}
	n := set.N()

	var sn, tn neighbor.Sets
	if delta == 0 || tau == 0 {
		// Degenerate thresholds: empty relations, so the table reduces
		// to the independence case with every pair in "neither".
		sn = neighbor.Empty(n)
		tn = neighbor.Empty(n)
	} else {
		var err error
		sn, err = neighbor.Within(set.Space(), delta)
		if err != nil {
			return nil, err
		}
		tn, err = neighbor.Within(set.TimeColumn(), tau)
		if err != nil {
			return nil, err
		}
	}

	ns := sn.PairCount()
	nt := tn.PairCount()

	nst := 0
	var stPairs [][2]int
	for i := 0; i < n; i++ {
		for j := range sn[i] {
			if j > i && tn.Has(i, j) {
				nst++
				stPairs = append(stPairs, [2]int{i, j})
			}
		}
	}
	sort.Slice(stPairs, func(a, b int) bool {
		if stPairs[a][0] != stPairs[b][0] {
			return stPairs[a][0] < stPairs[b][0]
		}
		return stPairs[a][1] < stPairs[b][1]
	})

	pairs := n * (n - 1) / 2
	enst := float64(ns) * float64(nt) / float64(pairs)

	observed := result.ContingencyTable{
		{float64(nst), float64(ns - nst)},
		{float64(nt - nst), float64(pairs - ns - nt + nst)},
	}
	expected := result.ContingencyTable{
		{enst, float64(ns) - enst},
		{float64(nt) - enst, float64(pairs) - (enst + float64(ns) - enst + float64(nt) - enst)},
	}

	// With no expected co-occurrence an observed count of zero carries
	// no evidence against independence.
	pPoisson := 1.0
	if enst > 0 {
		pPoisson = poissonTail(nst, enst)
	}

	return &knoxCore{
		n:  n,
		sn: sn,
		tn: tn,
		global: result.KnoxResult{
			NST:      nst,
			NS:       ns,
			NT:       nt,
			Pairs:    pairs,
			Observed: observed,
			Expected: expected,
			PPoisson: pPoisson,
			STPairs:  stPairs,
		},
	}, nil
}

// relabeledPairCount counts unordered space-time neighbor pairs under
// an index relabeling of the temporal assignment. Only the relabeling
// is applied; neighbor sets are never recomputed.
func relabeledPairCount(sn, tn neighbor.Sets, rids []int) int {
	total := 0
	for i := range sn {
		ri := rids[i]
		for j := range sn[i] {
			if tn.Has(ri, rids[j]) {
				total++
			}
		}
	}
	return total / 2
}

// runGlobalInference fills the permutation-inference fields of res.
func runGlobalInference(res *result.KnoxResult, kc *knoxCore, permutations int, keep bool, rng *rand.Rand) error {
	if permutations < 0 {
		return core.ErrInvalidPermutations
	}
	res.Permutations = permutations
	if permutations == 0 {
		return nil
	}
	if rng == nil {
		return core.ErrMissingRandSource
	}
	eng := permute.New(rng)
	if keep {
		res.Sim = make([]float64, permutations)
	}
	exceed := 0
	for p := 0; p < permutations; p++ {
		rids := eng.Indices(kc.n)
		st := relabeledPairCount(kc.sn, kc.tn, rids)
		if st >= res.NST {
			exceed++
		}
		if keep {
			res.Sim[p] = float64(st)
		}
	}
	res.Exceedance = exceed
	res.PSim = (float64(exceed) + 1) / (float64(permutations) + 1)
	return nil
}

// Knox runs the global Knox test for space-time interaction: the
// number of unordered event pairs that are neighbors in both space
// (within delta) and time (within tau), with an analytical Poisson
// upper-tail p-value and optional permutation inference obtained by
// relabeling the temporal assignment.
func Knox(set *events.EventSet, delta, tau float64, permutations int, keep bool, rng *rand.Rand) (*result.KnoxResult, error) {
	kc, err := newKnoxCore(set, delta, tau)
	if err != nil {
		return nil, err
	}
	res := kc.global
	if err := runGlobalInference(&res, kc, permutations, keep, rng); err != nil {
		return nil, err
	}
	return &res, nil
}
