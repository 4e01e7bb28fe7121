// Package result defines the immutable records returned by the
// space-time interaction tests. A result is produced once per test
// call and never mutated afterwards.
package result

// ContingencyTable is the 2x2 cross-tabulation of unordered event
// pairs by spatial-neighbor status (rows) and temporal-neighbor status
// (columns): [[space-time, space-only], [time-only, neither]].
type ContingencyTable [2][2]float64

// Total returns the sum over all four cells, which for a valid table
// equals n(n-1)/2.
func (t ContingencyTable) Total() float64 {
	return t[0][0] + t[0][1] + t[1][0] + t[1][1]
}

// SpaceTime returns the count of pairs that are neighbors in both
// space and time.
func (t ContingencyTable) SpaceTime() float64 { return t[0][0] }

// KnoxResult reports the global Knox test.
type KnoxResult struct {
	NST   int `json:"nst"`   // space-time neighbor pairs
	NS    int `json:"ns"`    // spatial neighbor pairs
	NT    int `json:"nt"`    // temporal neighbor pairs
	Pairs int `json:"pairs"` // total unordered pairs n(n-1)/2

	Observed ContingencyTable `json:"observed"`
	Expected ContingencyTable `json:"expected"`

	// PPoisson is the upper tail of a Poisson distribution with mean
	// Expected[0][0], evaluated at NST.
	PPoisson float64 `json:"p_poisson"`

	Permutations int     `json:"permutations"`
	Exceedance   int     `json:"exceedance,omitempty"`
	PSim         float64 `json:"p_sim,omitempty"` // meaningful only when Permutations > 0

	// STPairs lists the realized space-time neighbor pairs (i < j).
	STPairs [][2]int `json:"st_pairs,omitempty"`

	// Sim holds the permutation distribution when keep was requested.
	Sim []float64 `json:"sim,omitempty"`
}

// LocalKnoxResult extends the global Knox outputs with per-event
// statistics and their conditional-permutation inference.
type LocalKnoxResult struct {
	KnoxResult

	// NSTi is the local statistic: for each event, the number of other
	// events that are neighbors in both space and time. Each unordered
	// pair is attributed to both endpoints, so NSTi sums to 2*NST.
	NSTi []int `json:"nsti"`

	Exceedances []int     `json:"exceedances,omitempty"`
	PSims       []float64 `json:"p_sims,omitempty"` // per-event pseudo p-values

	// PHypergeom holds the per-event analytical p-values from the
	// averaged hypergeometric survival function.
	PHypergeom []float64 `json:"p_hypergeom"`

	// Sims holds per-event permutation distributions when keep was
	// requested; Sims[i][p] is event i's statistic in trial p.
	Sims [][]float64 `json:"sims,omitempty"`
}

// MantelResult reports the standardized Mantel matrix-correlation test.
type MantelResult struct {
	Stat         float64 `json:"stat"`
	Permutations int     `json:"permutations"`
	PSim         float64 `json:"p_sim,omitempty"` // meaningful only when Permutations > 0
}

// JacquezResult reports the Jacquez k-nearest-neighbor test.
type JacquezResult struct {
	Stat         int     `json:"stat"`
	K            int     `json:"k"`
	Permutations int     `json:"permutations"`
	PSim         float64 `json:"p_sim,omitempty"` // meaningful only when Permutations > 0
}

// ModifiedKnoxResult reports Baker's modified Knox test.
type ModifiedKnoxResult struct {
	Stat         float64   `json:"stat"`
	Permutations int       `json:"permutations"`
	PSim         float64   `json:"p_sim,omitempty"` // meaningful only when Permutations > 0
	Sim          []float64 `json:"sim,omitempty"`
}
