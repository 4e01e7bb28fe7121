package interaction

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"spacetime/domain/core"
	"spacetime/domain/events"
)

func TestJacquezFixture(t *testing.T) {
	// With k=1 the spatial nearest neighbors are (1,0,3,2,3) and the
	// temporal nearest neighbors are (1,0,1,4,3); they agree for events
	// 0, 1, and 4.
	res, err := Jacquez(fixtureSet(t), 1, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stat != 3 {
		t.Errorf("Stat = %d, want 3", res.Stat)
	}
	if res.K != 1 {
		t.Errorf("K = %d, want 1", res.K)
	}
}

func TestJacquezUpperBound(t *testing.T) {
	// Time equal to position with tie-free spacing makes the temporal
	// and spatial nearest-neighbor sets identical, saturating the n*k
	// bound.
	set, err := events.New(
		[][]float64{{0, 0}, {1, 0}, {3, 0}, {7, 0}, {15, 0}},
		[]float64{0, 1, 3, 7, 15},
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Jacquez(set, 2, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stat != 10 {
		t.Errorf("Stat = %d, want n*k = 10", res.Stat)
	}
}

func TestJacquezStatBounds(t *testing.T) {
	set := fixtureSet(t)
	for k := 1; k <= 4; k++ {
		res, err := Jacquez(set, k, 0, nil)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if res.Stat < 0 || res.Stat > 5*k {
			t.Errorf("k=%d: Stat = %d outside [0, %d]", k, res.Stat, 5*k)
		}
	}
}

func TestJacquezPermutationInference(t *testing.T) {
	const perms = 99
	res, err := Jacquez(fixtureSet(t), 1, perms, rand.New(rand.NewSource(13)))
	if err != nil {
		t.Fatal(err)
	}
	lo := 1.0 / float64(perms+1)
	if res.PSim < lo || res.PSim > 1 {
		t.Errorf("PSim = %v outside [%v, 1]", res.PSim, lo)
	}
	scaled := res.PSim * float64(perms+1)
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		t.Errorf("PSim = %v is off the permutation lattice", res.PSim)
	}
}

func TestJacquezParameterErrors(t *testing.T) {
	set := fixtureSet(t)
	for _, k := range []int{0, -1, 5, 6} {
		if _, err := Jacquez(set, k, 0, nil); !errors.Is(err, core.ErrInvalidNeighborK) {
			t.Errorf("k=%d: got %v, want ErrInvalidNeighborK", k, err)
		}
	}
	if _, err := Jacquez(set, 1, -1, nil); !errors.Is(err, core.ErrInvalidPermutations) {
		t.Errorf("negative permutations: got %v", err)
	}
	if _, err := Jacquez(set, 1, 9, nil); !errors.Is(err, core.ErrMissingRandSource) {
		t.Errorf("nil rng with permutations: got %v", err)
	}
	if _, err := Jacquez(nil, 1, 0, nil); err == nil {
		t.Error("nil set: expected error")
	}
}

func TestKnnOverlapDirected(t *testing.T) {
	nns := [][]int{{1}, {0}, {0}}
	nnt := [][]int{{1}, {2}, {0}}
	if got := knnOverlap(nns, nnt); got != 2 {
		t.Errorf("knnOverlap = %d, want 2", got)
	}
}
