package interaction

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"spacetime/domain/core"
	"spacetime/domain/events"
)

func TestMantelPerfectAlignment(t *testing.T) {
	// Events on a line with time equal to position: the raw spatial and
	// temporal distance vectors are identical, so with the identity
	// transform (con 0, pow 1) the correlation is 1.
	set, err := events.New(
		[][]float64{{0, 0}, {1, 0}, {2, 0}, {3, 0}},
		[]float64{0, 1, 2, 3},
	)
	if err != nil {
		t.Fatal(err)
	}
	res, err := Mantel(set, 0, 0, 1, 0, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(res.Stat-1) > 1e-12 {
		t.Errorf("Stat = %v, want 1", res.Stat)
	}
	if res.PSim != 0 {
		t.Errorf("PSim = %v with no permutations, want 0", res.PSim)
	}
}

func TestMantelDegenerateDistances(t *testing.T) {
	// Coincident points give a zero-variance spatial distance vector,
	// for which the correlation is undefined.
	set, err := events.New(
		[][]float64{{1, 1}, {1, 1}, {1, 1}},
		[]float64{0, 1, 2},
	)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Mantel(set, 0, 0, 1, 0, 1, nil)
	if !errors.Is(err, core.ErrDegenerateDistance) {
		t.Errorf("got %v, want ErrDegenerateDistance", err)
	}
}

func TestMantelPermutationInference(t *testing.T) {
	const perms = 99
	res, err := Mantel(fixtureSet(t), perms, 1, -1, 1, -1, rand.New(rand.NewSource(31)))
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

func TestMantelStatInRange(t *testing.T) {
	res, err := Mantel(fixtureSet(t), 0, 1, -1, 1, -1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Stat < -1 || res.Stat > 1 {
		t.Errorf("Stat = %v outside [-1, 1]", res.Stat)
	}
}

func TestMantelParameterErrors(t *testing.T) {
	set := fixtureSet(t)
	if _, err := Mantel(set, -1, 1, -1, 1, -1, nil); !errors.Is(err, core.ErrInvalidPermutations) {
		t.Errorf("negative permutations: got %v", err)
	}
	if _, err := Mantel(set, 9, 1, -1, 1, -1, nil); !errors.Is(err, core.ErrMissingRandSource) {
		t.Errorf("nil rng with permutations: got %v", err)
	}
	if _, err := Mantel(nil, 0, 1, -1, 1, -1, nil); err == nil {
		t.Error("nil set: expected error")
	}
}

func TestLowerTriangleLength(t *testing.T) {
	m := distanceMatrix([][]float64{{0, 0}, {3, 4}, {6, 8}})
	vec := lowerTriangle(m)
	if len(vec) != 3 {
		t.Fatalf("len = %d, want 3", len(vec))
	}
	if vec[0] != 5 {
		t.Errorf("vec[0] = %v, want 5", vec[0])
	}
}

func TestRelabeledLowerTriangleIdentity(t *testing.T) {
	m := distanceMatrix([][]float64{{0, 0}, {1, 0}, {5, 0}})
	base := lowerTriangle(m)
	relabeled := relabeledLowerTriangle(m, []int{0, 1, 2})
	for i := range base {
		if base[i] != relabeled[i] {
			t.Errorf("identity relabeling changed entry %d: %v vs %v", i, base[i], relabeled[i])
		}
	}
}
