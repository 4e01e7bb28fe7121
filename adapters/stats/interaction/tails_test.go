package interaction

import (
	"math"
	"testing"
)

func TestPoissonTail(t *testing.T) {
	// P(X > 1) for lambda 0.4 is 1 - (1 + 0.4)exp(-0.4).
	want := 1 - 1.4*math.Exp(-0.4)
	if got := poissonTail(1, 0.4); math.Abs(got-want) > 1e-12 {
		t.Errorf("poissonTail(1, 0.4) = %v, want %v", got, want)
	}
	if got := poissonTail(0, 2); math.Abs(got-(1-math.Exp(-2))) > 1e-12 {
		t.Errorf("poissonTail(0, 2) = %v, want %v", got, 1-math.Exp(-2))
	}
}

func TestHypergeomCDF(t *testing.T) {
	// Draw 3 from 10 with 4 successes: P(0) = C(6,3)/C(10,3) = 1/6,
	// P(1) = C(4,1)C(6,2)/C(10,3) = 1/2, so P(X <= 1) = 2/3.
	if got := hypergeomCDF(1, 10, 4, 3); math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("hypergeomCDF(1,10,4,3) = %v, want %v", got, 2.0/3.0)
	}
}

func TestHypergeomCDFSupportBounds(t *testing.T) {
	if got := hypergeomCDF(-1, 10, 4, 3); got != 0 {
		t.Errorf("below support: got %v, want 0", got)
	}
	if got := hypergeomCDF(3, 10, 4, 3); got != 1 {
		t.Errorf("at upper support: got %v, want 1", got)
	}
	if got := hypergeomCDF(5, 10, 4, 3); got != 1 {
		t.Errorf("above support: got %v, want 1", got)
	}
	// Zero successes collapses the support to {0}.
	if got := hypergeomCDF(0, 4, 0, 1); got != 1 {
		t.Errorf("zero successes: got %v, want 1", got)
	}
	// Forced draws: drawing 3 from 3 with 2 successes cannot yield
	// fewer than 2.
	if got := hypergeomCDF(1, 3, 2, 3); got != 0 {
		t.Errorf("forced draws: got %v, want 0", got)
	}
}

func TestHypergeomCDFMonotone(t *testing.T) {
	prev := 0.0
	for k := 0; k <= 5; k++ {
		cur := hypergeomCDF(k, 20, 8, 5)
		if cur < prev-1e-12 {
			t.Fatalf("CDF decreased at k=%d: %v < %v", k, cur, prev)
		}
		prev = cur
	}
	if math.Abs(prev-1) > 1e-9 {
		t.Errorf("CDF at upper support = %v, want 1", prev)
	}
}
