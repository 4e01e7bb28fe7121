package interaction

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
)

// poissonTail returns P(X > k) for X ~ Poisson(lambda). Callers must
// ensure lambda > 0.
func poissonTail(k int, lambda float64) float64 {
	dist := distuv.Poisson{Lambda: lambda}
	return 1 - dist.CDF(float64(k))
}

// hypergeomCDF returns P(X <= k) for a hypergeometric draw of `draws`
// items from a population of `population` items containing `successes`
// success states. Terms are accumulated from log-binomials to stay
// stable for large populations.
func hypergeomCDF(k, population, successes, draws int) float64 {
	lo := draws + successes - population
	if lo < 0 {
		lo = 0
	}
	hi := draws
	if successes < hi {
		hi = successes
	}
	if k < lo {
		return 0
	}
	if k >= hi {
		return 1
	}
	logDenom := combin.LogGeneralizedBinomial(float64(population), float64(draws))
	sum := 0.0
	for x := lo; x <= k; x++ {
		sum += math.Exp(combin.LogGeneralizedBinomial(float64(successes), float64(x)) +
			combin.LogGeneralizedBinomial(float64(population-successes), float64(draws-x)) -
			logDenom)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}
