// Package interaction implements the space-time interaction test
// battery: the global and local Knox tests, the standardized Mantel
// test, the Jacquez k-nearest-neighbor test, and Baker's modified Knox
// test.
//
// Every test is a pure function of an event set, its parameters, and
// an injected random generator; nothing draws from package-global
// random state. Cost scales with O(n^2) for the distance-matrix tests
// and O(n^2 * permutations) for naive inference loops; the Knox tests
// recompute only an index relabeling per trial, never the neighbor
// search itself.
package interaction

import (
	"math"
)

// distanceMatrix returns the dense pairwise Euclidean distance matrix.
func distanceMatrix(coords [][]float64) [][]float64 {
	n := len(coords)
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			var sum float64
			for d := range coords[i] {
				diff := coords[i][d] - coords[j][d]
				sum += diff * diff
			}
			dist := math.Sqrt(sum)
			m[i][j] = dist
			m[j][i] = dist
		}
	}
	return m
}

// lowerTriangle extracts the strictly-lower-triangular entries of a
// square matrix in row-major order.
func lowerTriangle(m [][]float64) []float64 {
	n := len(m)
	out := make([]float64, 0, n*(n-1)/2)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			out = append(out, m[i][j])
		}
	}
	return out
}

// relabeledLowerTriangle extracts the strictly-lower triangle of the
// matrix with rows and columns jointly relabeled by perm, without
// materializing the relabeled matrix.
func relabeledLowerTriangle(m [][]float64, perm []int) []float64 {
	n := len(m)
	out := make([]float64, 0, n*(n-1)/2)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			out = append(out, m[perm[i]][perm[j]])
		}
	}
	return out
}

// transform applies (d + con)^pow elementwise, returning a new vector.
func transform(vec []float64, con, pow float64) []float64 {
	out := make([]float64, len(vec))
	for i, v := range vec {
		out[i] = math.Pow(v+con, pow)
	}
	return out
}
