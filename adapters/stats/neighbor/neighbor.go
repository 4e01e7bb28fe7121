// Package neighbor computes threshold-based and k-nearest neighbor
// relations over coordinate arrays. Both a k-d tree path and a brute
// force path are provided; they produce identical results, the tree
// simply avoids the O(n^2) scan for larger inputs.
package neighbor

import (
	"fmt"

	"spacetime/domain/core"
)

// Sets maps each point index to the set of other point indices within
// a distance threshold. The relation is symmetric and excludes self.
type Sets []map[int]struct{}

// Has reports whether j is a neighbor of i.
func (s Sets) Has(i, j int) bool {
	_, ok := s[i][j]
	return ok
}

// Degree returns the number of neighbors of i.
func (s Sets) Degree(i int) int {
	return len(s[i])
}

// PairCount returns the number of unordered neighbor pairs, i.e. the
// sum of degrees halved.
func (s Sets) PairCount() int {
	total := 0
	for _, set := range s {
		total += len(set)
	}
	return total / 2
}

// IntersectionCount returns |s[i] ∩ other[i]|.
func (s Sets) IntersectionCount(other Sets, i int) int {
	a, b := s[i], other[i]
	if len(b) < len(a) {
		a, b = b, a
	}
	count := 0
	for j := range a {
		if _, ok := b[j]; ok {
			count++
		}
	}
	return count
}

// Empty returns all-empty neighbor sets for n points.
func Empty(n int) Sets {
	return emptySets(n)
}

// Within returns, for every point, the set of other points whose
// Euclidean distance is at most threshold. A negative threshold yields
// all-empty sets; callers that consider that a usage error must reject
// it before calling. Uses a k-d tree; results match WithinBrute.
func Within(coords [][]float64, threshold float64) (Sets, error) {
	if err := validateCoords(coords); err != nil {
		return nil, err
	}
	n := len(coords)
	sets := emptySets(n)
	if threshold < 0 {
		return sets, nil
	}
	tree := buildTree(coords)
	r2 := threshold * threshold
	for i := range coords {
		for _, j := range tree.withinSquared(coords[i], i, r2) {
			sets[i][j] = struct{}{}
		}
	}
	return sets, nil
}

// WithinBrute is the O(n^2) reference implementation of Within.
func WithinBrute(coords [][]float64, threshold float64) (Sets, error) {
	if err := validateCoords(coords); err != nil {
		return nil, err
	}
	n := len(coords)
	sets := emptySets(n)
	if threshold < 0 {
		return sets, nil
	}
	r2 := threshold * threshold
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if sqDist(coords[i], coords[j]) <= r2 {
				sets[i][j] = struct{}{}
				sets[j][i] = struct{}{}
			}
		}
	}
	return sets, nil
}

// KNearest returns the k nearest neighbors of every point, self
// excluded. Which of several equidistant candidates at the boundary is
// kept is unspecified.
func KNearest(coords [][]float64, k int) ([][]int, error) {
	if err := validateCoords(coords); err != nil {
		return nil, err
	}
	n := len(coords)
	if k < 1 || k > n-1 {
		return nil, core.NewNeighborKError(k, n)
	}
	tree := buildTree(coords)
	out := make([][]int, n)
	for i := range coords {
		out[i] = tree.nearest(coords[i], i, k)
	}
	return out, nil
}

func emptySets(n int) Sets {
	sets := make(Sets, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	return sets
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func validateCoords(coords [][]float64) error {
	if len(coords) == 0 {
		return fmt.Errorf("%w: empty coordinate array", core.ErrInsufficientEvents)
	}
	dims := len(coords[0])
	if dims == 0 {
		return fmt.Errorf("%w: row 0 has no dimensions", core.ErrRaggedCoordinates)
	}
	for i, row := range coords {
		if len(row) != dims {
			return fmt.Errorf("%w: row %d has %d dimensions, want %d", core.ErrRaggedCoordinates, i, len(row), dims)
		}
	}
	return nil
}
