package neighbor

import (
	"sort"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// point carries its original index through tree construction, which
// reorders storage.
type point struct {
	vec []float64
	id  int
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.vec[d] - q.vec[d]
}

func (p point) Dims() int { return len(p.vec) }

// Distance returns the squared Euclidean distance; threshold queries
// compare against squared radii accordingly.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i := range p.vec {
		d := p.vec[i] - q.vec[i]
		sum += d * d
	}
	return sum
}

type pointCloud []point

func (p pointCloud) Index(i int) kdtree.Comparable         { return p[i] }
func (p pointCloud) Len() int                              { return len(p) }
func (p pointCloud) Pivot(d kdtree.Dim) int                { return plane{pointCloud: p, Dim: d}.Pivot() }
func (p pointCloud) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	kdtree.Dim
	pointCloud
}

func (p plane) Less(i, j int) bool {
	return p.pointCloud[i].vec[p.Dim] < p.pointCloud[j].vec[p.Dim]
}
func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.pointCloud = p.pointCloud[start:end]
	return p
}
func (p plane) Swap(i, j int) {
	p.pointCloud[i], p.pointCloud[j] = p.pointCloud[j], p.pointCloud[i]
}

type indexTree struct {
	tree *kdtree.Tree
}

func buildTree(coords [][]float64) *indexTree {
	cloud := make(pointCloud, len(coords))
	for i, row := range coords {
		cloud[i] = point{vec: row, id: i}
	}
	return &indexTree{tree: kdtree.New(cloud, false)}
}

// withinSquared returns the ids of all points other than self whose
// squared distance from q is at most r2.
func (t *indexTree) withinSquared(q []float64, self int, r2 float64) []int {
	keep := kdtree.NewDistKeeper(r2)
	t.tree.NearestSet(keep, point{vec: q, id: self})
	var ids []int
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		p := c.Comparable.(point)
		if p.id == self {
			continue
		}
		ids = append(ids, p.id)
	}
	return ids
}

// nearest returns the k nearest points to q other than self, ordered
// by distance then index.
func (t *indexTree) nearest(q []float64, self, k int) []int {
	keep := kdtree.NewNKeeper(k + 1)
	t.tree.NearestSet(keep, point{vec: q, id: self})

	type cand struct {
		id   int
		dist float64
	}
	cands := make([]cand, 0, k+1)
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		p := c.Comparable.(point)
		if p.id == self {
			continue
		}
		cands = append(cands, cand{id: p.id, dist: c.Dist})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].id < cands[b].id
	})
	if len(cands) > k {
		cands = cands[:k]
	}
	ids := make([]int, len(cands))
	for i, c := range cands {
		ids[i] = c.id
	}
	return ids
}
