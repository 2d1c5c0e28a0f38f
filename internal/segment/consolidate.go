package segment

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// unionFind is an array-backed disjoint set over dense region ids. It lives
// for a single consolidation or cut pass and is discarded after relabeling.
type unionFind struct {
	parent []int32
}

func newUnionFind(n int) *unionFind {
	parent := make([]int32, n)
	for i := range parent {
		parent[i] = int32(i)
	}
	return &unionFind{parent: parent}
}

// find returns the root of x with path compression.
func (u *unionFind) find(x int32) int32 {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// Consolidate merges every region smaller than minPixels into the adjacent
// region whose mean color is closest in Euclidean distance, then relabels the
// result to a dense 0..N-1 id space. Undersized regions with no neighbors are
// left as-is. minPixels <= 0 degenerates to an identity relabel.
//
// Equal-distance ties go to the first neighbor in first-encounter adjacency
// order (row-major scan, horizontal pass before vertical); the comparison is
// strict, so the earliest minimum wins. This policy is deterministic and
// fixed by tests.
func Consolidate(g *LabelGrid, field *ColorField, minPixels int) *LabelGrid {
	out, n := RelabelSequential(g)
	if n <= 1 {
		return out
	}

	areas, means := regionStats(out, field, n)
	neighbors := NeighborLists(out, n)

	uf := newUnionFind(n)
	merged := false
	for id := 0; id < n; id++ {
		if areas[id] >= minPixels {
			continue
		}
		nbrs := neighbors[id]
		if len(nbrs) == 0 {
			continue
		}

		best := int32(-1)
		bestDist := math.MaxFloat64
		for _, nb := range nbrs {
			d := floats.Distance(means[id], means[nb], 2)
			if d < bestDist {
				bestDist = d
				best = nb
			}
		}
		uf.parent[id] = uf.find(best)
		merged = true
	}

	if !merged {
		return out
	}

	for i, v := range out.Pix {
		out.Pix[i] = uf.find(v)
	}
	result, _ := RelabelSequential(out)
	return result
}
