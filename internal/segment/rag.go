package segment

import (
	"gonum.org/v1/gonum/floats"
)

// Edge connects two adjacent regions; Weight is the Euclidean distance
// between their mean colors.
type Edge struct {
	A, B   int32
	Weight float64
}

// Graph is a region-adjacency graph over a densely labeled grid. Nodes carry
// the area and mean color of their region; edges are weighted by mean-color
// distance. The graph stays valid as long as the base partition it was built
// from is unchanged, so re-cutting at a new threshold does not rebuild it.
type Graph struct {
	Areas []int
	Means [][]float64
	Edges []Edge
}

// BuildGraph constructs the region-adjacency graph for a grid with dense
// labels in [0, n). Edge order follows first-encounter adjacency order.
func BuildGraph(g *LabelGrid, field *ColorField) *Graph {
	n := int(g.MaxLabel()) + 1
	if n <= 0 {
		return &Graph{}
	}

	areas, means := regionStats(g, field, n)
	pairs := AdjacentPairs(g)

	edges := make([]Edge, 0, len(pairs))
	for _, p := range pairs {
		edges = append(edges, Edge{
			A:      p[0],
			B:      p[1],
			Weight: floats.Distance(means[p[0]], means[p[1]], 2),
		})
	}

	return &Graph{Areas: areas, Means: means, Edges: edges}
}

// CutThreshold merges every pair of adjacent regions whose edge weight is
// below thresh, taking connected components of the surviving merge relation,
// and returns a dense relabeling. The input grid must be the one the graph
// was built from (or share its label space); it is not modified.
func CutThreshold(g *LabelGrid, graph *Graph, thresh float64) *LabelGrid {
	n := len(graph.Areas)
	if n <= 1 {
		out, _ := RelabelSequential(g)
		return out
	}

	uf := newUnionFind(n)
	for _, e := range graph.Edges {
		if e.Weight >= thresh {
			continue
		}
		ra, rb := uf.find(e.A), uf.find(e.B)
		if ra != rb {
			uf.parent[ra] = rb
		}
	}

	out := NewLabelGrid(g.W, g.H)
	for i, v := range g.Pix {
		out.Pix[i] = uf.find(v)
	}
	result, _ := RelabelSequential(out)
	return result
}
