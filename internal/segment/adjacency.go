package segment

// AdjacentPairs returns every unordered pair of distinct labels that share a
// horizontal or vertical pixel boundary, normalized as (min, max) and
// deduplicated. An empty grid yields nil.
func AdjacentPairs(g *LabelGrid) [][2]int32 {
	seen := make(map[uint64]struct{})
	var pairs [][2]int32

	add := func(a, b int32) {
		if a == b {
			return
		}
		lo, hi := a, b
		if lo > hi {
			lo, hi = hi, lo
		}
		key := uint64(uint32(lo))<<32 | uint64(uint32(hi))
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		pairs = append(pairs, [2]int32{lo, hi})
	}

	// Horizontal neighbors, then vertical; row-major within each pass.
	for y := 0; y < g.H; y++ {
		row := g.Pix[y*g.W : (y+1)*g.W]
		for x := 0; x+1 < g.W; x++ {
			add(row[x], row[x+1])
		}
	}
	for y := 0; y+1 < g.H; y++ {
		row := g.Pix[y*g.W : (y+1)*g.W]
		below := g.Pix[(y+1)*g.W : (y+2)*g.W]
		for x := 0; x < g.W; x++ {
			add(row[x], below[x])
		}
	}

	return pairs
}

// NeighborLists builds per-label neighbor lists for a grid whose labels are
// dense in [0, n). Each list preserves first-encounter order of AdjacentPairs;
// the consolidation tie-break is defined over this order, so it must not be
// re-sorted.
func NeighborLists(g *LabelGrid, n int) [][]int32 {
	neighbors := make([][]int32, n)
	for _, p := range AdjacentPairs(g) {
		a, b := p[0], p[1]
		neighbors[a] = append(neighbors[a], b)
		neighbors[b] = append(neighbors[b], a)
	}
	return neighbors
}
