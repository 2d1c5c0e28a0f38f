package segment

// RelabelSequential maps the labels present in the grid onto the dense range
// 0..n-1, preserving the numeric order of the original ids, and returns the
// relabeled grid together with n. The input is not modified.
func RelabelSequential(g *LabelGrid) (*LabelGrid, int) {
	labels := g.Labels()
	remap := make(map[int32]int32, len(labels))
	for i, id := range labels {
		remap[id] = int32(i)
	}

	out := NewLabelGrid(g.W, g.H)
	for i, v := range g.Pix {
		out.Pix[i] = remap[v]
	}
	return out, len(labels)
}

// regionStats computes per-label pixel counts and area-weighted mean colors
// for a grid with dense labels in [0, n).
func regionStats(g *LabelGrid, field *ColorField, n int) (areas []int, means [][]float64) {
	areas = make([]int, n)
	sums := make([]float64, 3*n)

	for i, v := range g.Pix {
		areas[v]++
		c := field.AtIndex(i)
		sums[3*v] += c[0]
		sums[3*v+1] += c[1]
		sums[3*v+2] += c[2]
	}

	means = make([][]float64, n)
	for id := 0; id < n; id++ {
		a := float64(areas[id])
		if a == 0 {
			a = 1
		}
		means[id] = []float64{sums[3*id] / a, sums[3*id+1] / a, sums[3*id+2] / a}
	}
	return areas, means
}

// RegionAreas returns the pixel count per label for a grid with dense labels
// in [0, n).
func RegionAreas(g *LabelGrid, n int) []int {
	areas := make([]int, n)
	for _, v := range g.Pix {
		areas[v]++
	}
	return areas
}

// RegionMeans returns the area-weighted mean color per label for a grid with
// dense labels in [0, n).
func RegionMeans(g *LabelGrid, field *ColorField, n int) [][]float64 {
	_, means := regionStats(g, field, n)
	return means
}
