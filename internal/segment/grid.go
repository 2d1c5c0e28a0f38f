// Package segment provides the region label grid, superpixel partitioning,
// region-adjacency analysis, and the consolidation pass that merges
// undersized regions into their closest-colored neighbor.
package segment

import "sort"

// LabelGrid is a dense H×W grid of non-negative region ids, stored row-major.
// Ids are unique per region at creation time but a region may become
// disconnected after a cut; only a relabel pass restores one id per
// connected region.
type LabelGrid struct {
	W, H int
	Pix  []int32
}

// NewLabelGrid allocates a zero-filled label grid.
func NewLabelGrid(w, h int) *LabelGrid {
	return &LabelGrid{W: w, H: h, Pix: make([]int32, w*h)}
}

// At returns the label at (x, y).
func (g *LabelGrid) At(x, y int) int32 {
	return g.Pix[y*g.W+x]
}

// Set assigns the label at (x, y).
func (g *LabelGrid) Set(x, y int, v int32) {
	g.Pix[y*g.W+x] = v
}

// Clone returns a deep copy of the grid.
func (g *LabelGrid) Clone() *LabelGrid {
	pix := make([]int32, len(g.Pix))
	copy(pix, g.Pix)
	return &LabelGrid{W: g.W, H: g.H, Pix: pix}
}

// Equal reports whether two grids have identical dimensions and labels.
func (g *LabelGrid) Equal(other *LabelGrid) bool {
	if other == nil || g.W != other.W || g.H != other.H {
		return false
	}
	for i, v := range g.Pix {
		if other.Pix[i] != v {
			return false
		}
	}
	return true
}

// MaxLabel returns the largest label present, or -1 for an empty grid.
func (g *LabelGrid) MaxLabel() int32 {
	maxID := int32(-1)
	for _, v := range g.Pix {
		if v > maxID {
			maxID = v
		}
	}
	return maxID
}

// Mask returns a row-major boolean mask of the pixels carrying the label.
func (g *LabelGrid) Mask(label int32) []bool {
	mask := make([]bool, len(g.Pix))
	for i, v := range g.Pix {
		if v == label {
			mask[i] = true
		}
	}
	return mask
}

// Area returns the pixel count of the label.
func (g *LabelGrid) Area(label int32) int {
	count := 0
	for _, v := range g.Pix {
		if v == label {
			count++
		}
	}
	return count
}

// Labels returns the sorted set of distinct labels present in the grid.
func (g *LabelGrid) Labels() []int32 {
	seen := make(map[int32]struct{})
	var out []int32
	for _, v := range g.Pix {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
