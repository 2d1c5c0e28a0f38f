package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatField builds a color field where every pixel of a label carries that
// label's fixed color, so region means are exact.
func flatField(g *LabelGrid, colors map[int32][3]float64) *ColorField {
	f := NewColorField(g.W, g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			c := colors[g.At(x, y)]
			f.Set(x, y, c[0], c[1], c[2])
		}
	}
	return f
}

func TestConsolidateMergesSmallRegion(t *testing.T) {
	// 4x4 grid, region 0 covers 12 px, region 1 covers 4 px; colors differ
	// by distance 5. With minPixels=6 the small region folds into the big one.
	g := gridFromRows([][]int32{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{1, 1, 1, 1},
	})
	f := flatField(g, map[int32][3]float64{
		0: {100, 128, 128},
		1: {105, 128, 128},
	})

	out := Consolidate(g, f, 6)

	require.Equal(t, int32(0), out.MaxLabel())
	assert.Equal(t, 16, out.Area(0))
}

func TestConsolidateIdentityWhenMinPixelsNonPositive(t *testing.T) {
	g := gridFromRows([][]int32{
		{7, 7, 9},
		{7, 3, 9},
	})
	f := flatField(g, map[int32][3]float64{
		3: {10, 0, 0}, 7: {20, 0, 0}, 9: {30, 0, 0},
	})

	for _, minPixels := range []int{0, -5} {
		out := Consolidate(g, f, minPixels)

		// Same partition of pixels, renumbered to dense ids in sorted order.
		want := gridFromRows([][]int32{
			{1, 1, 2},
			{1, 0, 2},
		})
		assert.True(t, out.Equal(want), "minPixels=%d", minPixels)
	}
}

func TestConsolidateLeavesIsolatedSmallRegion(t *testing.T) {
	// Single-region grid: one undersized region with no neighbors survives.
	g := NewLabelGrid(2, 2)
	f := NewColorField(2, 2)

	out := Consolidate(g, f, 100)

	assert.Equal(t, int32(0), out.MaxLabel())
	assert.Equal(t, 4, out.Area(0))
}

func TestConsolidateClosestColorWins(t *testing.T) {
	// Region 1 (small, middle column) is adjacent to 0 and 2; its color is
	// much closer to 2, so it must merge with 2 even though 0 is scanned first.
	g := gridFromRows([][]int32{
		{0, 0, 1, 2, 2},
		{0, 0, 1, 2, 2},
		{0, 0, 1, 2, 2},
	})
	f := flatField(g, map[int32][3]float64{
		0: {0, 128, 128},
		1: {90, 128, 128},
		2: {100, 128, 128},
	})

	out := Consolidate(g, f, 4)

	require.Equal(t, int32(1), out.MaxLabel())
	assert.Equal(t, 6, out.Area(0))  // region 0 untouched
	assert.Equal(t, 9, out.Area(1))  // 1 absorbed into 2
	assert.Equal(t, out.At(2, 0), out.At(3, 0))
	assert.NotEqual(t, out.At(0, 0), out.At(2, 0))
}

func TestConsolidateTieBreak(t *testing.T) {
	// Region 1 sits between 0 and 2 at identical color distance. The first
	// neighbor in first-encounter adjacency order (the horizontal scan finds
	// 0|1 before 1|2 on each row, both in row-major order) must win; the
	// policy is a fixed contract.
	g := gridFromRows([][]int32{
		{0, 0, 1, 2, 2},
		{0, 0, 1, 2, 2},
	})
	f := flatField(g, map[int32][3]float64{
		0: {50, 128, 128},
		1: {60, 128, 128},
		2: {70, 128, 128},
	})

	out := Consolidate(g, f, 3)

	require.Equal(t, int32(1), out.MaxLabel())
	// 1 merged into 0: left block now 6 px, right block unchanged at 4 px.
	assert.Equal(t, out.At(0, 0), out.At(2, 0))
	assert.NotEqual(t, out.At(2, 0), out.At(3, 0))
}

func TestConsolidateUnionSoundness(t *testing.T) {
	// Chain of small regions all merging toward their closest neighbor:
	// output regions must be unions of whole input regions.
	g := gridFromRows([][]int32{
		{0, 1, 2, 3},
		{0, 1, 2, 3},
	})
	f := flatField(g, map[int32][3]float64{
		0: {0, 128, 128},
		1: {1, 128, 128},
		2: {2, 128, 128},
		3: {200, 128, 128},
	})

	out := Consolidate(g, f, 3)

	// Every input region's pixels map to a single output id.
	for _, id := range []int32{0, 1, 2, 3} {
		var got int32 = -1
		for i, v := range g.Pix {
			if v != id {
				continue
			}
			if got == -1 {
				got = out.Pix[i]
			}
			assert.Equal(t, got, out.Pix[i], "input region %d split across outputs", id)
		}
	}
	// 0,1,2 are within distance 1-2 of each other; 3 is far but undersized,
	// so it still merges into its only neighbor chain. All ids collapse.
	assert.Equal(t, int32(0), out.MaxLabel())
}

func TestRelabelSequentialPreservesPartition(t *testing.T) {
	g := gridFromRows([][]int32{
		{10, 10, 42},
		{7, 42, 42},
	})

	out, n := RelabelSequential(g)

	assert.Equal(t, 3, n)
	want := gridFromRows([][]int32{
		{1, 1, 2},
		{0, 2, 2},
	})
	assert.True(t, out.Equal(want))
	// input untouched
	assert.Equal(t, int32(10), g.At(0, 0))
}
