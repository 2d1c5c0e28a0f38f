package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoToneField is split down the middle: left half dark, right half bright.
func twoToneField(w, h int) *ColorField {
	f := NewColorField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < w/2 {
				f.Set(x, y, 20, 128, 128)
			} else {
				f.Set(x, y, 230, 128, 128)
			}
		}
	}
	return f
}

func TestSLICDenseAndConnected(t *testing.T) {
	f := twoToneField(32, 24)

	g := SLIC(f, 16, 10, 5)

	n := int(g.MaxLabel()) + 1
	require.Greater(t, n, 1)

	// Dense: every id in 0..n-1 has at least one pixel.
	areas := RegionAreas(g, n)
	for id, a := range areas {
		assert.Greater(t, a, 0, "label %d has no pixels", id)
	}

	// Connected: each label forms exactly one 4-connected component.
	for id := 0; id < n; id++ {
		_, comps := Components(g.Mask(int32(id)), g.W, g.H)
		assert.Equal(t, 1, comps, "label %d is disconnected", id)
	}
}

func TestSLICRespectsStrongColorEdge(t *testing.T) {
	f := twoToneField(32, 24)

	g := SLIC(f, 16, 10, 10)

	// No superpixel straddles the hard edge between columns 15 and 16.
	for y := 0; y < g.H; y++ {
		assert.NotEqual(t, g.At(15, y), g.At(16, y), "row %d straddles the edge", y)
	}
}

func TestSLICDeterministic(t *testing.T) {
	f := twoToneField(20, 20)

	a := SLIC(f, 9, 12, 10)
	b := SLIC(f, 9, 12, 10)

	assert.True(t, a.Equal(b))
}

func TestSLICSingleSegment(t *testing.T) {
	f := NewColorField(5, 5)

	g := SLIC(f, 1, 10, 3)

	assert.Equal(t, int32(0), g.MaxLabel())
	assert.Equal(t, 25, g.Area(0))
}
