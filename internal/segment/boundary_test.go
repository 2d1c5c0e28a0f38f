package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoundariesMarksGridBorder(t *testing.T) {
	g := NewLabelGrid(4, 3)

	mask := Boundaries(g)

	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			onBorder := x == 0 || y == 0 || x == 3 || y == 2
			assert.Equal(t, onBorder, mask[y*4+x], "pixel (%d,%d)", x, y)
		}
	}
}

func TestBoundariesMarksLabelChanges(t *testing.T) {
	g := gridFromRows([][]int32{
		{0, 0, 0, 0, 0},
		{0, 0, 1, 0, 0},
		{0, 1, 1, 1, 0},
		{0, 0, 1, 0, 0},
		{0, 0, 0, 0, 0},
	})

	mask := Boundaries(g)

	// Center of the plus is surrounded by its own label on all four sides.
	assert.False(t, mask[2*5+2])
	// Tips and arms of the plus touch region 0.
	assert.True(t, mask[1*5+2])
	assert.True(t, mask[2*5+1])
	assert.True(t, mask[2*5+3])
	assert.True(t, mask[3*5+2])
	// Region-0 pixel next to the plus is boundary too.
	assert.True(t, mask[1*5+1])
}

func TestBoundariesInteriorUniform(t *testing.T) {
	g := gridFromRows([][]int32{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	mask := Boundaries(g)

	assert.False(t, mask[1*4+1])
	assert.False(t, mask[1*4+2])
	assert.False(t, mask[2*4+1])
	assert.False(t, mask[2*4+2])
}

func TestComponentsFourConnected(t *testing.T) {
	// Two diagonal blobs: diagonal contact must not join them.
	mask := []bool{
		true, true, false, false,
		true, true, false, false,
		false, false, true, true,
		false, false, true, true,
	}

	comps, n := Components(mask, 4, 4)

	assert.Equal(t, 2, n)
	assert.Equal(t, comps[0], comps[5])
	assert.Equal(t, comps[10], comps[15])
	assert.NotEqual(t, comps[0], comps[10])
	assert.EqualValues(t, 0, comps[2]) // background stays 0
}

func TestComponentsEmptyMask(t *testing.T) {
	comps, n := Components(make([]bool, 9), 3, 3)

	assert.Equal(t, 0, n)
	for _, c := range comps {
		assert.EqualValues(t, 0, c)
	}
}
