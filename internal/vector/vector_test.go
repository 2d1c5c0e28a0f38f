package vector

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-tracer/pkg/geometry"
)

// maskFromRows builds a mask from '#' (set) and '.' (clear) rows.
func maskFromRows(rows []string) (mask []bool, w, h int) {
	h = len(rows)
	w = len(rows[0])
	mask = make([]bool, w*h)
	for y, row := range rows {
		for x, c := range row {
			if c == '#' {
				mask[y*w+x] = true
			}
		}
	}
	return mask, w, h
}

func TestExtractRectangle(t *testing.T) {
	mask, w, h := maskFromRows([]string{
		"..........",
		"..####....",
		"..####....",
		"..####....",
		"..........",
		"..........",
	})

	polys := Extract(mask, w, h, 0.5)
	require.Len(t, polys, 1)

	p := polys[0]
	require.Len(t, p, 4, "a rectangle simplifies to its corners")
	assert.Equal(t, geometry.Point2D{X: 2, Y: 1}, p[0])
	assert.InDelta(t, 12.0, p.Area(), 1e-9)
	assert.Equal(t, geometry.RectInt{X: 2, Y: 1, Width: 5, Height: 4}, p.Bounds())
}

func TestExtractLShape(t *testing.T) {
	mask, w, h := maskFromRows([]string{
		"##....",
		"##....",
		"####..",
		"####..",
		"......",
	})

	polys := Extract(mask, w, h, 0.5)
	require.Len(t, polys, 1)

	p := polys[0]
	assert.Len(t, p, 6, "an L outline keeps all six corners")
	assert.InDelta(t, 12.0, p.Area(), 1e-9)
}

func TestExtractSeparatesComponents(t *testing.T) {
	// Diagonal touch only: two 4-connected components, two polygons.
	mask, w, h := maskFromRows([]string{
		"##...",
		"##...",
		"..##.",
		"..##.",
	})

	polys := Extract(mask, w, h, 0.5)
	require.Len(t, polys, 2)
	assert.InDelta(t, 4.0, polys[0].Area(), 1e-9)
	assert.InDelta(t, 4.0, polys[1].Area(), 1e-9)
}

func TestExtractEmptyMask(t *testing.T) {
	mask := make([]bool, 20)
	assert.Empty(t, Extract(mask, 5, 4, 1.0))
}

func TestExtractRoundTripsPixels(t *testing.T) {
	// With zero tolerance the outline is the exact crack boundary, so testing
	// each pixel center against the polygon must reproduce the mask.
	mask, w, h := maskFromRows([]string{
		"........",
		".###....",
		".#####..",
		"..####..",
		"..##....",
		"........",
	})

	polys := Extract(mask, w, h, 0)
	require.Len(t, polys, 1)
	ring := []geometry.Point2D(polys[0])

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := geometry.Point2D{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			assert.Equal(t, mask[y*w+x], geometry.PointInPolygon(center, ring),
				"pixel (%d,%d)", x, y)
		}
	}
}

func TestSimplifyClosedZeroEpsilonIsIdentity(t *testing.T) {
	ring := []geometry.Point2D{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	assert.Equal(t, ring, SimplifyClosed(ring, 0))
}

func TestSimplifyClosedDropsCollinearVertices(t *testing.T) {
	ring := []geometry.Point2D{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 4, Y: 0},
		{X: 4, Y: 2}, {X: 4, Y: 4},
		{X: 2, Y: 4}, {X: 0, Y: 4},
		{X: 0, Y: 2},
	}

	out := SimplifyClosed(ring, 0.5)
	require.Len(t, out, 4)
	assert.InDelta(t, 16.0, geometry.PolygonArea(out), 1e-9)
}

func TestWriteSVG(t *testing.T) {
	shapes := []Shape{
		{
			ID:   "shape_000",
			Fill: color.RGBA{R: 10, G: 20, B: 30, A: 255},
			Polygons: []Polygon{
				{{X: 2, Y: 1}, {X: 6, Y: 1}, {X: 6, Y: 4}, {X: 2, Y: 4}},
			},
		},
	}

	var buf bytes.Buffer
	WriteSVG(&buf, 10, 6, shapes)
	out := buf.String()

	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "viewBox=\"0 0 10 6\"")
	assert.Contains(t, out, "<g id=\"shape_000\">")
	assert.Contains(t, out, "M 2,1 L 6,1 L 6,4 L 2,4 Z")
	assert.Contains(t, out, "fill:rgb(10,20,30);stroke:none")
	assert.Contains(t, out, "</svg>")
}
