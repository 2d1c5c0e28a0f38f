// Package vector turns binary pixel masks into simplified closed polygons
// and writes them out as flat-color SVG documents.
package vector

import (
	"photo-tracer/internal/segment"
	"photo-tracer/pkg/geometry"
)

// Polygon is a closed ring of vertices; the last vertex connects back to the
// first implicitly.
type Polygon []geometry.Point2D

// Area returns the polygon's unsigned area in square pixels.
func (p Polygon) Area() float64 {
	return geometry.PolygonArea(p)
}

// Bounds returns the polygon's integer bounding box.
func (p Polygon) Bounds() geometry.RectInt {
	return geometry.PolygonBounds(p)
}

// Extract traces one exterior polygon per 4-connected component of the mask
// and simplifies each with the given tolerance. Components whose outline
// collapses below three vertices are dropped. Holes are not traced.
func Extract(mask []bool, w, h int, tolerance float64) []Polygon {
	comps, n := segment.Components(mask, w, h)
	if n == 0 {
		return nil
	}

	// Topmost-leftmost pixel of each component, in scan order.
	starts := make([]geometry.PointInt, n+1)
	seen := make([]bool, n+1)
	for i, c := range comps {
		if c != 0 && !seen[c] {
			seen[c] = true
			starts[c] = geometry.PointInt{X: i % w, Y: i / w}
		}
	}

	single := make([]bool, w*h)
	var polys []Polygon
	for id := int32(1); id <= int32(n); id++ {
		for i := range single {
			single[i] = comps[i] == id
		}

		ring := traceExterior(single, w, h, starts[id])
		ring = SimplifyClosed(ring, tolerance)
		if len(ring) < 3 {
			continue
		}
		polys = append(polys, Polygon(ring))
	}
	return polys
}
