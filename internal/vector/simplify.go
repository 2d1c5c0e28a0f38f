package vector

import (
	"photo-tracer/pkg/geometry"
)

// simplifyOpen reduces the vertex count of an open polyline using the
// Douglas-Peucker algorithm. Endpoints are always kept.
func simplifyOpen(path []geometry.Point2D, epsilon float64) []geometry.Point2D {
	if len(path) <= 2 {
		return path
	}

	dmax := 0.0
	index := 0
	end := len(path) - 1

	for i := 1; i < end; i++ {
		d := geometry.PerpendicularDistance(path[i], path[0], path[end])
		if d > dmax {
			dmax = d
			index = i
		}
	}

	if dmax > epsilon {
		left := simplifyOpen(path[:index+1], epsilon)
		right := simplifyOpen(path[index:], epsilon)

		result := make([]geometry.Point2D, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	return []geometry.Point2D{path[0], path[end]}
}

// SimplifyClosed simplifies a closed ring (last vertex implicitly connects to
// the first). The ring is split at vertex 0 and at the vertex farthest from
// it, so both anchors survive and the two halves simplify independently. A
// non-positive epsilon returns the ring unchanged.
func SimplifyClosed(ring []geometry.Point2D, epsilon float64) []geometry.Point2D {
	if epsilon <= 0 || len(ring) < 4 {
		return ring
	}

	far := 1
	dmax := 0.0
	for i := 1; i < len(ring); i++ {
		d := ring[0].Distance(ring[i])
		if d > dmax {
			dmax = d
			far = i
		}
	}

	// First chain: ring[0..far]. Second chain: ring[far..end] plus the
	// closing vertex back at ring[0].
	first := simplifyOpen(ring[:far+1], epsilon)

	tail := make([]geometry.Point2D, 0, len(ring)-far+1)
	tail = append(tail, ring[far:]...)
	tail = append(tail, ring[0])
	second := simplifyOpen(tail, epsilon)

	// Join, dropping the shared vertex at far and the duplicated ring[0].
	out := make([]geometry.Point2D, 0, len(first)+len(second)-2)
	out = append(out, first...)
	out = append(out, second[1:len(second)-1]...)
	return out
}
