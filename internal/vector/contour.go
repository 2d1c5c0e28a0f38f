package vector

import (
	"photo-tracer/pkg/geometry"
)

// crack-following directions, y grows downward.
type crackDir int

const (
	dirRight crackDir = iota
	dirDown
	dirLeft
	dirUp
)

func (d crackDir) turnLeft() crackDir  { return (d + 3) % 4 }
func (d crackDir) turnRight() crackDir { return (d + 1) % 4 }

func (d crackDir) step() (dx, dy int) {
	switch d {
	case dirRight:
		return 1, 0
	case dirDown:
		return 0, 1
	case dirLeft:
		return -1, 0
	default:
		return 0, -1
	}
}

// traceExterior walks the outer boundary of the mask's pixels clockwise,
// following the cracks between foreground and background. Vertices are pixel
// corners: the corner (x,y) is the top-left of pixel (x,y). The walk keeps
// foreground on its right, starting at the top-left corner of the
// topmost-leftmost pixel, and ends when that corner is reached again.
//
// Holes inside the region are ignored; only the exterior ring is returned.
func traceExterior(mask []bool, w, h int, start geometry.PointInt) []geometry.Point2D {
	fg := func(x, y int) bool {
		return x >= 0 && x < w && y >= 0 && y < h && mask[y*w+x]
	}

	cx, cy := start.X, start.Y
	dir := dirRight

	var ring []geometry.Point2D
	// Upper bound on crack steps: every pixel contributes at most 4 edges.
	limit := 4 * (w*h + 1)

	for i := 0; i < limit; i++ {
		ring = append(ring, geometry.Point2D{X: float64(cx), Y: float64(cy)})

		// The two pixels ahead of the current corner decide the turn.
		var frontLeft, frontRight bool
		switch dir {
		case dirRight:
			frontLeft, frontRight = fg(cx, cy-1), fg(cx, cy)
		case dirDown:
			frontLeft, frontRight = fg(cx, cy), fg(cx-1, cy)
		case dirLeft:
			frontLeft, frontRight = fg(cx-1, cy), fg(cx-1, cy-1)
		default: // dirUp
			frontLeft, frontRight = fg(cx-1, cy-1), fg(cx, cy-1)
		}

		switch {
		case frontLeft:
			dir = dir.turnLeft()
		case frontRight:
			// straight on
		default:
			dir = dir.turnRight()
		}

		dx, dy := dir.step()
		cx += dx
		cy += dy

		// The start corner has exactly one foreground pixel around it (the
		// topmost-leftmost pixel), so it is crossed exactly once.
		if cx == start.X && cy == start.Y {
			return ring
		}
	}
	return ring
}

// topLeftPixel finds the first set pixel in row-major order.
func topLeftPixel(mask []bool, w int) (geometry.PointInt, bool) {
	for i, v := range mask {
		if v {
			return geometry.PointInt{X: i % w, Y: i / w}, true
		}
	}
	return geometry.PointInt{}, false
}
