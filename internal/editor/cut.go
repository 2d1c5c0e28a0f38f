package editor

import (
	"photo-tracer/internal/segment"
	"photo-tracer/pkg/geometry"
)

// cutLineWidth is the rasterized thickness of the cut line in pixels.
const cutLineWidth = 3

// BeginCut arms the cut gesture. The next two points delivered through
// CutPoint (or Click) become the cut endpoints. Re-arming mid-gesture
// discards any recorded anchor.
func (e *Engine) BeginCut() {
	e.state = CutAwaitingFirstPoint
	e.anchorLabel = -1
}

// CancelCut abandons the gesture without touching the label grid.
func (e *Engine) CancelCut() {
	e.state = Idle
	e.anchorLabel = -1
}

// CutPoint feeds one endpoint to the cut gesture. The first point records
// the anchor and its region. The second point must lie in the same region;
// the engine then carves a cutLineWidth-wide line between the points, takes
// 4-connected components of what remains of the region, and mints a fresh
// label for the component containing the second point. Whatever the outcome,
// the gesture ends and the state returns to Idle.
//
// Recoverable outcomes (grid bit-for-bit unchanged): second point outside the
// anchor region (ErrCutOutsideRegion), or a line that fails to separate the
// region into two components (ErrCutDidNotSplit).
func (e *Engine) CutPoint(p geometry.PointInt) (ClickResult, error) {
	switch e.state {
	case CutAwaitingFirstPoint:
		label, err := e.LabelAt(p)
		if err != nil {
			return ClickResult{}, err
		}
		e.anchor = p
		e.anchorLabel = label
		e.state = CutAwaitingSecondPoint
		return ClickResult{Label: label, CutArmed: true}, nil

	case CutAwaitingSecondPoint:
		// The gesture completes (or cancels) no matter what happens below.
		e.state = Idle
		return e.applyCut(p)

	default:
		e.BeginCut()
		return e.CutPoint(p)
	}
}

func (e *Engine) applyCut(p geometry.PointInt) (ClickResult, error) {
	label, err := e.LabelAt(p)
	if err != nil {
		return ClickResult{}, err
	}
	if label != e.anchorLabel {
		return ClickResult{Label: label}, ErrCutOutsideRegion
	}

	w, h := e.labels.W, e.labels.H
	line := rasterizeLine(e.anchor, p, cutLineWidth, w, h)

	// Remove the line from the region's mask and see what is left.
	remainder := make([]bool, w*h)
	for i, v := range e.labels.Pix {
		remainder[i] = v == e.anchorLabel && !line[i]
	}
	comps, n := segment.Components(remainder, w, h)
	if n < 2 {
		return ClickResult{Label: label}, ErrCutDidNotSplit
	}

	target := comps[p.Y*w+p.X]
	if target == 0 {
		// The second point sits on the cut line itself. Reassign the largest
		// component that does not contain the anchor (documented tie-break).
		target = largestNonAnchorComponent(comps, n, e.anchor, w)
	}

	newID := e.labels.MaxLabel() + 1
	for i, c := range comps {
		if c == target {
			e.labels.Pix[i] = newID
		}
	}
	// Line pixels stay with the anchor region's original id.

	e.invalidate()
	return ClickResult{Label: e.anchorLabel, CutApplied: true, NewLabel: newID}, nil
}

// largestNonAnchorComponent picks the biggest component whose id differs from
// the anchor's component (or just the biggest, if the anchor is itself on the
// cut line).
func largestNonAnchorComponent(comps []int32, n int, anchor geometry.PointInt, w int) int32 {
	anchorComp := comps[anchor.Y*w+anchor.X]

	sizes := make([]int, n+1)
	for _, c := range comps {
		sizes[c]++
	}

	best, bestSize := int32(0), -1
	for id := int32(1); id <= int32(n); id++ {
		if id == anchorComp {
			continue
		}
		if sizes[id] > bestSize {
			bestSize = sizes[id]
			best = id
		}
	}
	return best
}

// rasterizeLine marks a width-wide Bresenham line between two points, clipped
// to the grid.
func rasterizeLine(a, b geometry.PointInt, width, w, h int) []bool {
	mask := make([]bool, w*h)
	r := width / 2

	stamp := func(cx, cy int) {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				x, y := cx+dx, cy+dy
				if x >= 0 && x < w && y >= 0 && y < h {
					mask[y*w+x] = true
				}
			}
		}
	}

	x0, y0 := a.X, a.Y
	x1, y1 := b.X, b.Y
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errAcc := dx + dy

	for {
		stamp(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			x0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			y0 += sy
		}
	}
	return mask
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
