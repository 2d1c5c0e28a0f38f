package editor

import (
	"fmt"

	"photo-tracer/pkg/geometry"
)

// SplitRegion partitions the region under p into two clusters in color space
// and mints a fresh label (current max + 1) for the second cluster. Regions
// under MinSplitPixels are refused. A clustering failure or a degenerate
// one-cluster result leaves the grid untouched.
func (e *Engine) SplitRegion(p geometry.PointInt) (int32, error) {
	target, err := e.LabelAt(p)
	if err != nil {
		return 0, err
	}

	var indices []int
	for i, v := range e.labels.Pix {
		if v == target {
			indices = append(indices, i)
		}
	}
	if len(indices) < MinSplitPixels {
		return 0, ErrRegionTooSmall
	}

	points := make([][]float64, len(indices))
	for i, idx := range indices {
		points[i] = e.field.AtIndex(idx)
	}

	assignment, err := e.clusterer.TwoCluster(points)
	if err != nil {
		return 0, fmt.Errorf("color clustering failed: %w", err)
	}
	if len(assignment) != len(indices) {
		return 0, fmt.Errorf("color clustering returned %d assignments for %d points",
			len(assignment), len(indices))
	}

	second := 0
	for _, c := range assignment {
		if c == 1 {
			second++
		}
	}
	if second == 0 || second == len(indices) {
		return 0, ErrSplitDegenerate
	}

	// Cluster 0 keeps the original id; cluster 1 gets a fresh one.
	newID := e.labels.MaxLabel() + 1
	for i, idx := range indices {
		if assignment[i] == 1 {
			e.labels.Pix[idx] = newID
		}
	}

	e.invalidate()
	return newID, nil
}
