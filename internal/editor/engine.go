// Package editor owns the authoritative mutable label grid and selection set
// for an editing session and applies operator commands to them: toggle
// selection, split a region by color, cut a region along a line, re-cut the
// base partition at a new threshold, or regenerate the partition entirely.
//
// All commands run to completion on the caller's goroutine; the engine is
// driven by a single command loop and performs no locking. Consumers that
// render previews must request fresh snapshots after a command returns.
package editor

import (
	"errors"
	"fmt"
	"sort"

	"photo-tracer/internal/segment"
	"photo-tracer/pkg/geometry"
)

// CutState tracks progress through the two-click cut gesture.
type CutState int

const (
	// Idle means no cut is in progress; clicks toggle selection.
	Idle CutState = iota
	// CutAwaitingFirstPoint means a cut was armed and needs its anchor point.
	CutAwaitingFirstPoint
	// CutAwaitingSecondPoint means the anchor is set and the next point
	// completes (or cancels) the cut.
	CutAwaitingSecondPoint
)

func (s CutState) String() string {
	switch s {
	case Idle:
		return "Idle"
	case CutAwaitingFirstPoint:
		return "CutAwaitingFirstPoint"
	case CutAwaitingSecondPoint:
		return "CutAwaitingSecondPoint"
	default:
		return "Unknown"
	}
}

// Operator-recoverable conditions. None of these leave the label grid
// modified; the session reports them and continues.
var (
	ErrRegionTooSmall   = errors.New("region too small to split")
	ErrCutDidNotSplit   = errors.New("cut did not split the region")
	ErrCutOutsideRegion = errors.New("second point not in the same region")
	ErrSplitDegenerate  = errors.New("split produced a single cluster")
)

// Clusterer partitions a point set into exactly two clusters in color space.
// Implementations live outside the engine (the standard one wraps OpenCV
// k-means); failures are reported and the triggering command becomes a no-op.
type Clusterer interface {
	TwoCluster(points [][]float64) ([]int, error)
}

// MinSplitPixels is the smallest region SplitRegion will operate on.
const MinSplitPixels = 50

// Params are the segmentation knobs the engine re-applies on re-threshold
// and re-partition. The zero value is not usable; construct via app config.
type Params struct {
	Threshold       float64 // color-distance cut threshold
	Segments        int     // superpixel target count
	Compactness     float64 // superpixel compactness
	MinAreaFraction float64 // regions below this fraction of the image merge away
	SLICIterations  int
}

// Engine is the region edit state machine. It exclusively owns its label
// grid; callers only ever see copies.
type Engine struct {
	params Params
	field  *segment.ColorField

	base  *segment.LabelGrid // original superpixel partition
	graph *segment.Graph     // RAG over base, rebuilt only on re-partition

	labels   *segment.LabelGrid
	boundary []bool

	selected map[int32]struct{}
	selMask  []bool

	state       CutState
	anchor      geometry.PointInt
	anchorLabel int32

	clusterer Clusterer
}

// New builds an engine over the color field: partitions it into superpixels,
// cuts the adjacency graph at the configured threshold, and consolidates
// undersized regions.
func New(field *segment.ColorField, params Params, clusterer Clusterer) *Engine {
	e := &Engine{
		params:    params,
		field:     field,
		selected:  make(map[int32]struct{}),
		clusterer: clusterer,
	}
	e.rebuildPartition(params.Segments, params.Compactness)
	e.recut(params.Threshold)
	return e
}

// NewFromPartition builds an engine over an externally produced superpixel
// partition instead of computing one. The partition is copied; the engine
// owns its grids exclusively from here on.
func NewFromPartition(field *segment.ColorField, base *segment.LabelGrid, params Params, clusterer Clusterer) *Engine {
	e := &Engine{
		params:    params,
		field:     field,
		selected:  make(map[int32]struct{}),
		clusterer: clusterer,
	}
	e.base = base.Clone()
	e.graph = segment.BuildGraph(e.base, field)
	e.recut(params.Threshold)
	return e
}

// minPixels derives the absolute merge threshold from the area fraction.
func (e *Engine) minPixels() int {
	return int(e.params.MinAreaFraction * float64(e.field.W*e.field.H))
}

func (e *Engine) rebuildPartition(segments int, compactness float64) {
	e.params.Segments = segments
	e.params.Compactness = compactness
	e.base = segment.SLIC(e.field, segments, compactness, e.params.SLICIterations)
	e.graph = segment.BuildGraph(e.base, e.field)
}

// recut replaces the label grid wholesale from the base partition, then
// clears the selection and refreshes the boundary mask.
func (e *Engine) recut(threshold float64) {
	e.params.Threshold = threshold
	merged := segment.CutThreshold(e.base, e.graph, threshold)
	e.labels = segment.Consolidate(merged, e.field, e.minPixels())
	e.invalidate()
}

// invalidate drops the selection and recomputes every derived mask. Called
// after any structural change to the label grid.
func (e *Engine) invalidate() {
	e.selected = make(map[int32]struct{})
	e.selMask = make([]bool, len(e.labels.Pix))
	e.boundary = segment.Boundaries(e.labels)
}

// refreshSelectionMask recomputes the selection mask as the exact union of
// the selected labels' masks. Never patched incrementally.
func (e *Engine) refreshSelectionMask() {
	mask := make([]bool, len(e.labels.Pix))
	for i, v := range e.labels.Pix {
		if _, ok := e.selected[v]; ok {
			mask[i] = true
		}
	}
	e.selMask = mask
}

// State returns the current cut state.
func (e *Engine) State() CutState { return e.state }

// Params returns the current segmentation parameters.
func (e *Engine) Params() Params { return e.params }

// Size returns the label grid dimensions.
func (e *Engine) Size() (w, h int) { return e.labels.W, e.labels.H }

// Labels returns a snapshot copy of the label grid.
func (e *Engine) Labels() *segment.LabelGrid { return e.labels.Clone() }

// Boundary returns a copy of the boundary mask.
func (e *Engine) Boundary() []bool {
	out := make([]bool, len(e.boundary))
	copy(out, e.boundary)
	return out
}

// SelectionMask returns a copy of the selection pixel mask.
func (e *Engine) SelectionMask() []bool {
	out := make([]bool, len(e.selMask))
	copy(out, e.selMask)
	return out
}

// Selected returns the selected label ids in ascending order.
func (e *Engine) Selected() []int32 {
	out := make([]int32, 0, len(e.selected))
	for id := range e.selected {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasSelection reports whether any region is selected.
func (e *Engine) HasSelection() bool { return len(e.selected) > 0 }

// LabelAt resolves the region id under a pixel.
func (e *Engine) LabelAt(p geometry.PointInt) (int32, error) {
	if !e.inBounds(p) {
		return 0, fmt.Errorf("point (%d,%d) outside %dx%d grid", p.X, p.Y, e.labels.W, e.labels.H)
	}
	return e.labels.At(p.X, p.Y), nil
}

func (e *Engine) inBounds(p geometry.PointInt) bool {
	return p.X >= 0 && p.X < e.labels.W && p.Y >= 0 && p.Y < e.labels.H
}

// ClickResult describes what a routed click did.
type ClickResult struct {
	Label      int32
	Selected   bool // meaningful for selection clicks
	CutArmed   bool // first cut endpoint recorded
	CutApplied bool
	NewLabel   int32 // fresh id created by a completed cut
}

// Click routes a pointer event: to the cut gesture while one is in progress,
// otherwise to selection toggling.
func (e *Engine) Click(p geometry.PointInt) (ClickResult, error) {
	if e.state != Idle {
		return e.CutPoint(p)
	}
	label, selected, err := e.ToggleSelect(p)
	return ClickResult{Label: label, Selected: selected}, err
}

// ToggleSelect adds the region under p to the selection, or removes it if
// already present. The selection mask is recomputed from scratch either way.
func (e *Engine) ToggleSelect(p geometry.PointInt) (label int32, selected bool, err error) {
	label, err = e.LabelAt(p)
	if err != nil {
		return 0, false, err
	}

	if _, ok := e.selected[label]; ok {
		delete(e.selected, label)
		selected = false
	} else {
		e.selected[label] = struct{}{}
		selected = true
	}
	e.refreshSelectionMask()
	return label, selected, nil
}

// Clear empties the selection without touching the label grid.
func (e *Engine) Clear() {
	e.selected = make(map[int32]struct{})
	e.selMask = make([]bool, len(e.labels.Pix))
}

// ReThreshold re-cuts the original superpixel partition at the new threshold
// and re-consolidates, replacing the label grid wholesale. Idempotent for an
// unchanged threshold.
func (e *Engine) ReThreshold(threshold float64) {
	e.recut(threshold)
}

// RePartition regenerates the superpixel partition and its adjacency graph,
// then re-cuts at the current threshold.
func (e *Engine) RePartition(segments int, compactness float64) {
	e.rebuildPartition(segments, compactness)
	e.recut(e.params.Threshold)
}
