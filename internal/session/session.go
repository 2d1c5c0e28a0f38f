// Package session runs the interactive command loop that drives region
// editing and exports. Commands arrive one per line and run to completion in
// order; every status message goes to the session writer, and no operator
// mistake ends the loop.
package session

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"io"
	"strconv"
	"strings"

	"photo-tracer/internal/app"
	"photo-tracer/internal/editor"
	"photo-tracer/pkg/geometry"
)

// Session owns one editing run: the source image, the region edit engine,
// and the adjustable export settings.
type Session struct {
	cfg    app.Config
	img    image.Image // original image; exports sample colors from it
	engine *editor.Engine
	out    io.Writer

	tolerance float64 // polygon simplification in pixels
	preview   bool
	groupIdx  int // next group_NN artifact number
}

// New builds a session over a prepared engine. The image must match the
// engine's grid dimensions.
func New(cfg app.Config, img image.Image, engine *editor.Engine, out io.Writer) *Session {
	return &Session{
		cfg:       cfg,
		img:       img,
		engine:    engine,
		out:       out,
		tolerance: cfg.SimplifyTolerance,
		groupIdx:  1,
	}
}

// Run reads commands until quit or EOF, then writes the final shapes.svg.
func (s *Session) Run(r io.Reader) error {
	s.printHelp()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if s.Execute(line) {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("command input failed: %w", err)
	}

	return s.ExportFinal()
}

func (s *Session) printHelp() {
	fmt.Fprint(s.out,
		"Layer builder commands:\n"+
			"  select X Y      toggle region selection\n"+
			"  clear           clear selection\n"+
			"  split X Y       split region under point by color\n"+
			"  cut [X1 Y1 X2 Y2]  cut a region along a line (or arm and give two points)\n"+
			"  point X Y       next cut endpoint while cutting\n"+
			"  thresh V        re-merge at color distance V (1-60)\n"+
			"  segments N      re-partition with N superpixels (300-3000)\n"+
			"  compact C       re-partition with compactness C (1-40)\n"+
			"  smooth T        set vector smoothing in pixels (0-5)\n"+
			"  preview         toggle vector preview rendering\n"+
			"  save            save selection cutout (group_NN.png)\n"+
			"  export          export selection to SVG (group_NN.svg)\n"+
			"  exportall       export all regions (all_shapes.svg)\n"+
			"  regions         list regions\n"+
			"  quit            finish and write shapes.svg\n")
}

// Execute runs a single command line and reports whether the session should
// end.
func (s *Session) Execute(line string) (quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "select":
		s.cmdSelect(args)
	case "point":
		s.cmdPoint(args)
	case "clear":
		s.engine.Clear()
		fmt.Fprintln(s.out, "selection cleared")
		s.redraw()
	case "split":
		s.cmdSplit(args)
	case "cut":
		s.cmdCut(args)
	case "thresh":
		s.cmdThresh(args)
	case "segments":
		s.cmdSegments(args)
	case "compact":
		s.cmdCompact(args)
	case "smooth":
		s.cmdSmooth(args)
	case "preview":
		s.preview = !s.preview
		if s.preview {
			fmt.Fprintln(s.out, "vector preview on")
		} else {
			fmt.Fprintln(s.out, "vector preview off")
		}
		s.redraw()
	case "save":
		s.cmdSave()
	case "export":
		s.cmdExport()
	case "exportall":
		s.cmdExportAll()
	case "regions":
		s.cmdRegions()
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.out, "unknown command %q\n", cmd)
	}
	return false
}

func (s *Session) cmdSelect(args []string) {
	p, ok := s.parsePoint(args, "usage: select X Y")
	if !ok {
		return
	}
	s.click(p)
}

func (s *Session) cmdPoint(args []string) {
	p, ok := s.parsePoint(args, "usage: point X Y")
	if !ok {
		return
	}
	if s.engine.State() == editor.Idle {
		fmt.Fprintln(s.out, "no cut in progress; use select to toggle regions")
		return
	}
	s.click(p)
}

// click routes a point through the engine and reports what happened.
func (s *Session) click(p geometry.PointInt) {
	res, err := s.engine.Click(p)
	switch {
	case errors.Is(err, editor.ErrCutOutsideRegion):
		fmt.Fprintln(s.out, "second point not in the same region; cancelling cut")
	case errors.Is(err, editor.ErrCutDidNotSplit):
		fmt.Fprintln(s.out, "cut did not split the region; try a different line")
	case err != nil:
		fmt.Fprintf(s.out, "click failed: %v\n", err)
	case res.CutApplied:
		fmt.Fprintf(s.out, "cut applied; new region %d created from region %d\n", res.NewLabel, res.Label)
		s.redraw()
	case res.CutArmed:
		fmt.Fprintln(s.out, "cut start set; give the second point")
	case res.Selected:
		fmt.Fprintf(s.out, "selected region %d\n", res.Label)
		s.redraw()
	default:
		fmt.Fprintf(s.out, "deselected region %d\n", res.Label)
		s.redraw()
	}
}

func (s *Session) cmdSplit(args []string) {
	p, ok := s.parsePoint(args, "usage: split X Y")
	if !ok {
		return
	}
	newID, err := s.engine.SplitRegion(p)
	switch {
	case errors.Is(err, editor.ErrRegionTooSmall):
		fmt.Fprintln(s.out, "region too small to split")
	case errors.Is(err, editor.ErrSplitDegenerate):
		fmt.Fprintln(s.out, "split produced a single cluster; region unchanged")
	case err != nil:
		fmt.Fprintf(s.out, "split failed: %v\n", err)
	default:
		fmt.Fprintf(s.out, "split region; new region %d\n", newID)
		s.redraw()
	}
}

func (s *Session) cmdCut(args []string) {
	switch len(args) {
	case 0:
		s.engine.BeginCut()
		fmt.Fprintln(s.out, "cut mode: give two points within the same region")
	case 4:
		p1, ok1 := s.parsePoint(args[:2], "")
		p2, ok2 := s.parsePoint(args[2:], "")
		if !ok1 || !ok2 {
			fmt.Fprintln(s.out, "usage: cut X1 Y1 X2 Y2")
			return
		}
		s.engine.BeginCut()
		s.click(p1)
		if s.engine.State() == editor.CutAwaitingSecondPoint {
			s.click(p2)
		} else {
			s.engine.CancelCut()
		}
	default:
		fmt.Fprintln(s.out, "usage: cut [X1 Y1 X2 Y2]")
	}
}

func (s *Session) cmdThresh(args []string) {
	v, ok := s.parseFloat(args, "usage: thresh V")
	if !ok {
		return
	}
	v = app.ClampThreshold(v)
	s.engine.ReThreshold(v)
	fmt.Fprintf(s.out, "threshold %.1f: %d regions\n", v, s.regionCount())
	s.redraw()
}

func (s *Session) cmdSegments(args []string) {
	n, ok := s.parseInt(args, "usage: segments N")
	if !ok {
		return
	}
	n = app.ClampSegments(n)
	s.engine.RePartition(n, s.engine.Params().Compactness)
	fmt.Fprintf(s.out, "superpixels %d: %d regions\n", n, s.regionCount())
	s.redraw()
}

func (s *Session) cmdCompact(args []string) {
	c, ok := s.parseFloat(args, "usage: compact C")
	if !ok {
		return
	}
	c = app.ClampCompactness(c)
	s.engine.RePartition(s.engine.Params().Segments, c)
	fmt.Fprintf(s.out, "compactness %.1f: %d regions\n", c, s.regionCount())
	s.redraw()
}

func (s *Session) cmdSmooth(args []string) {
	v, ok := s.parseFloat(args, "usage: smooth T")
	if !ok {
		return
	}
	s.tolerance = app.ClampTolerance(v)
	fmt.Fprintf(s.out, "vector smoothing %.1f px\n", s.tolerance)
	s.redraw()
}

func (s *Session) cmdRegions() {
	grid := s.engine.Labels()
	ids := grid.Labels()
	selected := make(map[int32]bool)
	for _, id := range s.engine.Selected() {
		selected[id] = true
	}

	fmt.Fprintf(s.out, "%d regions:\n", len(ids))
	for _, id := range ids {
		mark := " "
		if selected[id] {
			mark = "*"
		}
		fmt.Fprintf(s.out, "%s region %4d  %8d px\n", mark, id, grid.Area(id))
	}
}

func (s *Session) regionCount() int {
	return int(s.engine.Labels().MaxLabel()) + 1
}

// redraw refreshes the rendered previews when enabled. Render failures are
// reported and ignored.
func (s *Session) redraw() {
	if !s.preview {
		return
	}
	if err := s.renderOverlay(); err != nil {
		fmt.Fprintf(s.out, "overlay render failed: %v\n", err)
	}
	if err := s.renderPreview(); err != nil {
		fmt.Fprintf(s.out, "preview render failed: %v\n", err)
	}
}

func (s *Session) parsePoint(args []string, usage string) (geometry.PointInt, bool) {
	if len(args) != 2 {
		if usage != "" {
			fmt.Fprintln(s.out, usage)
		}
		return geometry.PointInt{}, false
	}
	x, errX := strconv.Atoi(args[0])
	y, errY := strconv.Atoi(args[1])
	if errX != nil || errY != nil {
		if usage != "" {
			fmt.Fprintln(s.out, usage)
		}
		return geometry.PointInt{}, false
	}
	return geometry.PointInt{X: x, Y: y}, true
}

func (s *Session) parseInt(args []string, usage string) (int, bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, usage)
		return 0, false
	}
	v, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintln(s.out, usage)
		return 0, false
	}
	return v, true
}

func (s *Session) parseFloat(args []string, usage string) (float64, bool) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, usage)
		return 0, false
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintln(s.out, usage)
		return 0, false
	}
	return v, true
}
