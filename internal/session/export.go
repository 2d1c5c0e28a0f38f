package session

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"photo-tracer/internal/segment"
	"photo-tracer/internal/vector"
	"photo-tracer/pkg/colorutil"
)

// cmdSave writes the current selection as an RGBA cutout: full image colors
// with the selection mask as the alpha channel.
func (s *Session) cmdSave() {
	if !s.engine.HasSelection() {
		fmt.Fprintln(s.out, "nothing selected to save")
		return
	}

	mask := s.engine.SelectionMask()
	out := s.cutout(mask)

	path := filepath.Join(s.cfg.OutDir, fmt.Sprintf("group_%02d.png", s.groupIdx))
	if err := writePNG(path, out); err != nil {
		fmt.Fprintf(s.out, "save failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "saved %s (regions: %d)\n", path, len(s.engine.Selected()))
	s.groupIdx++
}

// cmdExport writes the selected regions as a flat-color SVG. All paths share
// one fill: the mean color of the largest selected region.
func (s *Session) cmdExport() {
	sel := s.engine.Selected()
	if len(sel) == 0 {
		fmt.Fprintln(s.out, "nothing selected to export")
		return
	}

	grid := s.engine.Labels()
	fill := s.monoFill(grid, sel)
	shapes := s.labelShapes(grid, sel, fill)

	path := filepath.Join(s.cfg.OutDir, fmt.Sprintf("group_%02d.svg", s.groupIdx))
	w, h := s.engine.Size()
	if err := vector.SaveSVG(path, w, h, shapes); err != nil {
		fmt.Fprintf(s.out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "exported %s (regions: %d)\n", path, len(sel))
	s.groupIdx++
}

// cmdExportAll writes every region to all_shapes.svg.
func (s *Session) cmdExportAll() {
	path := filepath.Join(s.cfg.OutDir, "all_shapes.svg")
	if err := s.exportAllTo(path); err != nil {
		fmt.Fprintf(s.out, "export failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "exported %s (all regions)\n", path)
}

// ExportFinal writes the final label grid to shapes.svg. Called when the
// session ends.
func (s *Session) ExportFinal() error {
	return s.exportAllTo(filepath.Join(s.cfg.OutDir, "shapes.svg"))
}

func (s *Session) exportAllTo(path string) error {
	grid := s.engine.Labels()
	ids := grid.Labels()
	fill := s.monoFill(grid, ids)
	shapes := s.labelShapes(grid, ids, fill)

	w, h := s.engine.Size()
	return vector.SaveSVG(path, w, h, shapes)
}

// AutoExport dumps one mask, mean color, and RGBA cutout per region. Write
// failures are reported and skipped.
func (s *Session) AutoExport() {
	grid := s.engine.Labels()
	w, h := grid.W, grid.H

	for _, id := range grid.Labels() {
		mask := grid.Mask(id)

		gray := image.NewGray(image.Rect(0, 0, w, h))
		for i, v := range mask {
			if v {
				gray.Pix[i] = 255
			}
		}
		maskPath := filepath.Join(s.cfg.OutDir, fmt.Sprintf("mask_%03d.png", id))
		if err := writePNG(maskPath, gray); err != nil {
			fmt.Fprintf(s.out, "auto-export failed: %v\n", err)
			continue
		}

		mean := colorutil.MeanRGB(s.img, mask)
		colorPath := filepath.Join(s.cfg.OutDir, fmt.Sprintf("color_%03d.txt", id))
		line := fmt.Sprintf("%d,%d,%d\n", mean.R, mean.G, mean.B)
		if err := os.WriteFile(colorPath, []byte(line), 0o644); err != nil {
			fmt.Fprintf(s.out, "auto-export failed: %v\n", err)
			continue
		}

		layerPath := filepath.Join(s.cfg.OutDir, fmt.Sprintf("layer_%03d.png", id))
		if err := writePNG(layerPath, s.cutout(mask)); err != nil {
			fmt.Fprintf(s.out, "auto-export failed: %v\n", err)
		}
	}
	fmt.Fprintf(s.out, "auto-exported %d regions to %s\n", len(grid.Labels()), s.cfg.OutDir)
}

// monoFill picks the shared export color: the mean image color of the
// largest region among ids.
func (s *Session) monoFill(grid *segment.LabelGrid, ids []int32) color.RGBA {
	largest := int32(-1)
	best := -1
	for _, id := range ids {
		if a := grid.Area(id); a > best {
			best = a
			largest = id
		}
	}
	if largest < 0 {
		return colorutil.Black
	}
	return colorutil.MeanRGB(s.img, grid.Mask(largest))
}

// labelShapes extracts one SVG shape per region id, all sharing one fill.
// Regions whose outlines collapse entirely are skipped.
func (s *Session) labelShapes(grid *segment.LabelGrid, ids []int32, fill color.RGBA) []vector.Shape {
	var shapes []vector.Shape
	for _, id := range ids {
		polys := vector.Extract(grid.Mask(id), grid.W, grid.H, s.tolerance)
		if len(polys) == 0 {
			continue
		}
		shapes = append(shapes, vector.Shape{
			ID:       fmt.Sprintf("shape_%03d", id),
			Fill:     fill,
			Polygons: polys,
		})
	}
	return shapes
}

// cutout copies the image with the mask as alpha channel.
func (s *Session) cutout(mask []bool) *image.NRGBA {
	bounds := s.img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewNRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := s.img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := out.PixOffset(x, y)
			out.Pix[i+0] = uint8(r >> 8)
			out.Pix[i+1] = uint8(g >> 8)
			out.Pix[i+2] = uint8(b >> 8)
			if mask[y*w+x] {
				out.Pix[i+3] = 255
			}
		}
	}
	return out
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
