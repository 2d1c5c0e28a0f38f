package session

import (
	"image"
	"image/color"
	"image/draw"
	"path/filepath"

	"github.com/disintegration/imaging"

	"photo-tracer/internal/vector"
	"photo-tracer/pkg/colorutil"
)

const selectionTint = 0.4

// renderOverlay writes overlay.png: the source image with the selection
// tinted green and region boundaries drawn white.
func (s *Session) renderOverlay() error {
	w, h := s.engine.Size()
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), s.img, s.img.Bounds().Min, draw.Src)

	selMask := s.engine.SelectionMask()
	boundary := s.engine.Boundary()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			switch {
			case boundary[idx]:
				canvas.SetRGBA(x, y, colorutil.White)
			case selMask[idx]:
				i := canvas.PixOffset(x, y)
				base := color.RGBA{R: canvas.Pix[i], G: canvas.Pix[i+1], B: canvas.Pix[i+2], A: 255}
				canvas.SetRGBA(x, y, colorutil.BlendRGBA(base, colorutil.Green, selectionTint))
			}
		}
	}

	out := s.scaleToDisplay(canvas)
	return writePNG(filepath.Join(s.cfg.OutDir, "overlay.png"), out)
}

// renderPreview writes preview.png: the selection as flat vector shapes on a
// white canvas, filled with the selection's mean color and outlined in black.
func (s *Session) renderPreview() error {
	w, h := s.engine.Size()
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(colorutil.White), image.Point{}, draw.Src)

	if s.engine.HasSelection() {
		selMask := s.engine.SelectionMask()
		fill := colorutil.MeanRGB(s.img, selMask)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if selMask[y*w+x] {
					canvas.SetRGBA(x, y, fill)
				}
			}
		}

		for _, poly := range vector.Extract(selMask, w, h, s.tolerance) {
			outlinePolygon(canvas, poly, colorutil.Black)
		}
	}

	out := s.scaleToDisplay(canvas)
	return writePNG(filepath.Join(s.cfg.OutDir, "preview.png"), out)
}

// scaleToDisplay shrinks the image to the configured display bound; smaller
// images pass through.
func (s *Session) scaleToDisplay(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= s.cfg.DisplayMax && b.Dy() <= s.cfg.DisplayMax {
		return img
	}
	return imaging.Fit(img, s.cfg.DisplayMax, s.cfg.DisplayMax, imaging.Lanczos)
}

// outlinePolygon strokes the closed ring one pixel wide.
func outlinePolygon(canvas *image.RGBA, poly vector.Polygon, c color.RGBA) {
	n := len(poly)
	for i := 0; i < n; i++ {
		a, b := poly[i], poly[(i+1)%n]
		drawLine(canvas, int(a.X), int(a.Y), int(b.X), int(b.Y), c)
	}
}

// drawLine plots a Bresenham line clipped to the canvas.
func drawLine(canvas *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	bounds := canvas.Bounds()
	plot := func(x, y int) {
		if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
			canvas.SetRGBA(x, y, c)
		}
	}

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
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
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
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
