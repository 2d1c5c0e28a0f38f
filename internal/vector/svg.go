package vector

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// Shape is a named group of polygons sharing one flat fill color.
type Shape struct {
	ID       string
	Fill     color.RGBA
	Polygons []Polygon
}

// WriteSVG emits the shapes as an SVG document with a pixel-aligned viewbox.
// Each shape becomes a <g> holding one <path> per polygon, filled flat with
// no stroke.
func WriteSVG(w io.Writer, width, height int, shapes []Shape) {
	canvas := svg.New(w)
	canvas.Startview(width, height, 0, 0, width, height)

	for _, s := range shapes {
		canvas.Gid(s.ID)
		style := fmt.Sprintf("fill:rgb(%d,%d,%d);stroke:none", s.Fill.R, s.Fill.G, s.Fill.B)
		for _, poly := range s.Polygons {
			canvas.Path(pathData(poly), style)
		}
		canvas.Gend()
	}

	canvas.End()
}

// SaveSVG writes the shapes to a file.
func SaveSVG(path string, width, height int, shapes []Shape) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	WriteSVG(f, width, height, shapes)
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// pathData renders a closed polygon as an SVG path string.
func pathData(poly Polygon) string {
	var b strings.Builder
	for i, p := range poly {
		if i == 0 {
			fmt.Fprintf(&b, "M %g,%g", p.X, p.Y)
		} else {
			fmt.Fprintf(&b, " L %g,%g", p.X, p.Y)
		}
	}
	b.WriteString(" Z")
	return b.String()
}
