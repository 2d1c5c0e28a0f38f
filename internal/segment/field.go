package segment

// ColorField is a per-pixel color sample grid in the space the merge
// distance is measured in (Lab in the standard pipeline). Three float64
// channels per pixel, row-major.
type ColorField struct {
	W, H int
	Pix  []float64
}

// NewColorField allocates a zero-filled color field.
func NewColorField(w, h int) *ColorField {
	return &ColorField{W: w, H: h, Pix: make([]float64, 3*w*h)}
}

// At returns the three channel values at (x, y) as a slice view.
func (f *ColorField) At(x, y int) []float64 {
	i := 3 * (y*f.W + x)
	return f.Pix[i : i+3 : i+3]
}

// AtIndex returns the channel values for a row-major pixel index.
func (f *ColorField) AtIndex(idx int) []float64 {
	i := 3 * idx
	return f.Pix[i : i+3 : i+3]
}

// Set assigns the three channel values at (x, y).
func (f *ColorField) Set(x, y int, c0, c1, c2 float64) {
	i := 3 * (y*f.W + x)
	f.Pix[i] = c0
	f.Pix[i+1] = c1
	f.Pix[i+2] = c2
}
