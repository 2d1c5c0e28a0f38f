package segment

// Boundaries returns a row-major boolean mask that is true wherever a pixel's
// label differs from at least one of its 4-connected neighbors. Pixels outside
// the grid count as an implicit outer boundary, so the image border is always
// marked. The mask is recomputed wholesale after every structural edit; it is
// never patched incrementally.
func Boundaries(g *LabelGrid) []bool {
	mask := make([]bool, len(g.Pix))

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			i := y*g.W + x
			v := g.Pix[i]

			if x == 0 || y == 0 || x == g.W-1 || y == g.H-1 {
				mask[i] = true
				continue
			}
			if g.Pix[i-1] != v || g.Pix[i+1] != v ||
				g.Pix[i-g.W] != v || g.Pix[i+g.W] != v {
				mask[i] = true
			}
		}
	}
	return mask
}
