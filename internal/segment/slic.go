package segment

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DefaultSLICIterations is the assignment/update round count used by the
// standard pipeline.
const DefaultSLICIterations = 10

type slicCenter struct {
	color []float64
	x, y  float64
}

// SLIC partitions the color field into roughly segmentCount compact
// superpixels using localized k-means over (color, x, y). Higher compactness
// weighs the spatial term more, giving smoother, squarer segments. The result
// is densely labeled 0..N-1 and 4-connected. Deterministic for a given input.
func SLIC(field *ColorField, segmentCount int, compactness float64, iterations int) *LabelGrid {
	w, h := field.W, field.H
	g := NewLabelGrid(w, h)
	if w == 0 || h == 0 {
		return g
	}
	if segmentCount < 1 {
		segmentCount = 1
	}
	if compactness <= 0 {
		compactness = 10
	}
	if iterations < 1 {
		iterations = DefaultSLICIterations
	}

	step := int(math.Sqrt(float64(w*h)/float64(segmentCount)) + 0.5)
	if step < 1 {
		step = 1
	}

	// Seed centers on a regular grid.
	var centers []slicCenter
	for y := step / 2; y < h; y += step {
		for x := step / 2; x < w; x += step {
			c := field.At(x, y)
			centers = append(centers, slicCenter{
				color: []float64{c[0], c[1], c[2]},
				x:     float64(x),
				y:     float64(y),
			})
		}
	}
	if len(centers) == 0 {
		c := field.At(w/2, h/2)
		centers = append(centers, slicCenter{
			color: []float64{c[0], c[1], c[2]},
			x:     float64(w) / 2,
			y:     float64(h) / 2,
		})
	}

	labels := make([]int32, w*h)
	dist := make([]float64, w*h)
	spatialWeight := compactness / float64(step)

	for iter := 0; iter < iterations; iter++ {
		for i := range dist {
			dist[i] = math.MaxFloat64
		}

		// Assign pixels within a 2S window of each center.
		for k := range centers {
			c := &centers[k]
			x0 := clamp(int(c.x)-2*step, 0, w-1)
			x1 := clamp(int(c.x)+2*step, 0, w-1)
			y0 := clamp(int(c.y)-2*step, 0, h-1)
			y1 := clamp(int(c.y)+2*step, 0, h-1)

			for y := y0; y <= y1; y++ {
				for x := x0; x <= x1; x++ {
					idx := y*w + x
					p := field.AtIndex(idx)
					dc := floats.Distance(p, c.color, 2)
					dx := float64(x) - c.x
					dy := float64(y) - c.y
					ds := math.Sqrt(dx*dx + dy*dy)
					d := dc*dc + (ds*spatialWeight)*(ds*spatialWeight)
					if d < dist[idx] {
						dist[idx] = d
						labels[idx] = int32(k)
					}
				}
			}
		}

		// Pixels outside every search window fall back to the spatially
		// nearest center.
		for idx := range dist {
			if dist[idx] != math.MaxFloat64 {
				continue
			}
			x, y := idx%w, idx/w
			best, bestD := 0, math.MaxFloat64
			for k := range centers {
				dx := float64(x) - centers[k].x
				dy := float64(y) - centers[k].y
				if d := dx*dx + dy*dy; d < bestD {
					bestD = d
					best = k
				}
			}
			labels[idx] = int32(best)
		}

		// Move centers to the mean of their assigned pixels.
		counts := make([]int, len(centers))
		sums := make([]float64, 5*len(centers))
		for idx, k := range labels {
			p := field.AtIndex(idx)
			counts[k]++
			sums[5*k] += p[0]
			sums[5*k+1] += p[1]
			sums[5*k+2] += p[2]
			sums[5*k+3] += float64(idx % w)
			sums[5*k+4] += float64(idx / w)
		}
		for k := range centers {
			if counts[k] == 0 {
				continue
			}
			n := float64(counts[k])
			centers[k].color[0] = sums[5*k] / n
			centers[k].color[1] = sums[5*k+1] / n
			centers[k].color[2] = sums[5*k+2] / n
			centers[k].x = sums[5*k+3] / n
			centers[k].y = sums[5*k+4] / n
		}
	}

	copy(g.Pix, labels)
	return enforceConnectivity(g, step*step/4)
}

// enforceConnectivity splits the assignment into 4-connected components and
// absorbs components smaller than minSize into an already-labeled neighbor,
// yielding a dense, connected labeling.
func enforceConnectivity(g *LabelGrid, minSize int) *LabelGrid {
	w, h := g.W, g.H
	out := NewLabelGrid(w, h)
	for i := range out.Pix {
		out.Pix[i] = -1
	}

	next := int32(0)
	queue := make([]int, 0, 1024)
	pixels := make([]int, 0, 1024)

	for start := range g.Pix {
		if out.Pix[start] >= 0 {
			continue
		}
		src := g.Pix[start]

		// Label of an already-processed neighbor, for absorbing runts.
		adjacent := int32(-1)
		if x := start % w; x > 0 && out.Pix[start-1] >= 0 {
			adjacent = out.Pix[start-1]
		} else if start >= w && out.Pix[start-w] >= 0 {
			adjacent = out.Pix[start-w]
		}

		queue = append(queue[:0], start)
		pixels = append(pixels[:0], start)
		out.Pix[start] = next

		for len(queue) > 0 {
			idx := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			x, y := idx%w, idx/w

			visit := func(nb int) {
				if g.Pix[nb] == src && out.Pix[nb] < 0 {
					out.Pix[nb] = next
					queue = append(queue, nb)
					pixels = append(pixels, nb)
				}
			}
			if x > 0 {
				visit(idx - 1)
			}
			if x < w-1 {
				visit(idx + 1)
			}
			if y > 0 {
				visit(idx - w)
			}
			if y < h-1 {
				visit(idx + w)
			}
		}

		if len(pixels) < minSize && adjacent >= 0 {
			for _, idx := range pixels {
				out.Pix[idx] = adjacent
			}
		} else {
			next++
		}
	}

	result, _ := RelabelSequential(out)
	return result
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
