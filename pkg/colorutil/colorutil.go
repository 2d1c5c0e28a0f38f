// Package colorutil provides shared color utilities for the photo tracer application.
package colorutil

import (
	"image"
	"image/color"
	"math"
)

// Common overlay colors used throughout the application.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green = color.RGBA{R: 0, G: 255, B: 0, A: 255}
)

// RGBToLab converts RGB (0-255) to CIE Lab in the 8-bit OpenCV convention:
// L in 0-255 (L* scaled by 255/100), a and b offset by +128. Region color
// distances and the merge threshold defaults are all expressed in this scale.
func RGBToLab(r, g, b float64) (l, a, bb float64) {
	// sRGB -> linear RGB
	lr := srgbToLinear(r / 255.0)
	lg := srgbToLinear(g / 255.0)
	lb := srgbToLinear(b / 255.0)

	// Linear RGB -> XYZ (D65)
	x := 0.412453*lr + 0.357580*lg + 0.180423*lb
	y := 0.212671*lr + 0.715160*lg + 0.072169*lb
	z := 0.019334*lr + 0.119193*lg + 0.950227*lb

	// Normalize by D65 white point
	fx := labF(x / 0.950456)
	fy := labF(y)
	fz := labF(z / 1.088754)

	lStar := 116*fy - 16
	aStar := 500 * (fx - fy)
	bStar := 200 * (fy - fz)

	return lStar * 255.0 / 100.0, aStar + 128, bStar + 128
}

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func labF(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116.0
}

// LabDistance returns the Euclidean distance between two Lab triples.
func LabDistance(a, b [3]float64) float64 {
	d0 := a[0] - b[0]
	d1 := a[1] - b[1]
	d2 := a[2] - b[2]
	return math.Sqrt(d0*d0 + d1*d1 + d2*d2)
}

// MeanRGB averages the image colors over the pixels where mask is true.
// mask is indexed row-major as y*width+x over the image bounds. Returns
// black when the mask is empty.
func MeanRGB(img image.Image, mask []bool) color.RGBA {
	bounds := img.Bounds()
	w := bounds.Dx()

	var sumR, sumG, sumB float64
	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !mask[(y-bounds.Min.Y)*w+(x-bounds.Min.X)] {
				continue
			}
			r, g, b, _ := img.At(x, y).RGBA()
			sumR += float64(r >> 8)
			sumG += float64(g >> 8)
			sumB += float64(b >> 8)
			count++
		}
	}

	if count == 0 {
		return Black
	}
	n := float64(count)
	return color.RGBA{
		R: uint8(sumR/n + 0.5),
		G: uint8(sumG/n + 0.5),
		B: uint8(sumB/n + 0.5),
		A: 255,
	}
}

// BlendRGBA mixes two colors: frac of overlay, (1-frac) of base.
func BlendRGBA(base, overlay color.RGBA, frac float64) color.RGBA {
	inv := 1 - frac
	return color.RGBA{
		R: uint8(inv*float64(base.R) + frac*float64(overlay.R)),
		G: uint8(inv*float64(base.G) + frac*float64(overlay.G)),
		B: uint8(inv*float64(base.B) + frac*float64(overlay.B)),
		A: 255,
	}
}
