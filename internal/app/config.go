// Package app provides run configuration for the tracing tools.
package app

import (
	"errors"
	"fmt"
)

// Parameter ranges shared by startup flags and interactive adjustments.
const (
	MinThreshold = 1.0
	MaxThreshold = 60.0

	MinSegments = 300
	MaxSegments = 3000

	MinCompactness = 1.0
	MaxCompactness = 40.0

	MinTolerance = 0.0
	MaxTolerance = 5.0
)

// Config carries the segmentation and export settings for one run. It is
// filled from flags once at startup and never mutated afterwards; the
// interactive session keeps its own working copies of the adjustable knobs.
type Config struct {
	ImagePath string
	OutDir    string

	Segments        int     // superpixel target count
	Compactness     float64 // superpixel compactness
	Threshold       float64 // Lab merge threshold (ΔE in 8-bit Lab scale)
	MinAreaFraction float64 // regions below this image fraction merge away

	SimplifyTolerance float64 // polygon simplification in pixels
	DisplayMax        int     // longest preview side in pixels
	AutoExport        bool    // dump per-region masks/colors/layers after segmentation
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		OutDir:            "shapes_out",
		Segments:          1200,
		Compactness:       12,
		Threshold:         20,
		MinAreaFraction:   0.0015,
		SimplifyTolerance: 1.5,
		DisplayMax:        1100,
	}
}

// Validate rejects configurations that cannot start a session.
func (c Config) Validate() error {
	if c.ImagePath == "" {
		return errors.New("no input image specified")
	}
	if c.OutDir == "" {
		return errors.New("no output directory specified")
	}
	if c.MinAreaFraction < 0 || c.MinAreaFraction >= 1 {
		return fmt.Errorf("min area fraction %g out of range [0,1)", c.MinAreaFraction)
	}
	if c.DisplayMax < 100 {
		return fmt.Errorf("display max %d too small", c.DisplayMax)
	}
	return nil
}

// Clamped returns a copy with every adjustable knob forced into its range.
func (c Config) Clamped() Config {
	c.Threshold = ClampThreshold(c.Threshold)
	c.Segments = ClampSegments(c.Segments)
	c.Compactness = ClampCompactness(c.Compactness)
	c.SimplifyTolerance = ClampTolerance(c.SimplifyTolerance)
	return c
}

// ClampThreshold forces a merge threshold into [MinThreshold, MaxThreshold].
func ClampThreshold(v float64) float64 {
	return clampFloat(v, MinThreshold, MaxThreshold)
}

// ClampSegments forces a superpixel count into [MinSegments, MaxSegments].
func ClampSegments(n int) int {
	if n < MinSegments {
		return MinSegments
	}
	if n > MaxSegments {
		return MaxSegments
	}
	return n
}

// ClampCompactness forces compactness into [MinCompactness, MaxCompactness].
func ClampCompactness(v float64) float64 {
	return clampFloat(v, MinCompactness, MaxCompactness)
}

// ClampTolerance forces a simplification tolerance into [MinTolerance, MaxTolerance].
func ClampTolerance(v float64) float64 {
	return clampFloat(v, MinTolerance, MaxTolerance)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
