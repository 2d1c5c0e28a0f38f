// Package main provides the entry point for the interactive photo tracer.
package main

import (
	"flag"
	"log"
	"os"

	"photo-tracer/internal/app"
	"photo-tracer/internal/cluster"
	"photo-tracer/internal/editor"
	"photo-tracer/internal/photo"
	"photo-tracer/internal/segment"
	"photo-tracer/internal/session"
	"photo-tracer/internal/version"
)

const appTitle = "Photo Tracer"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	def := app.Default()
	imagePath := flag.String("img", "", "Path to input photo (PNG, JPEG, or TIFF)")
	outDir := flag.String("out", def.OutDir, "Output directory")
	segments := flag.Int("n-segments", def.Segments, "Superpixel target count")
	compactness := flag.Float64("compactness", def.Compactness, "Superpixel compactness")
	thresh := flag.Float64("thresh", def.Threshold, "Color distance merge threshold")
	minAreaFrac := flag.Float64("min-area-frac", def.MinAreaFraction, "Merge regions below this image fraction")
	displayMax := flag.Int("display-max", def.DisplayMax, "Longest preview side in pixels")
	simplify := flag.Float64("simplify", def.SimplifyTolerance, "Polygon simplification tolerance in pixels")
	autoExport := flag.Bool("auto-export", false, "Dump per-region masks, colors, and layers after segmentation")
	flag.Parse()

	cfg := app.Config{
		ImagePath:         *imagePath,
		OutDir:            *outDir,
		Segments:          *segments,
		Compactness:       *compactness,
		Threshold:         *thresh,
		MinAreaFraction:   *minAreaFrac,
		SimplifyTolerance: *simplify,
		DisplayMax:        *displayMax,
		AutoExport:        *autoExport,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg = cfg.Clamped()

	log.Printf("Starting %s v%s", appTitle, version.Version)

	img, err := photo.Load(cfg.ImagePath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", cfg.ImagePath, err)
	}
	bounds := img.Bounds()
	log.Printf("Loaded %s: %dx%d pixels", cfg.ImagePath, bounds.Dx(), bounds.Dy())

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Segmentation runs on the smoothed image; exports sample the original.
	smoothed := photo.Bilateral(img)
	field := photo.LabField(smoothed)

	params := editor.Params{
		Threshold:       cfg.Threshold,
		Segments:        cfg.Segments,
		Compactness:     cfg.Compactness,
		MinAreaFraction: cfg.MinAreaFraction,
		SLICIterations:  segment.DefaultSLICIterations,
	}
	log.Printf("Segmenting: %d superpixels, compactness %.1f, threshold %.1f",
		params.Segments, params.Compactness, params.Threshold)
	engine := editor.New(field, params, cluster.NewKMeans())
	log.Printf("Initial partition: %d regions", int(engine.Labels().MaxLabel())+1)

	sess := session.New(cfg, img, engine, os.Stdout)
	if cfg.AutoExport {
		sess.AutoExport()
	}

	if err := sess.Run(os.Stdin); err != nil {
		log.Fatalf("Session failed: %v", err)
	}
	log.Printf("Wrote final shapes to %s", cfg.OutDir)
}
