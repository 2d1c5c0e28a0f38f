// Command svgexport segments a photo and exports every region to SVG
// without an interactive session.
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
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	def := app.Default()
	imagePath := flag.String("img", "", "Path to input photo (PNG, JPEG, or TIFF)")
	outDir := flag.String("out", def.OutDir, "Output directory")
	segments := flag.Int("n-segments", def.Segments, "Superpixel target count")
	compactness := flag.Float64("compactness", def.Compactness, "Superpixel compactness")
	thresh := flag.Float64("thresh", def.Threshold, "Color distance merge threshold")
	minAreaFrac := flag.Float64("min-area-frac", def.MinAreaFraction, "Merge regions below this image fraction")
	simplify := flag.Float64("simplify", def.SimplifyTolerance, "Polygon simplification tolerance in pixels")
	autoExport := flag.Bool("auto-export", false, "Also dump per-region masks, colors, and layers")
	flag.Parse()

	cfg := app.Config{
		ImagePath:         *imagePath,
		OutDir:            *outDir,
		Segments:          *segments,
		Compactness:       *compactness,
		Threshold:         *thresh,
		MinAreaFraction:   *minAreaFrac,
		SimplifyTolerance: *simplify,
		DisplayMax:        def.DisplayMax,
		AutoExport:        *autoExport,
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	cfg = cfg.Clamped()

	img, err := photo.Load(cfg.ImagePath)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", cfg.ImagePath, err)
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	smoothed := photo.Bilateral(img)
	field := photo.LabField(smoothed)

	params := editor.Params{
		Threshold:       cfg.Threshold,
		Segments:        cfg.Segments,
		Compactness:     cfg.Compactness,
		MinAreaFraction: cfg.MinAreaFraction,
		SLICIterations:  segment.DefaultSLICIterations,
	}
	engine := editor.New(field, params, cluster.NewKMeans())
	log.Printf("Segmented %s into %d regions", cfg.ImagePath, int(engine.Labels().MaxLabel())+1)

	sess := session.New(cfg, img, engine, os.Stdout)
	if cfg.AutoExport {
		sess.AutoExport()
	}
	if err := sess.ExportFinal(); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
	log.Printf("Wrote shapes.svg to %s", cfg.OutDir)
}
