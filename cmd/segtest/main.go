// Command segtest runs the segmentation pipeline on a photo and prints
// region statistics without starting an interactive session.
package main

import (
	"flag"
	"fmt"
	"os"

	"photo-tracer/internal/app"
	"photo-tracer/internal/photo"
	"photo-tracer/internal/segment"
)

func main() {
	def := app.Default()
	imagePath := flag.String("image", "", "Path to photo (PNG, JPEG, or TIFF)")
	segments := flag.Int("n-segments", def.Segments, "Superpixel target count")
	compactness := flag.Float64("compactness", def.Compactness, "Superpixel compactness")
	thresh := flag.Float64("thresh", def.Threshold, "Color distance merge threshold")
	minAreaFrac := flag.Float64("min-area-frac", def.MinAreaFraction, "Merge regions below this image fraction")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: segtest -image <path> [-n-segments 1200] [-compactness 12] [-thresh 20]")
		os.Exit(1)
	}

	img, err := photo.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	bounds := img.Bounds()
	fmt.Printf("Loaded image: %dx%d pixels\n", bounds.Dx(), bounds.Dy())

	fmt.Printf("\nSegmentation parameters:\n")
	fmt.Printf("  Superpixels: %d\n", *segments)
	fmt.Printf("  Compactness: %.1f\n", *compactness)
	fmt.Printf("  Merge threshold: %.1f\n", *thresh)
	fmt.Printf("  Min area fraction: %.4f\n", *minAreaFrac)

	smoothed := photo.Bilateral(img)
	field := photo.LabField(smoothed)

	fmt.Printf("\nPartitioning...\n")
	base := segment.SLIC(field, *segments, *compactness, segment.DefaultSLICIterations)
	fmt.Printf("Superpixels: %d\n", int(base.MaxLabel())+1)

	graph := segment.BuildGraph(base, field)
	fmt.Printf("Adjacency graph: %d edges\n", len(graph.Edges))

	merged := segment.CutThreshold(base, graph, *thresh)
	fmt.Printf("After threshold cut: %d regions\n", int(merged.MaxLabel())+1)

	minPixels := int(*minAreaFrac * float64(field.W*field.H))
	final := segment.Consolidate(merged, field, minPixels)
	ids := final.Labels()
	fmt.Printf("After consolidation (min %d px): %d regions\n", minPixels, len(ids))

	means := segment.RegionMeans(final, field, len(ids))

	fmt.Printf("\n%-8s %10s %8s %8s %8s\n", "Region", "Area", "L", "a", "b")
	for _, id := range ids {
		m := means[id]
		fmt.Printf("%-8d %10d %8.1f %8.1f %8.1f\n", id, final.Area(id), m[0], m[1], m[2])
	}
	fmt.Printf("\nTotal: %d regions\n", len(ids))
}
