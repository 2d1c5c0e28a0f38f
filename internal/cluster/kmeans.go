// Package cluster wraps OpenCV k-means behind the editor's Clusterer
// interface, keeping the cgo dependency out of the core packages.
package cluster

import (
	"fmt"

	"gocv.io/x/gocv"
)

// KMeans clusters color points with OpenCV's k-means.
type KMeans struct {
	// Attempts is the number of random restarts; the best labeling wins.
	Attempts int
}

// NewKMeans returns a clusterer with the standard restart count.
func NewKMeans() *KMeans {
	return &KMeans{Attempts: 10}
}

// TwoCluster assigns each point to one of two clusters in color space and
// returns the per-point assignment (0 or 1).
func (k *KMeans) TwoCluster(points [][]float64) ([]int, error) {
	return k.Cluster(points, 2)
}

// Cluster assigns each point to one of n clusters.
func (k *KMeans) Cluster(points [][]float64, n int) ([]int, error) {
	if len(points) < n {
		return nil, fmt.Errorf("kmeans: %d points for %d clusters", len(points), n)
	}
	dims := len(points[0])

	pixels := gocv.NewMatWithSize(len(points), dims, gocv.MatTypeCV32F)
	defer pixels.Close()
	for i, p := range points {
		for j := 0; j < dims; j++ {
			pixels.SetFloatAt(i, j, float32(p[j]))
		}
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, 100, 0.2)
	gocv.KMeans(pixels, n, &labels, criteria, k.Attempts, gocv.KMeansRandomCenters, &centers)

	if labels.Rows() != len(points) {
		return nil, fmt.Errorf("kmeans: %d labels for %d points", labels.Rows(), len(points))
	}

	out := make([]int, len(points))
	for i := range out {
		out[i] = int(labels.GetIntAt(i, 0))
	}
	return out, nil
}
