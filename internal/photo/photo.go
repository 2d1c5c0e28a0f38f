// Package photo provides image loading, OpenCV-backed preprocessing, and the
// conversion from decoded images into Lab color fields.
package photo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"gocv.io/x/gocv"
	_ "golang.org/x/image/tiff"

	"photo-tracer/internal/segment"
)

// Load decodes an image from disk. PNG, JPEG, and TIFF are supported.
func Load(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Bilateral applies edge-preserving smoothing to knock down sensor noise and
// JPEG artifacts before segmentation.
func Bilateral(img image.Image) image.Image {
	src := imageToMat(img)
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()
	gocv.BilateralFilter(src, &dst, 7, 25, 25)

	return matToImage(dst)
}

// LabField converts the image to an 8-bit Lab color field: L scaled to 0-255,
// a and b offset by 128.
func LabField(img image.Image) *segment.ColorField {
	src := imageToMat(img)
	defer src.Close()

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(src, &lab, gocv.ColorBGRToLab)

	h, w := lab.Rows(), lab.Cols()
	field := segment.NewColorField(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vec := lab.GetVecbAt(y, x)
			field.Set(x, y, float64(vec[0]), float64(vec[1]), float64(vec[2]))
		}
	}
	return field
}

// imageToMat converts an image.Image to a BGR gocv.Mat.
func imageToMat(img image.Image) gocv.Mat {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}
	return mat
}

// matToImage converts a BGR gocv.Mat back to an RGBA image.
func matToImage(mat gocv.Mat) image.Image {
	h, w := mat.Rows(), mat.Cols()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vec := mat.GetVecbAt(y, x)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = vec[2]
			img.Pix[i+1] = vec[1]
			img.Pix[i+2] = vec[0]
			img.Pix[i+3] = 255
		}
	}
	return img
}
