// Package vision implements the geometric primitives the chart
// classifier is built on: grayscale conversion, Sobel edge maps,
// binarisation, external contour tracing, polygon approximation and
// Hough transforms for line segments and circles.
//
// Pixel-level filtering (Sobel, threshold) is delegated to bild; the
// structural algorithms are implemented here.
package vision

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
)

// edgeLevel is the magnitude cutoff turning a Sobel response into a
// binary edge pixel.
const edgeLevel = 96

// LineSegment is a detected straight segment in pixel coordinates.
type LineSegment struct {
	X1, Y1, X2, Y2 int
}

// Length returns the Euclidean length of the segment.
func (s LineSegment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Hypot(dx, dy)
}

// Circle is a detected circle in pixel coordinates.
type Circle struct {
	X, Y, R int
}

// Grayscale converts any image to 8-bit grayscale.
func Grayscale(img image.Image) *image.Gray {
	if g, ok := img.(*image.Gray); ok {
		return g
	}
	bounds := img.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetGray(x, y, color.GrayModel.Convert(img.At(x, y)).(color.Gray))
		}
	}
	return out
}

// EdgeMap produces a binary edge image: Sobel response thresholded to
// 0/255 pixels.
func EdgeMap(img image.Image) *image.Gray {
	return segment.Threshold(effect.Sobel(img), edgeLevel)
}

// Binarize thresholds an image to a black/white map, as fed to OCR.
func Binarize(img image.Image, level uint8) *image.Gray {
	return segment.Threshold(img, level)
}
