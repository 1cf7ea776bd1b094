package driven

import (
	"context"
	"image"
)

// OCREngine converts raster image regions into text lines.
// The engine is language-configurable; the chart analyzer feeds it a
// binarised image for better recognition.
type OCREngine interface {
	// Lines runs recognition and returns the non-empty text lines in
	// reading order.
	Lines(ctx context.Context, img image.Image) ([]string, error)
}
