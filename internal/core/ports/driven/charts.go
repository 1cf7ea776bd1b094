package driven

import (
	"context"
	"image"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// ChartAnalyzer inspects a rendered page image for chart structure.
type ChartAnalyzer interface {
	// Analyze classifies the image and extracts its numeric content.
	// A page without a recognisable chart returns (nil, nil).
	Analyze(ctx context.Context, img image.Image, pageNumber int) (*domain.ChartRecord, error)
}
