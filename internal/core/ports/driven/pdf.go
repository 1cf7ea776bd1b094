package driven

import (
	"context"
	"image"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// PageSource exposes the text content of an open PDF through two
// independent extraction strategies. Strategies must not share failure:
// an error from one must leave the other usable.
type PageSource interface {
	// PageCount returns the number of pages in the document.
	PageCount() int

	// LayoutText extracts text for a 1-based page using the
	// layout-aware (row ordered) strategy.
	LayoutText(ctx context.Context, page int) (string, error)

	// StreamText extracts text for a 1-based page using the
	// character-stream strategy.
	StreamText(ctx context.Context, page int) (string, error)

	// Tables extracts row grids for a 1-based page, best effort.
	// A failure yields an empty list, never aborts the page.
	Tables(ctx context.Context, page int) ([]domain.Table, error)

	// Close releases the underlying file handle.
	Close() error
}

// PageSourceOpener opens PDF documents as page sources.
type PageSourceOpener interface {
	Open(path string) (PageSource, error)
}

// PageRenderer rasterises single pages of a PDF. Callers implement
// fallback policy: a high resolution attempt first, a lower resolution
// on failure, and a blank placeholder if both fail.
type PageRenderer interface {
	// Render rasterises a 1-based page at the given DPI.
	Render(ctx context.Context, path string, page, dpi int) (image.Image, error)
}
