package driving

import (
	"context"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// Ingestor runs the full ingestion pipeline for one PDF: consensus
// text extraction, table extraction, page rendering, chart analysis,
// chunking and indexing.
type Ingestor interface {
	// Ingest processes the PDF at path and returns the persisted
	// document analysis. Page-level failures degrade confidence, they
	// never abort the document.
	Ingest(ctx context.Context, path string) (*domain.DocumentAnalysis, error)
}
