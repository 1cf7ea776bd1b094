package driving

import (
	"context"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// Querier answers natural-language questions over the indexed corpus.
type Querier interface {
	// Query retrieves context for the question, delegates generation
	// to the completion service and returns a formatted answer with a
	// composite confidence score. A retrieval or generation failure
	// yields a zero-confidence answer, never an error that crashes
	// the caller.
	Query(ctx context.Context, question string, opts domain.QueryOptions) (*domain.Answer, error)

	// Search exposes raw similarity retrieval without generation.
	Search(ctx context.Context, query string, k int, typeFilter domain.ChunkType) ([]domain.SearchResult, error)

	// Stats reports the state of the underlying index.
	Stats() domain.Statistics
}
