package driven

import (
	"context"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// VectorStore indexes document chunks and answers similarity queries.
//
// The store follows a single-writer discipline: bulk inserts and loads
// are exclusive, searches may run concurrently with each other but
// never observe a partially inserted batch.
type VectorStore interface {
	// AddAnalysis chunks and indexes all textual artifacts of a
	// document analysis: paragraphs, tables and chart descriptions.
	// Insertion is idempotent per chunk ID and atomic per batch.
	AddAnalysis(ctx context.Context, analysis *domain.DocumentAnalysis) error

	// Search embeds the query and returns up to k results ordered by
	// descending similarity. When typeFilter is non-empty, results of
	// other chunk types are dropped after retrieval. An empty index
	// returns an empty slice, not an error.
	Search(ctx context.Context, query string, k int, typeFilter domain.ChunkType) ([]domain.SearchResult, error)

	// Save writes the index, chunk list, metadata map and config
	// record as coordinated artifacts.
	Save(ctx context.Context) error

	// Load restores a previously saved store. It returns false when no
	// artifacts exist or when the recorded embedding model does not
	// match the configured one; the caller must then rebuild from
	// source documents.
	Load(ctx context.Context) (bool, error)

	// Stats reports the current index contents.
	Stats() domain.Statistics
}
