package driven

import (
	"context"
	"io"

	"github.com/raporlabs/finrag/internal/core/domain"
)

// ArtifactStore is directory-based storage for uploaded PDFs, analysis
// JSON documents and the vector store. The core only requires
// read/write/list operations on named paths.
type ArtifactStore interface {
	// SaveDocument stores an uploaded PDF and returns its stored path.
	SaveDocument(ctx context.Context, filename string, r io.Reader) (string, error)

	// SaveAnalysis persists a document analysis as JSON under the
	// given name and returns its stored path.
	SaveAnalysis(ctx context.Context, name string, analysis *domain.DocumentAnalysis) (string, error)

	// LoadAnalysis reads a previously saved analysis by name.
	LoadAnalysis(ctx context.Context, name string) (*domain.DocumentAnalysis, error)

	// ListAnalyses returns the names of all saved analyses.
	ListAnalyses(ctx context.Context) ([]string, error)

	// DocumentsDir returns the directory PDFs are stored in.
	DocumentsDir() string

	// VectorStoreDir returns the directory the vector store persists to.
	VectorStoreDir() string
}
