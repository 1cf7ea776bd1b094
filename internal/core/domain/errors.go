package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoExtractableText indicates no extraction strategy produced
	// text for a document. Extraction still yields low-confidence
	// page records; this error is reserved for documents with no pages.
	ErrNoExtractableText = errors.New("no extractable text")

	// ErrIndexMismatch indicates a persisted vector store was built
	// with a different embedding model or dimensionality than the one
	// currently configured. The caller must rebuild from source
	// documents rather than proceed with an incompatible index.
	ErrIndexMismatch = errors.New("index model mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Indexing and semantic search are
	// disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrCompletionUnavailable indicates the completion service is not
	// configured. Queries still return retrieval results but no
	// generated answer.
	ErrCompletionUnavailable = errors.New("completion service unavailable")

	// ErrOCRUnavailable indicates the OCR engine is not installed or
	// not configured. Chart analysis degrades to classification only.
	ErrOCRUnavailable = errors.New("ocr engine unavailable")

	// ErrRenderFailed indicates both the high and low resolution
	// renderers failed for a page. The page image is replaced by a
	// blank placeholder.
	ErrRenderFailed = errors.New("page render failed")
)
