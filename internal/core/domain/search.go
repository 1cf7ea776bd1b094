package domain

// SearchResult is a single similarity hit. It is produced per query and
// never persisted; the chunk reference is non-owning.
type SearchResult struct {
	// Chunk is the matched retrieval unit.
	Chunk DocumentChunk

	// Score is the similarity, higher is better.
	Score float64

	// Rank is the 0-based position in the final (possibly filtered)
	// ordering.
	Rank int
}

// QueryOptions configures a retrieval query.
type QueryOptions struct {
	// TopK is the number of nearest neighbours to retrieve (default 5).
	TopK int

	// TypeFilter drops results of other chunk types after retrieval.
	// Empty means no filtering. Filtering happens after the nearest
	// neighbour search, so a filtered query may return fewer than TopK
	// results; that is expected, not an error.
	TypeFilter ChunkType

	// MaxContextLength bounds the assembled context in characters
	// (default 2000).
	MaxContextLength int
}

// Answer is the user-facing result of a question.
type Answer struct {
	// Text is the generated (and formatted) answer.
	Text string

	// Confidence is the composite [0,1] reliability estimate.
	Confidence float64

	// Results are the retrieval hits the answer was built from.
	Results []SearchResult
}

// Statistics describes the current state of the vector store.
type Statistics struct {
	// TotalChunks is the number of indexed chunks.
	TotalChunks int `json:"total_chunks"`

	// ChunkTypes counts chunks per type.
	ChunkTypes map[ChunkType]int `json:"chunk_types"`

	// Sources lists the distinct source documents.
	Sources []string `json:"sources"`

	// EmbeddingDim is the vector dimensionality.
	EmbeddingDim int `json:"embedding_dim"`

	// IndexType names the similarity index implementation.
	IndexType string `json:"index_type"`

	// ModelName is the embedding model the index was built with.
	ModelName string `json:"model_name"`
}
