package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Embeddings are deterministic for a fixed model and have a fixed
// dimensionality per model. Vectors are NOT required to be unit length;
// the vector store normalises before insertion and query so that inner
// product search has cosine semantics.
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	// The vector store records it and refuses to load an index built
	// with a different model.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request. Used at startup before committing to an ingest.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
