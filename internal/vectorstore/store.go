// Package vectorstore implements a flat inner-product similarity index
// over document chunks, with file-based persistence. Vectors are unit
// normalised at insertion and query time, so inner product ranking has
// cosine semantics.
package vectorstore

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/raporlabs/finrag/internal/chunker"
	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
	"github.com/raporlabs/finrag/internal/logger"
)

const (
	// indexType names the index implementation in stats and the
	// persisted config record.
	indexType = "flat"

	// DefaultTopK is the result count when the caller does not ask
	// for a specific k.
	DefaultTopK = 5

	// DefaultBatchSize bounds how many texts go to the embedding
	// service per request.
	DefaultBatchSize = 32
)

// Store is an in-memory flat index persisted to a directory.
//
// The three parallel slices always have equal length; every mutation
// appends to all of them under the write lock or to none.
type Store struct {
	embedder driven.EmbeddingService
	dir      string
	splitter *chunker.Chunker
	batch    int

	mu       sync.RWMutex
	vectors  [][]float32
	chunks   []domain.DocumentChunk
	metadata []map[string]string
	byID     map[string]int
}

var _ driven.VectorStore = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithBatchSize sets the embedding batch size.
func WithBatchSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.batch = n
		}
	}
}

// WithChunker replaces the default text splitter.
func WithChunker(c *chunker.Chunker) Option {
	return func(s *Store) {
		if c != nil {
			s.splitter = c
		}
	}
}

// New creates an empty store persisting to dir.
func New(embedder driven.EmbeddingService, dir string, opts ...Option) *Store {
	s := &Store{
		embedder: embedder,
		dir:      dir,
		splitter: chunker.New(),
		batch:    DefaultBatchSize,
		byID:     make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddAnalysis chunks every textual artifact of the analysis and indexes
// the chunks that are not already present. Embeddings are computed
// before the lock is taken; the batch becomes visible atomically.
func (s *Store) AddAnalysis(ctx context.Context, analysis *domain.DocumentAnalysis) error {
	candidates := chunksFromAnalysis(analysis, s.splitter)

	s.mu.RLock()
	fresh := candidates[:0]
	for _, c := range candidates {
		if _, exists := s.byID[c.ID]; !exists {
			fresh = append(fresh, c)
		}
	}
	s.mu.RUnlock()
	if len(fresh) == 0 {
		logger.Debug("vector store: nothing new to index for %s", analysis.DocumentInfo.Filename)
		return nil
	}

	texts := make([]string, len(fresh))
	for i, c := range fresh {
		texts[i] = c.Text
	}
	vectors, err := s.embedAll(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed %d chunks: %w", len(fresh), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range fresh {
		if _, exists := s.byID[c.ID]; exists {
			continue // inserted concurrently
		}
		s.byID[c.ID] = len(s.chunks)
		s.vectors = append(s.vectors, normalize(vectors[i]))
		s.chunks = append(s.chunks, c)
		s.metadata = append(s.metadata, c.Metadata)
	}
	logger.Info("vector store: indexed %d chunks from %s (total %d)",
		len(fresh), analysis.DocumentInfo.Filename, len(s.chunks))
	return nil
}

// Search embeds the query and ranks all chunks by inner product.
func (s *Store) Search(ctx context.Context, query string, k int, typeFilter domain.ChunkType) ([]domain.SearchResult, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	s.mu.RLock()
	empty := len(s.chunks) == 0
	s.mu.RUnlock()
	if empty {
		return []domain.SearchResult{}, nil
	}

	vec, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	q := normalize(vec)

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		idx   int
		score float64
	}
	all := make([]scored, len(s.vectors))
	for i, v := range s.vectors {
		all[i] = scored{idx: i, score: dot(q, v)}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].score > all[j].score })

	// Filter after truncating to the global top k. A filtered query may
	// therefore return fewer than k results.
	top := all
	if len(top) > k {
		top = top[:k]
	}
	results := make([]domain.SearchResult, 0, len(top))
	for _, c := range top {
		chunk := s.chunks[c.idx]
		if typeFilter != "" && chunk.ChunkType != typeFilter {
			continue
		}
		chunk.Metadata = s.metadata[c.idx]
		results = append(results, domain.SearchResult{
			Chunk: chunk,
			Score: c.score,
			Rank:  len(results),
		})
	}
	return results, nil
}

// Stats reports the index contents.
func (s *Store) Stats() domain.Statistics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make(map[domain.ChunkType]int)
	seen := make(map[string]bool)
	var sources []string
	for _, c := range s.chunks {
		types[c.ChunkType]++
		if !seen[c.Source] {
			seen[c.Source] = true
			sources = append(sources, c.Source)
		}
	}
	sort.Strings(sources)

	return domain.Statistics{
		TotalChunks:  len(s.chunks),
		ChunkTypes:   types,
		Sources:      sources,
		EmbeddingDim: s.embedder.Dimensions(),
		IndexType:    indexType,
		ModelName:    s.embedder.ModelName(),
	}
}

// embedAll calls the embedding service in bounded batches.
func (s *Store) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += s.batch {
		end := start + s.batch
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := s.embedder.EmbedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("embedding service returned %d vectors for %d texts", len(batch), end-start)
		}
		vectors = append(vectors, batch...)
	}
	return vectors, nil
}

// normalize returns a unit-length copy; zero vectors pass unchanged.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
