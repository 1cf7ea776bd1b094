package vectorstore

import (
	"bufio"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/logger"
)

// Persisted artifact names. The four files form one logical snapshot;
// config.json is written last so a torn save is detected as absent.
const (
	indexFile    = "index.bin"
	chunksFile   = "chunks.json"
	metadataFile = "metadata.json"
	configFile   = "config.json"
)

// storeConfig is the persisted index descriptor.
type storeConfig struct {
	ModelName    string `json:"model_name"`
	IndexType    string `json:"index_type"`
	EmbeddingDim int    `json:"embedding_dim"`
	TotalChunks  int    `json:"total_chunks"`
}

// Save writes the index snapshot to the store directory.
func (s *Store) Save(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	if err := s.writeIndex(filepath.Join(s.dir, indexFile)); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.dir, chunksFile), s.chunks); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(s.dir, metadataFile), s.metadata); err != nil {
		return err
	}
	cfg := storeConfig{
		ModelName:    s.embedder.ModelName(),
		IndexType:    indexType,
		EmbeddingDim: s.embedder.Dimensions(),
		TotalChunks:  len(s.chunks),
	}
	if err := writeJSON(filepath.Join(s.dir, configFile), cfg); err != nil {
		return err
	}
	logger.Info("vector store: saved %d chunks to %s", len(s.chunks), s.dir)
	return nil
}

// Load restores a snapshot. A missing snapshot or an embedding model
// mismatch returns (false, nil): the caller rebuilds from source
// documents. Corrupt artifacts are errors.
func (s *Store) Load(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	var cfg storeConfig
	if err := readJSON(filepath.Join(s.dir, configFile), &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if cfg.ModelName != s.embedder.ModelName() {
		logger.Warn("vector store: index built with model %q, configured model is %q; rebuilding",
			cfg.ModelName, s.embedder.ModelName())
		return false, nil
	}
	if cfg.EmbeddingDim != s.embedder.Dimensions() {
		logger.Warn("vector store: index dimension %d does not match model dimension %d; rebuilding",
			cfg.EmbeddingDim, s.embedder.Dimensions())
		return false, nil
	}

	vectors, err := readIndex(filepath.Join(s.dir, indexFile))
	if err != nil {
		return false, err
	}
	var chunks []domain.DocumentChunk
	if err := readJSON(filepath.Join(s.dir, chunksFile), &chunks); err != nil {
		return false, err
	}
	var metadata []map[string]string
	if err := readJSON(filepath.Join(s.dir, metadataFile), &metadata); err != nil {
		return false, err
	}

	if len(vectors) != len(chunks) || len(chunks) != len(metadata) || len(chunks) != cfg.TotalChunks {
		return false, fmt.Errorf("load vector store: %w: %d vectors, %d chunks, %d metadata, config says %d",
			domain.ErrIndexMismatch, len(vectors), len(chunks), len(metadata), cfg.TotalChunks)
	}

	byID := make(map[string]int, len(chunks))
	for i := range chunks {
		chunks[i].Metadata = metadata[i]
		byID[chunks[i].ID] = i
	}

	s.mu.Lock()
	s.vectors = vectors
	s.chunks = chunks
	s.metadata = metadata
	s.byID = byID
	s.mu.Unlock()

	logger.Info("vector store: loaded %d chunks from %s", len(chunks), s.dir)
	return true, nil
}

// writeIndex serialises vectors as little-endian: int32 dimension,
// int32 count, then count*dimension float32 values.
func (s *Store) writeIndex(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	dim := int32(s.embedder.Dimensions())
	if err := binary.Write(w, binary.LittleEndian, dim); err != nil {
		return fmt.Errorf("write index header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(len(s.vectors))); err != nil {
		return fmt.Errorf("write index header: %w", err)
	}
	for _, v := range s.vectors {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fmt.Errorf("write index vectors: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush index: %w", err)
	}
	return f.Close()
}

func readIndex(path string) ([][]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var dim, count int32
	if err := binary.Read(r, binary.LittleEndian, &dim); err != nil {
		return nil, fmt.Errorf("read index header: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read index header: %w", err)
	}
	if dim <= 0 || count < 0 {
		return nil, fmt.Errorf("read index: invalid header (dim %d, count %d)", dim, count)
	}

	vectors := make([][]float32, count)
	for i := range vectors {
		v := make([]float32, dim)
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			return nil, fmt.Errorf("read index vector %d: %w", i, err)
		}
		vectors[i] = v
	}
	return vectors, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}
