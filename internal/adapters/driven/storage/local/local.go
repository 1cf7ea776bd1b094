// Package local implements directory-based artifact storage: uploaded
// PDFs, analysis JSON documents and the vector store snapshot all live
// under one root directory.
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/raporlabs/finrag/internal/core/domain"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.ArtifactStore = (*Store)(nil)

// Subdirectories under the storage root.
const (
	documentsDir   = "documents"
	analysisDir    = "analysis"
	vectorStoreDir = "vector_store"
)

// Store is a filesystem artifact store rooted at one directory.
type Store struct {
	root string
}

// New creates the store and its subdirectories under root.
func New(root string) (*Store, error) {
	for _, sub := range []string{documentsDir, analysisDir, vectorStoreDir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory %s: %w", sub, err)
		}
	}
	return &Store{root: root}, nil
}

// SaveDocument stores an uploaded PDF under a collision-free name and
// returns its stored path.
func (s *Store) SaveDocument(ctx context.Context, filename string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s_%s", uuid.NewString()[:8], filepath.Base(filename))
	path := filepath.Join(s.root, documentsDir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create document %s: %w", name, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write document %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close document %s: %w", name, err)
	}
	return path, nil
}

// SaveAnalysis persists a document analysis as JSON under the given
// name and returns its stored path.
func (s *Store) SaveAnalysis(ctx context.Context, name string, analysis *domain.DocumentAnalysis) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(analysis, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis %s: %w", name, err)
	}
	path := filepath.Join(s.root, analysisDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write analysis %s: %w", name, err)
	}
	return path, nil
}

// LoadAnalysis reads a previously saved analysis by name.
func (s *Store) LoadAnalysis(ctx context.Context, name string) (*domain.DocumentAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := filepath.Join(s.root, analysisDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("analysis %s: %w", name, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("read analysis %s: %w", name, err)
	}

	var analysis domain.DocumentAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("parse analysis %s: %w", name, err)
	}
	return &analysis, nil
}

// ListAnalyses returns the names of all saved analyses, sorted.
func (s *Store) ListAnalyses(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(s.root, analysisDir))
	if err != nil {
		return nil, fmt.Errorf("list analyses: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// DocumentsDir returns the directory PDFs are stored in.
func (s *Store) DocumentsDir() string {
	return filepath.Join(s.root, documentsDir)
}

// VectorStoreDir returns the directory the vector store persists to.
func (s *Store) VectorStoreDir() string {
	return filepath.Join(s.root, vectorStoreDir)
}
