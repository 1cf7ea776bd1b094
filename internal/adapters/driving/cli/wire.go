package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raporlabs/finrag/internal/adapters/driven/completion/groq"
	completionollama "github.com/raporlabs/finrag/internal/adapters/driven/completion/ollama"
	"github.com/raporlabs/finrag/internal/adapters/driven/config/file"
	"github.com/raporlabs/finrag/internal/adapters/driven/embedding/ollama"
	"github.com/raporlabs/finrag/internal/adapters/driven/embedding/openai"
	"github.com/raporlabs/finrag/internal/adapters/driven/ocr/tesseract"
	"github.com/raporlabs/finrag/internal/adapters/driven/pdfsource"
	"github.com/raporlabs/finrag/internal/adapters/driven/render/poppler"
	"github.com/raporlabs/finrag/internal/adapters/driven/storage/local"
	"github.com/raporlabs/finrag/internal/charts"
	"github.com/raporlabs/finrag/internal/chunker"
	"github.com/raporlabs/finrag/internal/core/ports/driven"
	"github.com/raporlabs/finrag/internal/core/services"
	"github.com/raporlabs/finrag/internal/logger"
	"github.com/raporlabs/finrag/internal/vectorstore"
	"github.com/raporlabs/finrag/internal/workerpool"
)

// app holds the wired components one command invocation needs.
// Completion is wired lazily because index-only commands (ingest,
// stats, search) must work without an answer-generation API key.
type app struct {
	cfg        file.Config
	cfgPath    string
	artifacts  *local.Store
	embedder   driven.EmbeddingService
	store      *vectorstore.Store
	completion driven.CompletionService
}

// newApp wires configuration, storage, embedding and the vector store,
// loading any persisted index snapshot.
func newApp(ctx context.Context) (*app, error) {
	cfg, path, err := loadConfig()
	if err != nil {
		return nil, err
	}

	artifacts, err := local.New(cfg.StorageDir(path))
	if err != nil {
		return nil, fmt.Errorf("open artifact store: %w", err)
	}

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	var opts []vectorstore.Option
	var chunkOpts []chunker.Option
	if cfg.Chunking.Size > 0 {
		chunkOpts = append(chunkOpts, chunker.WithChunkSize(cfg.Chunking.Size))
	}
	if cfg.Chunking.Overlap > 0 {
		chunkOpts = append(chunkOpts, chunker.WithOverlap(cfg.Chunking.Overlap))
	}
	if len(chunkOpts) > 0 {
		opts = append(opts, vectorstore.WithChunker(chunker.New(chunkOpts...)))
	}

	store := vectorstore.New(embedder, artifacts.VectorStoreDir(), opts...)
	loaded, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load vector store: %w", err)
	}
	if loaded {
		logger.Debug("loaded persisted index: %d chunks", store.Stats().TotalChunks)
	}

	return &app{
		cfg:       cfg,
		cfgPath:   path,
		artifacts: artifacts,
		embedder:  embedder,
		store:     store,
	}, nil
}

// Close releases the app's backends.
func (a *app) Close() {
	if a.embedder != nil {
		_ = a.embedder.Close()
	}
	if a.completion != nil {
		_ = a.completion.Close()
	}
}

// ingestor builds the full ingestion pipeline.
func (a *app) ingestor() *services.IngestService {
	var ocrEngine driven.OCREngine
	if !a.cfg.OCR.Disabled {
		engine := tesseract.New(tesseract.Config{
			Binary:    a.cfg.OCR.Binary,
			Languages: a.cfg.OCR.Languages,
		})
		if engine.Available() {
			ocrEngine = engine
		} else {
			logger.Warn("tesseract not found, chart text extraction disabled")
		}
	}

	renderer := poppler.New(a.cfg.Extraction.RenderBinary)
	if !renderer.Available() {
		logger.Warn("pdftoppm not found, chart analysis will use blank pages")
	}

	pool := workerpool.New(a.cfg.Extraction.Workers, 0)

	return services.NewIngestService(
		pdfsource.NewOpener(),
		renderer,
		charts.NewAnalyzer(ocrEngine),
		a.store,
		a.artifacts,
		pool,
	)
}

// querier builds the question-answering service, wiring the completion
// backend on first use.
func (a *app) querier() (*services.QueryService, error) {
	if a.completion == nil {
		completion, err := newCompletion(a.cfg.Completion)
		if err != nil {
			return nil, err
		}
		a.completion = completion
	}
	return services.NewQueryService(a.store, a.completion), nil
}

// searcher builds a retrieval-only service with no completion backend.
func (a *app) searcher() *services.QueryService {
	return services.NewQueryService(a.store, nil)
}

func newEmbedder(cfg file.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:           cfg.BaseURL,
			Model:             cfg.Model,
			RequestsPerSecond: cfg.RequestsPerSecond,
		}), nil
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:  apiKey(cfg.APIKey, "OPENAI_API_KEY"),
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}

func newCompletion(cfg file.CompletionConfig) (driven.CompletionService, error) {
	switch cfg.Provider {
	case "", "groq":
		key := apiKey(cfg.APIKey, "GROQ_API_KEY")
		if key == "" {
			return nil, errors.New("groq completion requires GROQ_API_KEY (or completion.api_key in the config)")
		}
		return groq.NewCompletionService(groq.Config{
			APIKey:      key,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   cfg.MaxTokens,
			Temperature: cfg.Temperature,
		})
	case "ollama":
		return completionollama.NewCompletionService(completionollama.Config{
			BaseURL: cfg.BaseURL,
			Model:   cfg.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}
}

// apiKey prefers the configured value, falling back to the environment.
func apiKey(configured, envVar string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(envVar)
}
