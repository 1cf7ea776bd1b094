// Package file loads and persists the application configuration as a
// TOML document, by default at ~/.finrag/config.toml. Missing files
// and missing keys resolve to defaults, so a fresh install works with
// no configuration at all.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultConfigDirName = ".finrag"
	DefaultConfigFile    = "config.toml"

	DefaultEmbeddingProvider  = "ollama"
	DefaultCompletionProvider = "groq"
)

// StorageConfig locates the artifact store root.
type StorageConfig struct {
	// Dir is the storage root. Empty means <config dir>/storage.
	Dir string `toml:"dir"`
}

// EmbeddingConfig selects and tunes the embedding backend.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	// APIKey is only used by remote providers. Prefer the environment;
	// this field exists for setups without one.
	APIKey string `toml:"api_key"`
	// RequestsPerSecond rate-limits remote providers. Zero disables.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// CompletionConfig selects and tunes the answer-generation backend.
type CompletionConfig struct {
	// Provider is "groq" or "ollama".
	Provider    string  `toml:"provider"`
	BaseURL     string  `toml:"base_url"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float64 `toml:"temperature"`
}

// OCRConfig tunes the tesseract engine.
type OCRConfig struct {
	Binary    string `toml:"binary"`
	Languages string `toml:"languages"`
	// Disabled skips OCR entirely; charts are still classified.
	Disabled bool `toml:"disabled"`
}

// ExtractionConfig tunes the ingest pipeline.
type ExtractionConfig struct {
	// Workers bounds page-level parallelism. Zero means the pool default.
	Workers int `toml:"workers"`
	// RenderBinary overrides the pdftoppm binary name.
	RenderBinary string `toml:"render_binary"`
}

// ChunkingConfig tunes how page text is split for indexing.
type ChunkingConfig struct {
	// Size is the chunk length in characters. Zero means the default.
	Size int `toml:"size"`
	// Overlap is how many characters consecutive chunks share.
	Overlap int `toml:"overlap"`
}

// RetrievalConfig tunes query-time behaviour.
type RetrievalConfig struct {
	// TopK is the default result count. Zero means the default.
	TopK int `toml:"top_k"`
	// MaxContextLength bounds the assembled context in characters.
	MaxContextLength int `toml:"max_context_length"`
}

// Config is the full application configuration.
type Config struct {
	Storage    StorageConfig    `toml:"storage"`
	Embedding  EmbeddingConfig  `toml:"embedding"`
	Completion CompletionConfig `toml:"completion"`
	OCR        OCRConfig        `toml:"ocr"`
	Extraction ExtractionConfig `toml:"extraction"`
	Chunking   ChunkingConfig   `toml:"chunking"`
	Retrieval  RetrievalConfig  `toml:"retrieval"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Embedding:  EmbeddingConfig{Provider: DefaultEmbeddingProvider},
		Completion: CompletionConfig{Provider: DefaultCompletionProvider},
	}
}

// DefaultDir returns ~/.finrag.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, DefaultConfigDirName), nil
}

// Load reads the configuration file at path. A missing file yields the
// defaults without error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories.
// The file is written with restricted permissions since it may hold
// API keys.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// StorageDir resolves the artifact store root relative to the config
// file's directory when not set explicitly.
func (c Config) StorageDir(configPath string) string {
	if c.Storage.Dir != "" {
		return c.Storage.Dir
	}
	return filepath.Join(filepath.Dir(configPath), "storage")
}
