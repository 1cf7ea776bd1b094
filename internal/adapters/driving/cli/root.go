// Package cli implements the finrag command line interface. Commands
// are thin: they load configuration, wire the driven adapters into the
// core services and print results. All document and retrieval logic
// lives in the core.
package cli

import (
	"context"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/raporlabs/finrag/internal/adapters/driven/config/file"
	"github.com/raporlabs/finrag/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "finrag",
	Short: "Financial PDF analysis and question answering",
	Long: `finrag ingests financial PDF reports, extracts their text, tables
and charts, indexes the content as vector embeddings and answers
Turkish natural-language questions over the indexed corpus.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
		// A .env file is optional; absence is not an error.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.finrag/config.toml)")
}

// ExecuteContext runs the root command with the given context,
// typically one cancelled on SIGINT/SIGTERM.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configPath resolves the active config file location.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	dir, err := file.DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file.DefaultConfigFile), nil
}

// loadConfig reads the active configuration.
func loadConfig() (file.Config, string, error) {
	path, err := configPath()
	if err != nil {
		return file.Config{}, "", err
	}
	cfg, err := file.Load(path)
	if err != nil {
		return file.Config{}, "", err
	}
	return cfg, path, nil
}
