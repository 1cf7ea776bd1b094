package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/raporlabs/finrag/internal/core/domain"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the state of the vector index",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer app.Close()

	stats := app.searcher().Stats()

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Chunks:    %d\n", stats.TotalChunks)
	chunkTypes := make([]string, 0, len(stats.ChunkTypes))
	for chunkType := range stats.ChunkTypes {
		chunkTypes = append(chunkTypes, string(chunkType))
	}
	sort.Strings(chunkTypes)
	for _, chunkType := range chunkTypes {
		cmd.Printf("  %-8s %d\n", chunkType, stats.ChunkTypes[domain.ChunkType(chunkType)])
	}
	cmd.Printf("Dimension: %d\n", stats.EmbeddingDim)
	cmd.Printf("Index:     %s\n", stats.IndexType)
	cmd.Printf("Model:     %s\n", stats.ModelName)
	cmd.Printf("Documents: %d\n", len(stats.Sources))
	for _, source := range stats.Sources {
		cmd.Printf("  %s\n", source)
	}
	return nil
}
