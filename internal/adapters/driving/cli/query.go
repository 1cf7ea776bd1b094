package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raporlabs/finrag/internal/core/domain"
)

var (
	queryTopK       int
	queryTypeFilter string
	querySources    bool
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Ask a question over the indexed documents",
	Long: `Retrieves the most similar indexed chunks for the question,
assembles them into a Turkish financial-analysis prompt and generates
an answer with a composite confidence score.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (default 5)")
	queryCmd.Flags().StringVar(&queryTypeFilter, "type", "", "restrict retrieval to one chunk type (text, table, chart)")
	queryCmd.Flags().BoolVar(&querySources, "sources", false, "print the retrieved chunks under the answer")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	typeFilter, err := parseChunkType(queryTypeFilter)
	if err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	querier, err := app.querier()
	if err != nil {
		return err
	}

	topK := queryTopK
	if topK <= 0 {
		topK = app.cfg.Retrieval.TopK
	}
	answer, err := querier.Query(ctx, args[0], domain.QueryOptions{
		TopK:             topK,
		TypeFilter:       typeFilter,
		MaxContextLength: app.cfg.Retrieval.MaxContextLength,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	cmd.Println(answer.Text)

	if querySources && len(answer.Results) > 0 {
		cmd.Println()
		cmd.Println("Kaynaklar:")
		for _, r := range answer.Results {
			cmd.Printf("  [%d] %s sayfa %d (%s, %.3f)\n",
				r.Rank+1, r.Chunk.Source, r.Chunk.PageNumber, r.Chunk.ChunkType, r.Score)
		}
	}
	return nil
}

// parseChunkType validates the --type flag.
func parseChunkType(s string) (domain.ChunkType, error) {
	switch s {
	case "":
		return "", nil
	case "text":
		return domain.ChunkTypeText, nil
	case "table":
		return domain.ChunkTypeTable, nil
	case "chart":
		return domain.ChunkTypeChart, nil
	default:
		return "", fmt.Errorf("unknown chunk type %q (expected text, table or chart)", s)
	}
}
