package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchTopK       int
	searchTypeFilter string
	searchJSON       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Retrieve similar chunks without generating an answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "number of chunks to retrieve (default 5)")
	searchCmd.Flags().StringVar(&searchTypeFilter, "type", "", "restrict retrieval to one chunk type (text, table, chart)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	typeFilter, err := parseChunkType(searchTypeFilter)
	if err != nil {
		return err
	}

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	topK := searchTopK
	if topK <= 0 {
		topK = app.cfg.Retrieval.TopK
	}
	results, err := app.searcher().Search(ctx, args[0], topK, typeFilter)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}
	for _, r := range results {
		cmd.Printf("[%d] %s sayfa %d (%s, %.3f)\n",
			r.Rank+1, r.Chunk.Source, r.Chunk.PageNumber, r.Chunk.ChunkType, r.Score)
		cmd.Printf("    %s\n", snippet(r.Chunk.Text, 120))
	}
	return nil
}

// snippet truncates text to n runes for single-line display.
func snippet(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n]) + "..."
}
