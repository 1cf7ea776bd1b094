package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf...]",
	Short: "Analyze and index PDF documents",
	Long: `Extracts text and tables from each PDF with two independent
strategies, reconciles them per page, detects and reads charts from
rendered page images, then chunks and indexes everything for retrieval.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	ingestor := app.ingestor()

	for _, path := range args {
		analysis, err := ingestor.Ingest(ctx, path)
		if err != nil {
			return fmt.Errorf("ingest %s: %w", path, err)
		}

		summary := analysis.PDFContent.Summary
		cmd.Printf("%s: %d pages, %d with text, %d tables, %d charts\n",
			analysis.DocumentInfo.Filename,
			summary.TotalPages,
			summary.PagesWithText,
			summary.TableCount,
			analysis.ChartAnalysis.Summary.TotalCharts,
		)
	}

	stats := app.store.Stats()
	cmd.Printf("Index now holds %d chunks from %d documents.\n",
		stats.TotalChunks, len(stats.Sources))
	return nil
}
