package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [name]",
	Short: "List saved document analyses",
	Long: `Without arguments, lists the names of all saved analyses. With a
name, prints that analysis' extraction and chart summary.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	if len(args) == 1 {
		return showAnalysis(cmd, app, args[0])
	}

	names, err := app.artifacts.ListAnalyses(ctx)
	if err != nil {
		return fmt.Errorf("list analyses: %w", err)
	}
	if len(names) == 0 {
		cmd.Println("No analyses saved yet. Run `finrag ingest` first.")
		return nil
	}
	for _, name := range names {
		cmd.Println(name)
	}
	return nil
}

func showAnalysis(cmd *cobra.Command, app *app, name string) error {
	analysis, err := app.artifacts.LoadAnalysis(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("load analysis %s: %w", name, err)
	}

	info := analysis.DocumentInfo
	ext := analysis.PDFContent.Summary
	cmd.Printf("%s (%d pages, analyzed %s)\n",
		info.Filename, info.TotalPages, info.AnalyzedAt.Format("2006-01-02 15:04"))
	cmd.Printf("  Pages with text: %d\n", ext.PagesWithText)
	cmd.Printf("  Tables:          %d\n", ext.TableCount)
	cmd.Printf("  Charts:          %d\n", analysis.ChartAnalysis.Summary.TotalCharts)
	for _, page := range analysis.PDFContent.Pages {
		cmd.Printf("  Page %d: %s (%s)\n", page.PageNumber, page.Title, page.Confidence)
	}
	return nil
}
