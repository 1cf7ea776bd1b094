package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/raporlabs/finrag/internal/core/ports/driving"
	"github.com/raporlabs/finrag/internal/logger"
)

// settleDelay is how long a new file must be quiet before ingestion.
// PDFs are usually copied into the watched directory in several writes.
const settleDelay = 2 * time.Second

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and ingest PDFs dropped into it",
	Long: `Watches a directory and runs the full ingestion pipeline on every
PDF created in it. Without --dir, the artifact store's documents
directory is watched. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDir, "dir", "", "directory to watch (default: the documents directory)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	app, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer app.Close()

	dir := watchDir
	if dir == "" {
		dir = app.artifacts.DocumentsDir()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for PDFs. Press Ctrl+C to stop.\n", dir)
	return watchLoop(ctx, cmd, watcher, app.ingestor())
}

// watchLoop ingests each PDF after its writes settle.
func watchLoop(ctx context.Context, cmd *cobra.Command, watcher *fsnotify.Watcher, ingestor driving.Ingestor) error {
	pending := make(map[string]*time.Timer)
	ingested := make(chan string)

	for {
		select {
		case <-ctx.Done():
			// Interrupt is the normal way to stop watching.
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
				continue
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".pdf") {
				continue
			}

			// Restart the settle timer on every write.
			path := event.Name
			if timer, exists := pending[path]; exists {
				timer.Stop()
			}
			pending[path] = time.AfterFunc(settleDelay, func() {
				select {
				case ingested <- path:
				case <-ctx.Done():
				}
			})

		case path := <-ingested:
			delete(pending, path)
			cmd.Printf("Ingesting %s\n", filepath.Base(path))
			if _, err := ingestor.Ingest(ctx, path); err != nil {
				logger.Error("ingest %s failed: %v", filepath.Base(path), err)
				continue
			}
			cmd.Printf("Indexed %s\n", filepath.Base(path))

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("watch error: %v", err)
		}
	}
}
