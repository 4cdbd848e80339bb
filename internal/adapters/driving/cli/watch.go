package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/praksa-labs/wiedza-cli/internal/core/services"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
)

// watchDebounce is how long a file must stay quiet before its events
// are acted on; editors emit several writes per save.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index synchronised with the corpus directory",
	Long: `Runs a full ingestion, then watches the corpus directory and
re-indexes documents as they are created, modified or deleted. Stops
on Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	app, err := buildApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catch up before watching so events only need to cover the delta.
	summary, err := app.ingestor.IngestAll(ctx)
	if err != nil {
		logger.Error("initial ingestion: %v", err)
	}
	cmd.Printf("Indexed %d documents, watching %s\n", summary.Processed, app.blobs.Root())

	events, err := app.blobs.Watch(ctx, "")
	if err != nil {
		return err
	}

	for ev := range services.DebounceEvents(ctx, events, watchDebounce) {
		outcome, err := app.ingestor.HandleEvent(ctx, ev)
		if err != nil {
			logger.Error("handle %s: %v", ev.Name, err)
			continue
		}
		logger.Info("%s: %s", ev.Name, outcome)
	}

	cmd.Println("Stopped.")
	return nil
}
