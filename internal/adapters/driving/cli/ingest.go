package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [document...]",
	Short: "Index the corpus into the search database",
	Long: `Indexes documents from the corpus directory. Without arguments the
whole corpus is scanned: changed documents are re-indexed, unchanged
ones are skipped by content hash, and index entries for deleted
documents are removed. With arguments only the named documents are
re-indexed.`,
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	app, err := buildApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	if len(args) > 0 {
		for _, docID := range args {
			outcome, err := app.ingestor.Upsert(ctx, docID)
			if err != nil {
				return fmt.Errorf("ingest %s: %w", docID, err)
			}
			cmd.Printf("%s: %s\n", docID, outcome)
		}
		return nil
	}

	summary, err := app.ingestor.IngestAll(ctx)
	cmd.Printf("Processed %d documents: %d reindexed, %d unchanged, %d removed, %d skipped, %d errors\n",
		summary.Processed, summary.Reindexed, summary.Unchanged,
		summary.Deleted, summary.Skipped, summary.ErrorCount)
	return err
}
