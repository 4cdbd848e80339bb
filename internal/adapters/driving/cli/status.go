package cli

import (
	"sort"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what is currently indexed",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	app, err := buildApp(false)
	if err != nil {
		return err
	}
	defer app.Close()

	states, err := app.states.List(cmd.Context())
	if err != nil {
		return err
	}

	sort.Slice(states, func(i, j int) bool {
		return states[i].DocID < states[j].DocID
	})

	cmd.Printf("Corpus: %s\n", app.blobs.Root())
	cmd.Printf("Retrieval: %s (top %d)\n", app.settings.Retrieval.Mode, app.settings.Retrieval.TopK)
	if app.embedder != nil {
		cmd.Printf("Embeddings: %s\n", app.embedder.ModelName())
	} else {
		cmd.Println("Embeddings: not configured (keyword matching only)")
	}
	cmd.Println()

	if len(states) == 0 {
		cmd.Println("Nothing indexed yet. Run 'wiedza ingest' first.")
		return nil
	}

	var totalChunks int
	for _, st := range states {
		totalChunks += st.ChunkCount
		cmd.Printf("  %-50s %4d chunks  %s\n",
			st.DocID, st.ChunkCount, st.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	cmd.Printf("\n%d documents, %d chunks\n", len(states), totalChunks)
	return nil
}
