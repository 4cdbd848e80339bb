// Package cli implements the wiedza command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/praksa-labs/wiedza-cli/internal/adapters/driven/ai"
	"github.com/praksa-labs/wiedza-cli/internal/adapters/driven/blob/filesystem"
	configfile "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/config/file"
	osexec "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/exec"
	"github.com/praksa-labs/wiedza-cli/internal/adapters/driven/search/sqlite"
	stateblob "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/state/blob"
	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
	"github.com/praksa-labs/wiedza-cli/internal/core/services"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
	"github.com/praksa-labs/wiedza-cli/internal/normalisers"
	"github.com/praksa-labs/wiedza-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "wiedza",
	Short: "Asystent pytań i odpowiedzi oparty na Twoich dokumentach",
	Long: `wiedza indexes a directory of documents and answers questions
about them in Polish, citing the source files it used.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(flagVerbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.wiedza/config.toml)")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired services a command needs.
type app struct {
	settings *domain.Settings
	blobs    *filesystem.BlobStore
	states   driven.StateStore
	index    *sqlite.Index
	embedder driven.EmbeddingService
	llm      driven.LLMService
	ingestor *services.Ingestor
	answerer *services.Answerer
}

// Close releases everything the app holds.
func (a *app) Close() {
	if a.index != nil {
		a.index.Close()
	}
	if a.embedder != nil {
		a.embedder.Close()
	}
	if a.llm != nil {
		a.llm.Close()
	}
}

// buildApp loads configuration and wires the pipeline. needLLM is false
// for ingestion-only commands, which must work without a chat backend.
func buildApp(needLLM bool) (*app, error) {
	settings, err := configfile.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if err := configfile.Validate(settings, needLLM); err != nil {
		return nil, err
	}

	blobs, err := filesystem.NewBlobStore(settings.Corpus.Path)
	if err != nil {
		return nil, err
	}

	index, err := sqlite.NewIndex(settings.DataDir)
	if err != nil {
		return nil, err
	}

	a := &app{
		settings: settings,
		blobs:    blobs,
		states:   stateblob.NewStateStore(blobs),
		index:    index,
	}

	a.embedder, err = ai.CreateEmbeddingService(&settings.Embedding)
	if err != nil {
		a.Close()
		return nil, err
	}

	proc := chunker.New()
	registry := normalisers.Defaults(osexec.NewRunner())
	a.ingestor = services.NewIngestor(
		blobs, registry, proc, a.embedder, index, a.states, settings.Corpus.SourceTag,
	)

	if needLLM {
		a.llm, err = ai.CreateLLMService(&settings.LLM)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.answerer = services.NewAnswerer(
			a.llm, a.embedder, index,
			services.WithTopK(settings.Retrieval.TopK),
			services.WithSearchMode(driven.SearchMode(settings.Retrieval.Mode)),
		)
	}
	return a, nil
}
