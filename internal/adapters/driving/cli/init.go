package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/config/file"
)

var initCmd = &cobra.Command{
	Use:   "init [corpus-dir]",
	Short: "Write the configuration file",
	Long: `Writes the effective configuration (environment overrides and defaults
included) to the config file so it can be edited by hand. API keys are
never written; they stay in the environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	settings, err := configfile.Load(flagConfig)
	if err != nil {
		return err
	}
	if len(args) == 1 {
		abs, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		settings.Corpus.Path = abs
	}

	path := flagConfig
	if path == "" {
		path, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}
	if err := configfile.Save(path, settings); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", path)
	return nil
}
