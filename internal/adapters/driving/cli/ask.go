package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <pytanie>",
	Short: "Ask a single question about the corpus",
	Long: `Answers one question against the indexed corpus and exits. The
question may be given as multiple arguments; they are joined with
spaces.

  wiedza ask ile dni urlopu mi przysługuje`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	app, err := buildApp(true)
	if err != nil {
		return err
	}
	defer app.Close()

	question := strings.Join(args, " ")
	answer, err := app.answerer.Answer(cmd.Context(), question, nil)
	if err != nil {
		return err
	}

	cmd.Println(answer.Text)
	return nil
}
