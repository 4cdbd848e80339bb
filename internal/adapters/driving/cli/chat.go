package cli

import (
	"bufio"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/services"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
)

// maxHistoryTurns bounds the prompt size in long sessions; only the
// most recent turns feed contextualisation.
const maxHistoryTurns = 20

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive question session",
	Long: `Starts a conversation over the indexed corpus. Follow-up questions
are understood in the context of the session. End with "exit", "quit"
or Ctrl-D. History lives in memory only and is gone when the session
ends.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	app, err := buildApp(true)
	if err != nil {
		return err
	}
	defer app.Close()

	return chatSession(cmd, app.answerer, uuid.NewString())
}

// chatSession runs the REPL. Every log line carries the session id so
// the turns of one conversation can be pulled out of interleaved logs.
func chatSession(cmd *cobra.Command, answerer *services.Answerer, sessionID string) error {
	logger.Debug("session %s: started", sessionID)

	cmd.Println("Zadaj pytanie (zakończ przez \"exit\").")

	var history []domain.Turn
	turn := 0
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" || input == "koniec" {
			break
		}
		turn++

		answer, err := answerer.Answer(cmd.Context(), input, history)
		if err != nil {
			logger.Error("session %s turn %d: %v", sessionID, turn, err)
			cmd.Println("Przepraszam, wystąpił błąd. Spróbuj ponownie.")
			continue
		}
		logger.Debug("session %s turn %d: route %v, grounded %t",
			sessionID, turn, answer.Route, answer.Grounded)

		cmd.Println(answer.Text)
		cmd.Println()

		history = append(history,
			domain.Turn{Role: domain.RoleHuman, Content: input},
			domain.Turn{Role: domain.RoleAssistant, Content: answer.Text},
		)
		if len(history) > maxHistoryTurns {
			history = history[len(history)-maxHistoryTurns:]
		}
	}
	logger.Debug("session %s: ended after %d turns", sessionID, turn)
	return scanner.Err()
}
