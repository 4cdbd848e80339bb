package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// contextualize rewrites a follow-up question into a standalone query
// using the prior turns. With no history the input passes through
// unchanged and no model call is made. A model failure propagates: a
// silently wrong standalone query degrades answers without any visible
// symptom, so there is no local fallback.
func contextualize(
	ctx context.Context,
	llm driven.LLMService,
	input string,
	history []domain.Turn,
) (string, error) {
	if len(history) == 0 {
		return input, nil
	}

	prompt := fmt.Sprintf(contextualizePrompt, renderHistory(history), input)
	standalone, err := llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   300,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("%w: contextualize: %v", domain.ErrModelCall, err)
	}

	standalone = strings.TrimSpace(standalone)
	if standalone == "" {
		return input, nil
	}
	return standalone, nil
}

// renderHistory flattens turns into the prompt's transcript form.
func renderHistory(history []domain.Turn) string {
	var b strings.Builder
	for _, turn := range history {
		role := "Użytkownik"
		if turn.Role == domain.RoleAssistant {
			role = "Asystent"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, turn.Content)
	}
	return strings.TrimRight(b.String(), "\n")
}

// lastHumanQuestion returns the most recent human turn, or "" when the
// history holds none.
func lastHumanQuestion(history []domain.Turn) string {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == domain.RoleHuman {
			return history[i].Content
		}
	}
	return ""
}
