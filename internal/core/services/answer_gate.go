package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// relevanceGate decides whether the retrieved context can plausibly
// answer the question. Both checks must pass: the free lexical overlap
// screen runs first so an off-topic question never costs a model call,
// and the judge then confirms the context actually answers it.
// Retrieval scores alone are not trusted because vector similarity is
// high even for off-corpus questions.
func relevanceGate(
	ctx context.Context,
	llm driven.LLMService,
	question, contextText string,
) (bool, error) {
	if strings.TrimSpace(contextText) == "" {
		return false, nil
	}

	if !lexicalOverlap(question, contextText) {
		return false, nil
	}

	prompt := fmt.Sprintf(judgePrompt, contextText, question)
	verdict, err := llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   10,
		Temperature: 0,
	})
	if err != nil {
		return false, fmt.Errorf("%w: relevance judge: %v", domain.ErrModelCall, err)
	}
	return parseJudgeVerdict(verdict), nil
}

// lexicalOverlap reports whether the question and the context share at
// least one content token. Tokens shorter than three runes and
// stop-words are ignored on the question side; a question with no
// content tokens at all passes trivially, there is nothing to check.
func lexicalOverlap(question, contextText string) bool {
	contextTokens := make(map[string]bool)
	for _, token := range tokenize(contextText) {
		contextTokens[token] = true
	}

	checked := false
	for _, token := range tokenize(question) {
		if len([]rune(token)) < 3 {
			continue
		}
		if polishStopwords[token] || englishStopwords[token] {
			continue
		}
		checked = true
		if contextTokens[token] {
			return true
		}
	}
	return !checked
}

// tokenize lowercases and splits on anything that is not a letter or a
// digit.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// parseJudgeVerdict treats any affirmative token in the reply as a
// pass. Models occasionally wrap the verdict in a sentence, so exact
// equality would be too strict.
func parseJudgeVerdict(verdict string) bool {
	upper := strings.ToUpper(verdict)
	return strings.Contains(upper, "TAK") || strings.Contains(upper, "YES")
}
