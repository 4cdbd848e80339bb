package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
)

const (
	defaultTopK       = 6
	defaultSearchMode = driven.SearchModeHybrid
)

// Answerer runs a user turn through the full answering pipeline:
// routing, language gating, contextualization, retrieval, relevance
// gating, generation and rendering. Every stage can short-circuit with
// a terminal answer; only a question that survives them all reaches the
// model with retrieved context.
type Answerer struct {
	llm      driven.LLMService
	embedder driven.EmbeddingService
	index    driven.SearchIndex
	topK     int
	mode     driven.SearchMode
}

// AnswererOption configures an Answerer.
type AnswererOption func(*Answerer)

// WithTopK sets how many chunks retrieval returns.
func WithTopK(k int) AnswererOption {
	return func(a *Answerer) {
		if k > 0 {
			a.topK = k
		}
	}
}

// WithSearchMode selects the retrieval mode.
func WithSearchMode(mode driven.SearchMode) AnswererOption {
	return func(a *Answerer) {
		a.mode = mode
	}
}

// NewAnswerer builds an Answerer. The embedder may be nil, which forces
// text-only retrieval.
func NewAnswerer(
	llm driven.LLMService,
	embedder driven.EmbeddingService,
	index driven.SearchIndex,
	opts ...AnswererOption,
) *Answerer {
	a := &Answerer{
		llm:      llm,
		embedder: embedder,
		index:    index,
		topK:     defaultTopK,
		mode:     defaultSearchMode,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.embedder == nil {
		a.mode = driven.SearchModeText
	}
	return a
}

// Answer processes one user turn against the conversation so far. The
// history is read-only; the caller owns appending the new turns.
func (a *Answerer) Answer(ctx context.Context, input string, history []domain.Turn) (domain.Answer, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Answer{}, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	if routeQuery(input) == domain.RouteRecap {
		logger.Debug("route: recap")
		return a.recap(ctx, history)
	}
	logger.Debug("route: corpus")

	if !isLikelyPolish(input) {
		return domain.Answer{Text: UnsupportedLanguage, Route: domain.RouteRAG}, nil
	}

	standalone, err := contextualize(ctx, a.llm, input, history)
	if err != nil {
		return domain.Answer{}, err
	}
	if standalone != input {
		logger.Debug("contextualized: %s", standalone)
	}

	chunks, err := a.retrieve(ctx, standalone)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Debug("retrieved %d chunks", len(chunks))
	if len(chunks) == 0 {
		return domain.Answer{Text: Refusal, Route: domain.RouteRAG}, nil
	}

	contextText := buildContext(chunks)

	relevant, err := relevanceGate(ctx, a.llm, standalone, contextText)
	if err != nil {
		return domain.Answer{}, err
	}
	if !relevant {
		logger.Debug("relevance gate rejected the context")
		return domain.Answer{Text: Refusal, Route: domain.RouteRAG}, nil
	}

	raw, err := a.llm.Chat(ctx, []driven.ChatMessage{
		{Role: "system", Content: fmt.Sprintf(answerSystemPrompt, contextText)},
		{Role: "user", Content: standalone},
	}, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0,
	})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: answer generation: %v", domain.ErrModelCall, err)
	}

	return renderAnswer(raw, chunks), nil
}

// recap answers a question about the conversation itself. With no
// prior human turn there is nothing to recall.
func (a *Answerer) recap(ctx context.Context, history []domain.Turn) (domain.Answer, error) {
	previous := lastHumanQuestion(history)
	if previous == "" {
		return domain.Answer{Text: Refusal, Route: domain.RouteRecap}, nil
	}

	prompt := fmt.Sprintf(recapPrompt, previous)
	raw, err := a.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   300,
		Temperature: 0,
	})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("%w: recap: %v", domain.ErrModelCall, err)
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		text = fmt.Sprintf("Pytałeś wcześniej: %s", previous)
	}
	return domain.Answer{Text: text, Route: domain.RouteRecap}, nil
}

func (a *Answerer) retrieve(ctx context.Context, query string) ([]domain.ScoredChunk, error) {
	var vector []float32
	if a.mode != driven.SearchModeText {
		var err error
		vector, err = a.embedder.Embed(ctx, query)
		if err != nil {
			return nil, fmt.Errorf("%w: query embedding: %v", domain.ErrModelCall, err)
		}
	}

	chunks, err := a.index.Search(ctx, query, vector, a.topK, a.mode)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	return chunks, nil
}

// buildContext concatenates chunk bodies with their source names so the
// model can ground statements per document.
func buildContext(chunks []domain.ScoredChunk) string {
	var b strings.Builder
	for i, sc := range chunks {
		if i > 0 {
			b.WriteString("\n\n---\n\n")
		}
		name := sc.Chunk.File
		if name == "" {
			name = "unknown"
		}
		fmt.Fprintf(&b, "[%s]\n%s", name, sc.Chunk.Content)
	}
	return b.String()
}
