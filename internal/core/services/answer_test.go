package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// mockLLM replies from a prompt-substring lookup table so a test can
// script each pipeline stage independently.
type mockLLM struct {
	replies map[string]string // prompt substring -> reply
	prompts []string
	chats   int
	err     error
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	for sub, reply := range m.replies {
		if strings.Contains(prompt, sub) {
			return reply, nil
		}
	}
	return "", nil
}

// Chat folds the messages into one prompt so the same substring lookup
// scripts both entry points.
func (m *mockLLM) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.GenerateOptions) (string, error) {
	m.chats++
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	return m.Generate(ctx, b.String(), opts)
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Close() error      { return nil }

func (m *mockLLM) promptCount(substr string) int {
	var n int
	for _, p := range m.prompts {
		if strings.Contains(p, substr) {
			n++
		}
	}
	return n
}

func scoredChunk(file, content string) domain.ScoredChunk {
	return domain.ScoredChunk{
		Chunk: domain.Chunk{File: file, Content: content},
		Score: 1,
	}
}

func TestRouteQuery(t *testing.T) {
	cases := []struct {
		input string
		want  domain.Route
	}{
		{"Ile dni urlopu mi przysługuje?", domain.RouteRAG},
		{"O co pytałem wcześniej?", domain.RouteRecap},
		{"Podsumuj naszą rozmowę", domain.RouteRecap},
		{"What did I ask before?", domain.RouteRecap},
		{"", domain.RouteRAG},
		{"Jaka jest historia firmy?", domain.RouteRAG},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, routeQuery(tc.input), "input: %q", tc.input)
	}
}

func TestIsLikelyPolish(t *testing.T) {
	assert.True(t, isLikelyPolish("Ile dni urlopu mi przysługuje?"))
	assert.True(t, isLikelyPolish("hej"))
	assert.True(t, isLikelyPolish("Dzień dobry"))
	assert.True(t, isLikelyPolish("budżet"))
	assert.False(t, isLikelyPolish("What is the vacation policy at this company?"))
	assert.False(t, isLikelyPolish("How do I submit an expense report?"))
	// No evidence either way passes.
	assert.True(t, isLikelyPolish("ZUS RCA 2024"))
}

func TestLexicalOverlap(t *testing.T) {
	ctx := "Urlop wypoczynkowy wynosi 26 dni w roku kalendarzowym."
	assert.True(t, lexicalOverlap("Ile dni urlop wypoczynkowy?", ctx))
	assert.False(t, lexicalOverlap("Przepisy ruchu drogowego", ctx))
	// Only stop-words and short tokens: nothing to check, trivial pass.
	assert.True(t, lexicalOverlap("Czy to jest w ok?", ctx))
}

func TestParseJudgeVerdict(t *testing.T) {
	assert.True(t, parseJudgeVerdict("TAK"))
	assert.True(t, parseJudgeVerdict("tak, kontekst zawiera odpowiedź"))
	assert.True(t, parseJudgeVerdict("Yes"))
	assert.False(t, parseJudgeVerdict("NIE"))
	assert.False(t, parseJudgeVerdict(""))
}

func TestContextualizeEmptyHistorySkipsModel(t *testing.T) {
	llm := &mockLLM{}
	out, err := contextualize(context.Background(), llm, "Ile dni urlopu?", nil)
	require.NoError(t, err)
	assert.Equal(t, "Ile dni urlopu?", out)
	assert.Empty(t, llm.prompts)
}

func TestContextualizeRewritesFollowUp(t *testing.T) {
	llm := &mockLLM{replies: map[string]string{
		"Historia rozmowy": "Ile dni urlopu przysługuje po 10 latach pracy?",
	}}
	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "Ile dni urlopu mi przysługuje?"},
		{Role: domain.RoleAssistant, Content: "26 dni."},
	}
	out, err := contextualize(context.Background(), llm, "A po 10 latach pracy?", history)
	require.NoError(t, err)
	assert.Equal(t, "Ile dni urlopu przysługuje po 10 latach pracy?", out)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Użytkownik: Ile dni urlopu mi przysługuje?")
	assert.Contains(t, llm.prompts[0], "Asystent: 26 dni.")
}

func TestRenderAnswerStripsPreamble(t *testing.T) {
	ans := renderAnswer("Na podstawie dostarczonego kontekstu, urlop wynosi 26 dni.", nil)
	assert.Equal(t, "urlop wynosi 26 dni.", ans.Text)
	assert.True(t, ans.Grounded)
}

func TestRenderAnswerNormalisesDenials(t *testing.T) {
	denials := []string{
		"Niestety nie ma jej w dokumentach.",
		"W kontekście nie ma tej informacji.",
		"Brak informacji na ten temat.",
		"",
	}
	for _, raw := range denials {
		ans := renderAnswer(raw, []domain.ScoredChunk{scoredChunk("a.txt", "x")})
		assert.Equal(t, Refusal, ans.Text, "raw: %q", raw)
		assert.Empty(t, ans.Sources, "raw: %q", raw)
		assert.False(t, ans.Grounded, "raw: %q", raw)
	}
}

func TestRenderAnswerAppendsDedupedSources(t *testing.T) {
	chunks := []domain.ScoredChunk{
		scoredChunk("polityka.pdf", "a"),
		scoredChunk("regulamin.txt", "b"),
		scoredChunk("polityka.pdf", "c"),
		scoredChunk("", "d"),
	}
	ans := renderAnswer("Urlop wynosi 26 dni.", chunks)
	assert.Equal(t, "Urlop wynosi 26 dni.\n\nŹródła:\n- polityka.pdf\n- regulamin.txt\n- unknown", ans.Text)
	assert.Equal(t, []string{"polityka.pdf", "regulamin.txt", "unknown"}, ans.Sources)
}

func TestAnswerRejectsEmptyInput(t *testing.T) {
	a := NewAnswerer(&mockLLM{}, nil, newMockIndex())
	_, err := a.Answer(context.Background(), "   ", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnswerUnsupportedLanguage(t *testing.T) {
	llm := &mockLLM{}
	a := NewAnswerer(llm, nil, newMockIndex())
	ans, err := a.Answer(context.Background(), "What is the vacation policy at this company?", nil)
	require.NoError(t, err)
	assert.Equal(t, UnsupportedLanguage, ans.Text)
	assert.Empty(t, llm.prompts)
}

func TestAnswerEmptyRetrievalRefusesWithoutGeneration(t *testing.T) {
	llm := &mockLLM{}
	a := NewAnswerer(llm, nil, newMockIndex())
	ans, err := a.Answer(context.Background(), "Ile dni urlopu mi przysługuje?", nil)
	require.NoError(t, err)
	assert.Equal(t, Refusal, ans.Text)
	assert.False(t, ans.Grounded)
	assert.Empty(t, llm.prompts)
}

func TestAnswerFullPipeline(t *testing.T) {
	index := newMockIndex()
	index.results = []domain.ScoredChunk{
		scoredChunk("polityka.txt", "Urlop wypoczynkowy wynosi 26 dni w roku."),
	}
	llm := &mockLLM{replies: map[string]string{
		"jednym słowem":        "TAK",
		"Odpowiadaj wyłącznie": "Urlop wynosi 26 dni w roku.",
	}}
	a := NewAnswerer(llm, &mockEmbedder{}, index)

	ans, err := a.Answer(context.Background(), "Ile dni urlopu mi przysługuje?", nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteRAG, ans.Route)
	assert.True(t, ans.Grounded)
	assert.Contains(t, ans.Text, "Urlop wynosi 26 dni w roku.")
	assert.Contains(t, ans.Text, "Źródła:\n- polityka.txt")

	// Overlap and judge both passed, generation went through the chat
	// call, and no contextualisation happened without history.
	assert.Equal(t, 1, llm.promptCount("jednym słowem"))
	assert.Equal(t, 1, llm.chats)
	assert.Zero(t, llm.promptCount("Historia rozmowy"))
}

func TestAnswerJudgeRejectionRefusesBeforeGeneration(t *testing.T) {
	index := newMockIndex()
	index.results = []domain.ScoredChunk{
		scoredChunk("polityka.txt", "Urlop wypoczynkowy wynosi 26 dni w roku."),
	}
	llm := &mockLLM{replies: map[string]string{
		"jednym słowem": "NIE",
	}}
	a := NewAnswerer(llm, &mockEmbedder{}, index)

	// Overlap passes, so the judge is consulted; its NIE is final even
	// though the context shares vocabulary with the question.
	ans, err := a.Answer(context.Background(), "Ile dni urlop wypoczynkowy?", nil)
	require.NoError(t, err)
	assert.Equal(t, Refusal, ans.Text)
	assert.Equal(t, 1, llm.promptCount("jednym słowem"))
	assert.Zero(t, llm.chats)
}

func TestAnswerOffTopicRefusesWithoutJudge(t *testing.T) {
	index := newMockIndex()
	index.results = []domain.ScoredChunk{
		scoredChunk("polityka.txt", "Urlop wypoczynkowy wynosi 26 dni w roku."),
	}
	// A TAK verdict is scripted, but an overlap failure must refuse
	// before the judge ever runs.
	llm := &mockLLM{replies: map[string]string{
		"jednym słowem": "TAK",
	}}
	a := NewAnswerer(llm, &mockEmbedder{}, index)

	ans, err := a.Answer(context.Background(), "Jakie goboliny żyją w magazynie?", nil)
	require.NoError(t, err)
	assert.Equal(t, Refusal, ans.Text)
	assert.False(t, ans.Grounded)
	assert.Zero(t, llm.promptCount("jednym słowem"))
	assert.Zero(t, llm.chats)
}

func TestAnswerRecap(t *testing.T) {
	llm := &mockLLM{replies: map[string]string{
		"Sparafrazuj": "Pytałeś o liczbę dni urlopu.",
	}}
	a := NewAnswerer(llm, nil, newMockIndex())
	history := []domain.Turn{
		{Role: domain.RoleHuman, Content: "Ile dni urlopu mi przysługuje?"},
		{Role: domain.RoleAssistant, Content: "26 dni."},
	}

	ans, err := a.Answer(context.Background(), "O co pytałem wcześniej?", history)
	require.NoError(t, err)
	assert.Equal(t, domain.RouteRecap, ans.Route)
	assert.Equal(t, "Pytałeś o liczbę dni urlopu.", ans.Text)
	require.Len(t, llm.prompts, 1)
	assert.Contains(t, llm.prompts[0], "Ile dni urlopu mi przysługuje?")
}

func TestAnswerRecapWithoutHistoryRefuses(t *testing.T) {
	llm := &mockLLM{}
	a := NewAnswerer(llm, nil, newMockIndex())
	ans, err := a.Answer(context.Background(), "O co pytałem wcześniej?", nil)
	require.NoError(t, err)
	assert.Equal(t, Refusal, ans.Text)
	assert.Equal(t, domain.RouteRecap, ans.Route)
	assert.Empty(t, llm.prompts)
}

func TestAnswerTextModeSkipsEmbedding(t *testing.T) {
	index := newMockIndex()
	index.results = []domain.ScoredChunk{
		scoredChunk("polityka.txt", "Urlop wypoczynkowy wynosi 26 dni."),
	}
	llm := &mockLLM{replies: map[string]string{
		"jednym słowem":        "TAK",
		"Odpowiadaj wyłącznie": "26 dni.",
	}}
	embedder := &mockEmbedder{}
	a := NewAnswerer(llm, embedder, index, WithSearchMode(driven.SearchModeText))

	_, err := a.Answer(context.Background(), "Ile dni urlopu?", nil)
	require.NoError(t, err)
	assert.Zero(t, embedder.calls)
}
