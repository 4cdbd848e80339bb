package driven

import "context"

// LLMService provides chat-completion operations for the answering
// pipeline: query contextualisation, the relevance judge, grounded
// generation and recap paraphrasing.
//
// Implementations may include:
//   - Anthropic (Claude)
//   - OpenAI (GPT-4 family)
type LLMService interface {
	// Generate produces a completion from a single prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// Chat conducts a multi-turn conversation.
	Chat(ctx context.Context, messages []ChatMessage, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64
}

// ChatMessage is a single message in a model conversation.
type ChatMessage struct {
	// Role is one of "system", "user", or "assistant".
	Role string

	// Content is the message text.
	Content string
}
