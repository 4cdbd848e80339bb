// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"fmt"

	openaiembed "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/llm/anthropic"
	openaillm "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/llm/openai"
	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// CreateEmbeddingService creates the appropriate embedding service based
// on settings. Returns nil if the provider is not configured, which
// callers treat as keyword-only mode.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Dimensions: settings.Dimensions,
		})

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not support embeddings, use openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service based on settings.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: llm provider and api key are required", domain.ErrMissingConfig)
	}

	switch settings.Provider {
	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
