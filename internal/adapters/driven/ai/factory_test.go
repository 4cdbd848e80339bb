package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

func TestCreateLLMServiceOpenAI(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "gpt-4o-mini", svc.ModelName())
}

func TestCreateLLMServiceAnthropic(t *testing.T) {
	svc, err := CreateLLMService(&domain.LLMSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "test-key",
		Model:    "claude-3-5-haiku-latest",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, "claude-3-5-haiku-latest", svc.ModelName())
}

func TestCreateLLMServiceUnconfigured(t *testing.T) {
	_, err := CreateLLMService(&domain.LLMSettings{})
	assert.ErrorIs(t, err, domain.ErrMissingConfig)
}

func TestCreateLLMServiceUnknownProvider(t *testing.T) {
	_, err := CreateLLMService(&domain.LLMSettings{
		Provider: "ollama",
		APIKey:   "x",
	})
	assert.Error(t, err)
}

func TestCreateEmbeddingServiceUnconfiguredReturnsNil(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateEmbeddingServiceOpenAI(t *testing.T) {
	svc, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "test-key",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	assert.Equal(t, 1536, svc.Dimensions())
}

func TestCreateEmbeddingServiceAnthropicRejected(t *testing.T) {
	_, err := CreateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "test-key",
	})
	assert.Error(t, err)
}
