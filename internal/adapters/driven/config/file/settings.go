// Package file loads the application configuration from a TOML file
// with environment variable overrides. Secrets belong in the
// environment (or a .env file), not in config.toml.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

// Environment variables recognised as overrides.
const (
	EnvCorpusPath      = "WIEDZA_CORPUS_PATH"
	EnvDataDir         = "WIEDZA_DATA_DIR"
	EnvTopK            = "WIEDZA_TOP_K"
	EnvSearchMode      = "WIEDZA_SEARCH_MODE"
	EnvLLMProvider     = "WIEDZA_LLM_PROVIDER"
	EnvLLMModel        = "WIEDZA_LLM_MODEL"
	EnvEmbedProvider   = "WIEDZA_EMBEDDING_PROVIDER"
	EnvEmbedModel      = "WIEDZA_EMBEDDING_MODEL"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
)

// DefaultPath returns the default config file location,
// ~/.wiedza/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".wiedza", "config.toml"), nil
}

// Load reads settings from the given path and applies environment
// overrides. A missing file is not an error: every field can come from
// the environment.
func Load(path string) (*domain.Settings, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	settings := &domain.Settings{}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only configuration.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnvOverrides(settings)
	applyDefaults(settings)
	return settings, nil
}

// Save writes settings to the given path, creating the directory if
// needed. API keys are never written.
func Save(path string, settings *domain.Settings) error {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return err
		}
	}

	redacted := *settings
	redacted.LLM.APIKey = ""
	redacted.Embedding.APIKey = ""

	data, err := toml.Marshal(&redacted)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate checks that settings can drive the pipeline, so a
// misconfiguration fails at startup instead of mid-request. needLLM is
// false for ingestion-only use, which needs no chat backend.
func Validate(settings *domain.Settings, needLLM bool) error {
	if settings.Corpus.Path == "" {
		return fmt.Errorf("%w: corpus path (set corpus.path or %s)", domain.ErrMissingConfig, EnvCorpusPath)
	}
	if needLLM && !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: llm provider and api key (set llm.provider and the provider's api key env)", domain.ErrMissingConfig)
	}
	switch settings.Retrieval.Mode {
	case "text", "vector", "hybrid":
	default:
		return fmt.Errorf("%w: retrieval mode %q (want text, vector or hybrid)", domain.ErrInvalidInput, settings.Retrieval.Mode)
	}
	if settings.Retrieval.Mode != "text" && !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider for %s retrieval (set embedding.provider or use text mode)",
			domain.ErrMissingConfig, settings.Retrieval.Mode)
	}
	return nil
}

func applyEnvOverrides(s *domain.Settings) {
	setIfEnv(&s.Corpus.Path, EnvCorpusPath)
	setIfEnv(&s.DataDir, EnvDataDir)
	setIfEnv(&s.Retrieval.Mode, EnvSearchMode)
	setIfEnv(&s.LLM.Model, EnvLLMModel)
	setIfEnv(&s.Embedding.Model, EnvEmbedModel)

	if v := os.Getenv(EnvLLMProvider); v != "" {
		s.LLM.Provider = domain.AIProvider(v)
	}
	if v := os.Getenv(EnvEmbedProvider); v != "" {
		s.Embedding.Provider = domain.AIProvider(v)
	}
	if v := os.Getenv(EnvTopK); v != "" {
		if k, err := strconv.Atoi(v); err == nil && k > 0 {
			s.Retrieval.TopK = k
		}
	}

	// Keys come from the provider's conventional variable.
	if s.LLM.APIKey == "" {
		switch s.LLM.Provider {
		case domain.AIProviderAnthropic:
			s.LLM.APIKey = os.Getenv(EnvAnthropicAPIKey)
		case domain.AIProviderOpenAI:
			s.LLM.APIKey = os.Getenv(EnvOpenAIAPIKey)
		}
	}
	if s.Embedding.APIKey == "" && s.Embedding.Provider == domain.AIProviderOpenAI {
		s.Embedding.APIKey = os.Getenv(EnvOpenAIAPIKey)
	}
}

func applyDefaults(s *domain.Settings) {
	if s.Retrieval.TopK == 0 {
		s.Retrieval.TopK = 6
	}
	if s.Retrieval.Mode == "" {
		if s.Embedding.IsConfigured() {
			s.Retrieval.Mode = "hybrid"
		} else {
			s.Retrieval.Mode = "text"
		}
	}
	if s.Corpus.SourceTag == "" {
		s.Corpus.SourceTag = "corpus"
	}
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
