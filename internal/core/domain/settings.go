package domain

// AIProvider identifies a model backend.
type AIProvider string

const (
	AIProviderOpenAI    AIProvider = "openai"
	AIProviderAnthropic AIProvider = "anthropic"
)

// LLMSettings configures the chat-completion backend.
type LLMSettings struct {
	Provider AIProvider `toml:"provider"`
	APIKey   string     `toml:"api_key"`
	BaseURL  string     `toml:"base_url"`
	Model    string     `toml:"model"`
}

// IsConfigured reports whether the settings identify a usable backend.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// EmbeddingSettings configures the embedding backend. An unconfigured
// block degrades retrieval to keyword-only matching.
type EmbeddingSettings struct {
	Provider   AIProvider `toml:"provider"`
	APIKey     string     `toml:"api_key"`
	BaseURL    string     `toml:"base_url"`
	Model      string     `toml:"model"`
	Dimensions int        `toml:"dimensions"`
}

// IsConfigured reports whether the settings identify a usable backend.
func (s *EmbeddingSettings) IsConfigured() bool {
	return s != nil && s.Provider != "" && s.APIKey != ""
}

// CorpusSettings locates the document corpus.
type CorpusSettings struct {
	// Path is the directory holding the source documents.
	Path string `toml:"path"`

	// SourceTag labels indexed chunks with their origin collection.
	SourceTag string `toml:"source_tag"`
}

// RetrievalSettings tunes the answering pipeline.
type RetrievalSettings struct {
	// TopK is how many chunks retrieval returns (default 6).
	TopK int `toml:"top_k"`

	// Mode is "text", "vector" or "hybrid" (default "hybrid").
	Mode string `toml:"mode"`
}

// Settings is the full application configuration.
type Settings struct {
	Corpus    CorpusSettings    `toml:"corpus"`
	Retrieval RetrievalSettings `toml:"retrieval"`
	LLM       LLMSettings       `toml:"llm"`
	Embedding EmbeddingSettings `toml:"embedding"`

	// DataDir holds the search index database. Defaults to ~/.wiedza/data.
	DataDir string `toml:"data_dir"`
}
