package driven

import (
	"context"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

// SearchMode selects how a query is matched against the index.
type SearchMode string

const (
	// SearchModeText matches on keywords only (BM25).
	SearchModeText SearchMode = "text"

	// SearchModeVector matches on embedding similarity only.
	SearchModeVector SearchMode = "vector"

	// SearchModeHybrid fuses keyword and vector rankings.
	SearchModeHybrid SearchMode = "hybrid"
)

// SearchIndex stores chunks and serves retrieval for the answering
// pipeline. Upserts are idempotent by chunk ID; deletes can filter on the
// owning document, which the ingestion state machine relies on for the
// full-replace step.
type SearchIndex interface {
	// Upsert writes chunks, replacing any rows with the same IDs.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// DeleteByDoc removes every chunk whose DocID matches.
	// Returns the number of chunks removed.
	DeleteByDoc(ctx context.Context, docID string) (int, error)

	// Search returns up to k chunks ranked best-first. The query vector
	// may be nil for text-only mode.
	Search(ctx context.Context, query string, vector []float32, k int, mode SearchMode) ([]domain.ScoredChunk, error)

	// Close releases resources.
	Close() error
}
