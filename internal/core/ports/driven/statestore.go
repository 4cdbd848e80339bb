package driven

import (
	"context"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

// StateStore persists one DocState record per document.
//
// A corrupt or unreadable record must be reported as domain.ErrNotFound:
// the ingestion state machine then treats the document as never seen and
// forces a full re-index, which is always safe.
type StateStore interface {
	// Load returns the state for a document, or domain.ErrNotFound.
	Load(ctx context.Context, docID string) (*domain.DocState, error)

	// Save overwrites the state for a document.
	Save(ctx context.Context, state domain.DocState) error

	// Delete removes the state for a document. Deleting absent state is
	// not an error.
	Delete(ctx context.Context, docID string) error

	// List returns all persisted states.
	List(ctx context.Context) ([]domain.DocState, error)
}
