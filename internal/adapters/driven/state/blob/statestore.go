// Package blob provides a StateStore persisted as JSON blobs alongside
// the corpus. Records live under a dedicated prefix with hashed file
// names, so document IDs containing path separators or unicode never
// produce invalid blob names.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
)

// StatePrefix is where ingestion state records live in the container.
const StatePrefix = "_rag_state/"

// Ensure StateStore implements the interface.
var _ driven.StateStore = (*StateStore)(nil)

// StateStore persists DocState records through a BlobStore.
type StateStore struct {
	blobs driven.BlobStore
}

// NewStateStore creates a state store on top of the given blob store.
func NewStateStore(blobs driven.BlobStore) *StateStore {
	return &StateStore{blobs: blobs}
}

// Load returns the state for a document. A corrupt record reads as
// absent: the ingestion trigger then re-indexes, which is always safe.
func (s *StateStore) Load(ctx context.Context, docID string) (*domain.DocState, error) {
	data, _, err := s.blobs.Download(ctx, stateName(docID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("download state for %s: %w", docID, err)
	}

	var state domain.DocState
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Corrupt state record for %s, treating as absent: %v", docID, err)
		return nil, domain.ErrNotFound
	}
	return &state, nil
}

// Save overwrites the state for a document, stamping the update time.
func (s *StateStore) Save(ctx context.Context, state domain.DocState) error {
	if state.DocID == "" {
		return fmt.Errorf("%w: state without doc id", domain.ErrInvalidInput)
	}
	state.UpdatedAt = time.Now().UTC()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state for %s: %w", state.DocID, err)
	}
	if err := s.blobs.Upload(ctx, stateName(state.DocID), data); err != nil {
		return fmt.Errorf("upload state for %s: %w", state.DocID, err)
	}
	return nil
}

// Delete removes the state for a document.
func (s *StateStore) Delete(ctx context.Context, docID string) error {
	if err := s.blobs.Delete(ctx, stateName(docID)); err != nil {
		return fmt.Errorf("delete state for %s: %w", docID, err)
	}
	return nil
}

// List returns all persisted states, skipping unreadable records.
func (s *StateStore) List(ctx context.Context) ([]domain.DocState, error) {
	infos, err := s.blobs.List(ctx, StatePrefix)
	if err != nil {
		return nil, fmt.Errorf("list state records: %w", err)
	}

	var states []domain.DocState
	for _, info := range infos {
		if !strings.HasSuffix(info.Name, ".json") {
			continue
		}
		data, _, err := s.blobs.Download(ctx, info.Name)
		if err != nil {
			logger.Warn("Unreadable state record %s: %v", info.Name, err)
			continue
		}
		var state domain.DocState
		if err := json.Unmarshal(data, &state); err != nil {
			logger.Warn("Corrupt state record %s: %v", info.Name, err)
			continue
		}
		if state.DocID == "" {
			continue
		}
		states = append(states, state)
	}
	return states, nil
}

// stateName maps a document ID to its record blob name.
func stateName(docID string) string {
	sum := sha256.Sum256([]byte(docID))
	return StatePrefix + hex.EncodeToString(sum[:]) + ".json"
}
