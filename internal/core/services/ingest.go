package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
	"github.com/praksa-labs/wiedza-cli/internal/logger"
	"github.com/praksa-labs/wiedza-cli/internal/postprocessors/chunker"
)

// IngestOutcome describes what an upsert or delete trigger did.
type IngestOutcome int

const (
	// OutcomeSkipped means the blob has no supported extension.
	OutcomeSkipped IngestOutcome = iota

	// OutcomeUnchanged means the stored etag matched; zero writes.
	OutcomeUnchanged

	// OutcomeReindexed means the chunk set was fully replaced.
	OutcomeReindexed

	// OutcomeDeleted means the document's chunks and state were purged.
	OutcomeDeleted

	// OutcomeNoop means a delete trigger found no prior state.
	OutcomeNoop
)

// String returns the outcome name for logging.
func (o IngestOutcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeReindexed:
		return "reindexed"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeNoop:
		return "noop"
	default:
		return "skipped"
	}
}

// IngestSummary aggregates the results of a full ingestion run.
type IngestSummary struct {
	Processed  int
	Unchanged  int
	Reindexed  int
	Deleted    int
	Skipped    int
	ErrorCount int
}

// Ingestor drives the per-document ingestion state machine: change
// detection by etag, full chunk-set replacement on content change, and
// stale-state cleanup on source deletion.
//
// The state record is always written last, so a crash anywhere in the
// replace sequence causes a benign re-index on retry, never a missed
// update. The replace itself is not transactional across the index and
// the state store; the caller is expected to retry the trigger
// (at-least-once delivery).
type Ingestor struct {
	blobs      driven.BlobStore
	normaliser driven.DocumentNormaliser
	processor  *chunker.Processor
	embedder   driven.EmbeddingService
	index      driven.SearchIndex
	states     driven.StateStore
	sourceTag  string
}

// NewIngestor creates an ingestor. The embedder is optional: when nil,
// chunks are indexed without vectors and retrieval degrades to
// keyword-only matching.
func NewIngestor(
	blobs driven.BlobStore,
	normaliser driven.DocumentNormaliser,
	processor *chunker.Processor,
	embedder driven.EmbeddingService,
	index driven.SearchIndex,
	states driven.StateStore,
	sourceTag string,
) *Ingestor {
	return &Ingestor{
		blobs:      blobs,
		normaliser: normaliser,
		processor:  processor,
		embedder:   embedder,
		index:      index,
		states:     states,
		sourceTag:  sourceTag,
	}
}

// Upsert runs the upsert trigger for one document.
func (g *Ingestor) Upsert(ctx context.Context, docID string) (IngestOutcome, error) {
	if !g.normaliser.Supported(docID) {
		logger.Debug("Skipping unsupported blob: %s", docID)
		return OutcomeSkipped, nil
	}

	// 1. Load prior state. Missing or corrupt state reads as "never
	// seen" and forces a full re-index.
	prev, err := g.states.Load(ctx, docID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return OutcomeSkipped, fmt.Errorf("load state %s: %w", docID, err)
	}

	// 2. Download current content and version marker.
	data, etag, err := g.blobs.Download(ctx, docID)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("download %s: %w", docID, err)
	}

	// 3. Unchanged content terminates with zero writes.
	if prev != nil && prev.ETag == etag {
		logger.Debug("Unchanged (etag match): %s", docID)
		return OutcomeUnchanged, nil
	}

	// 4. Normalise and chunk.
	content, err := g.normaliser.Normalise(ctx, docID, data)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("normalise %s: %w", docID, err)
	}
	doc := domain.Document{
		ID:      docID,
		File:    path.Base(docID),
		Source:  g.sourceTag,
		Content: content,
		ETag:    etag,
	}
	chunks := g.processor.Process([]domain.Document{doc})

	// 5. Embed.
	if g.embedder != nil && len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Content
		}
		vectors, err := g.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return OutcomeSkipped, fmt.Errorf("%w: embed %s: %v", domain.ErrModelCall, docID, err)
		}
		for i := range chunks {
			chunks[i].Embedding = vectors[i]
		}
	}

	// 6. Full replace: drop every existing chunk for this document
	// before writing, so shifted chunk boundaries cannot leave orphans.
	removed, err := g.index.DeleteByDoc(ctx, docID)
	if err != nil {
		return OutcomeSkipped, fmt.Errorf("%w: clear %s: %v", domain.ErrIndexWrite, docID, err)
	}
	if err := g.index.Upsert(ctx, chunks); err != nil {
		return OutcomeSkipped, fmt.Errorf("%w: upsert %s: %v", domain.ErrIndexWrite, docID, err)
	}

	// 7. Persist state last.
	if err := g.states.Save(ctx, domain.DocState{
		DocID:      docID,
		ETag:       etag,
		ChunkCount: len(chunks),
	}); err != nil {
		return OutcomeSkipped, fmt.Errorf("save state %s: %w", docID, err)
	}

	logger.Info("Reindexed %s: %d chunks written, %d removed", docID, len(chunks), removed)
	return OutcomeReindexed, nil
}

// Delete runs the delete trigger for one document.
func (g *Ingestor) Delete(ctx context.Context, docID string) (IngestOutcome, error) {
	_, err := g.states.Load(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return OutcomeNoop, nil
	}
	if err != nil {
		return OutcomeNoop, fmt.Errorf("load state %s: %w", docID, err)
	}

	removed, err := g.index.DeleteByDoc(ctx, docID)
	if err != nil {
		return OutcomeNoop, fmt.Errorf("%w: purge %s: %v", domain.ErrIndexWrite, docID, err)
	}
	if err := g.states.Delete(ctx, docID); err != nil {
		return OutcomeNoop, fmt.Errorf("delete state %s: %w", docID, err)
	}

	logger.Info("Deleted %s: %d chunks removed", docID, removed)
	return OutcomeDeleted, nil
}

// HandleEvent dispatches a blob change event to the matching trigger.
func (g *Ingestor) HandleEvent(ctx context.Context, ev driven.BlobEvent) (IngestOutcome, error) {
	if ev.Type == driven.BlobDeleted {
		return g.Delete(ctx, ev.Name)
	}
	return g.Upsert(ctx, ev.Name)
}

// IngestAll upserts every supported blob in the container and sweeps
// state records whose source blob has disappeared.
func (g *Ingestor) IngestAll(ctx context.Context) (IngestSummary, error) {
	logger.Section("Ingestion")

	blobs, err := g.blobs.List(ctx, "")
	if err != nil {
		return IngestSummary{}, fmt.Errorf("%w: list container: %v", domain.ErrSourceUnavailable, err)
	}

	var summary IngestSummary
	var errs []error
	seen := make(map[string]bool, len(blobs))

	for _, blob := range blobs {
		// Names starting with "_" are internal bookkeeping, not corpus
		// documents.
		if strings.HasPrefix(blob.Name, "_") {
			continue
		}
		seen[blob.Name] = true
		outcome, err := g.Upsert(ctx, blob.Name)
		if err != nil {
			summary.ErrorCount++
			errs = append(errs, fmt.Errorf("upsert %s: %w", blob.Name, err))
			continue
		}
		summary.Processed++
		switch outcome {
		case OutcomeUnchanged:
			summary.Unchanged++
		case OutcomeReindexed:
			summary.Reindexed++
		case OutcomeSkipped:
			summary.Skipped++
		}
	}

	// Orphan sweep: documents that vanished while nothing was watching.
	states, err := g.states.List(ctx)
	if err != nil {
		errs = append(errs, fmt.Errorf("list states: %w", err))
	} else {
		for _, st := range states {
			if seen[st.DocID] {
				continue
			}
			if _, err := g.Delete(ctx, st.DocID); err != nil {
				summary.ErrorCount++
				errs = append(errs, fmt.Errorf("sweep %s: %w", st.DocID, err))
				continue
			}
			summary.Deleted++
		}
	}

	logger.Info("Ingestion complete: %d processed, %d reindexed, %d unchanged, %d deleted, %d errors",
		summary.Processed, summary.Reindexed, summary.Unchanged, summary.Deleted, summary.ErrorCount)
	return summary, errors.Join(errs...)
}
