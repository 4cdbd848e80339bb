package domain

// Document is a single ingestion unit fetched from the blob container.
// It is the canonical representation after text normalisation.
type Document struct {
	// ID is the source-stable identifier: the blob name within the
	// container (e.g. "policies/onboarding.pdf").
	ID string

	// File is the human-readable display name, the base name of the blob.
	File string

	// Source tags the connector that produced the document.
	Source string

	// Content is the full text after extraction repair.
	Content string

	// ETag is the opaque version marker supplied by the blob store.
	// Two downloads with equal etags carry identical content.
	ETag string
}

// Chunk is a bounded span of normalised document text, the unit of
// retrieval. Chunks are produced exclusively by the ingestion pipeline
// and are read-only to the answering pipeline.
type Chunk struct {
	// ID is the content-addressed identifier derived from
	// (File, ContentHash, Position). Identical inputs always yield the
	// same ID, so re-ingestion upserts instead of duplicating.
	ID string

	// DocID links back to the parent Document.
	DocID string

	// Content is the chunk text.
	Content string

	// Position is the 0-based ordinal within the processed batch,
	// dense and contiguous per document.
	Position int

	// TotalChunks is the number of chunks produced alongside this one.
	TotalChunks int

	// ContentHash is the sha256 hex digest of Content.
	ContentHash string

	// File is the display name inherited from the parent document.
	File string

	// Source is the connector tag inherited from the parent document.
	Source string

	// Embedding is the vector representation used for semantic search.
	Embedding []float32
}

// ScoredChunk is a retrieval result: a chunk plus its ranking score.
type ScoredChunk struct {
	Chunk Chunk

	// Score is mode-dependent (BM25, cosine similarity, or fused rank).
	// Higher is better within a single result set.
	Score float64
}
