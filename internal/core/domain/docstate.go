package domain

import "time"

// DocState is the per-document ingestion record, the only durable state
// the ingestion pipeline keeps outside the search index. It is created on
// first successful index, overwritten on every re-index, and removed when
// the source document disappears.
type DocState struct {
	// DocID is the source-stable document identifier.
	DocID string `json:"doc_id"`

	// ETag is the version marker of the content last indexed.
	ETag string `json:"etag"`

	// ChunkCount is the number of chunks written for that content.
	ChunkCount int `json:"chunk_count"`

	// UpdatedAt records when the state was last persisted.
	UpdatedAt time.Time `json:"updated_at"`
}
