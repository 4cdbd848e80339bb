package driven

import "context"

// BlobInfo describes one entry in the container listing.
type BlobInfo struct {
	// Name is the blob name relative to the container root. It doubles
	// as the document ID throughout the ingestion pipeline.
	Name string

	// Size is the blob size in bytes.
	Size int64
}

// BlobEventType distinguishes watch events.
type BlobEventType int

const (
	// BlobUpserted indicates a blob was created or overwritten.
	BlobUpserted BlobEventType = iota

	// BlobDeleted indicates a blob was removed.
	BlobDeleted
)

// BlobEvent is a change notification from a watched container.
type BlobEvent struct {
	Type BlobEventType
	Name string
}

// BlobStore is the container the corpus lives in. The same store also
// persists the small per-document ingestion state records under a
// dedicated prefix, which is why Upload exists on the read-mostly source
// side.
type BlobStore interface {
	// List returns all blobs under the given prefix. An empty prefix
	// lists the whole container.
	List(ctx context.Context, prefix string) ([]BlobInfo, error)

	// Download returns the blob content and its etag. The etag is an
	// opaque version marker: equal etags guarantee equal content.
	Download(ctx context.Context, name string) (data []byte, etag string, err error)

	// Upload writes a blob, overwriting any existing content.
	Upload(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// Watch emits change events until ctx is cancelled. Events are
	// delivered at-least-once; consumers must tolerate duplicates.
	Watch(ctx context.Context, prefix string) (<-chan BlobEvent, error)
}
