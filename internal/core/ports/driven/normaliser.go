package driven

import "context"

// DocumentNormaliser turns raw blob bytes into repaired plain text ready
// for chunking. Routing by file type and the extraction repair pass are
// implementation concerns of the adapter.
type DocumentNormaliser interface {
	// Supported reports whether the blob name has a handled extension.
	Supported(name string) bool

	// Normalise extracts and repairs the text of one blob.
	// Returns domain.ErrUnsupportedType for unhandled extensions.
	Normalise(ctx context.Context, name string, data []byte) (string, error)
}
