// Package normalisers routes raw blobs to a type-specific text extractor
// and runs every extraction through the shared repair pass. The registry
// is the single entry point the ingestion pipeline uses.
package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
	"github.com/praksa-labs/wiedza-cli/internal/normalisers/pdf"
	"github.com/praksa-labs/wiedza-cli/internal/normalisers/plaintext"
	"github.com/praksa-labs/wiedza-cli/internal/textrepair"
)

// Ensure Registry implements the port.
var _ driven.DocumentNormaliser = (*Registry)(nil)

// Extractor converts one blob's bytes into raw text.
type Extractor interface {
	// Extensions lists the lowercase file extensions handled,
	// including the leading dot.
	Extensions() []string

	// Extract returns the raw text of the blob.
	Extract(ctx context.Context, name string, data []byte) (string, error)
}

// Registry selects an extractor by file extension.
type Registry struct {
	byExt map[string]Extractor
}

// NewRegistry builds a registry from the given extractors.
// A later extractor claiming an already-registered extension wins.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byExt: make(map[string]Extractor)}
	for _, e := range extractors {
		for _, ext := range e.Extensions() {
			r.byExt[ext] = e
		}
	}
	return r
}

// Defaults returns the standard registry: plain text (.txt, .md) and PDF
// via the given command runner.
func Defaults(runner driven.CommandRunner) *Registry {
	return NewRegistry(plaintext.New(), pdf.New(runner))
}

// Supported reports whether the blob name has a handled extension.
func (r *Registry) Supported(name string) bool {
	_, ok := r.byExt[extOf(name)]
	return ok
}

// Normalise extracts the blob's text and repairs extraction artifacts.
func (r *Registry) Normalise(ctx context.Context, name string, data []byte) (string, error) {
	extractor, ok := r.byExt[extOf(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedType, name)
	}

	text, err := extractor.Extract(ctx, name, data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", name, err)
	}
	return textrepair.Normalize(text), nil
}

func extOf(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
