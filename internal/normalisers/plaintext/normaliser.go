// Package plaintext extracts text from plain-text blobs.
package plaintext

import (
	"bytes"
	"context"
)

// utf8BOM is stripped when a file starts with it; editors on Windows
// still emit it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Extractor handles plain-text documents.
type Extractor struct{}

// New creates a plain-text extractor.
func New() *Extractor {
	return &Extractor{}
}

// Extensions returns the handled file extensions.
func (e *Extractor) Extensions() []string {
	return []string{".txt", ".md"}
}

// Extract decodes the blob bytes as UTF-8 text.
func (e *Extractor) Extract(_ context.Context, _ string, data []byte) (string, error) {
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}
