// Package pdf extracts text from PDF blobs by shelling out to pdftotext.
// Driving the external tool through the CommandRunner port keeps PDF
// parsing out of the binary and lets tests substitute canned output.
package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// Extractor handles PDF documents.
type Extractor struct {
	runner driven.CommandRunner
}

// New creates a PDF extractor using the given command runner.
func New(runner driven.CommandRunner) *Extractor {
	return &Extractor{runner: runner}
}

// Extensions returns the handled file extensions.
func (e *Extractor) Extensions() []string {
	return []string{".pdf"}
}

// Extract writes the blob to a temporary file and runs pdftotext over
// it, returning the extracted text. Extraction failures surface as
// source errors so the ingestion trigger can be retried.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (string, error) {
	if e.runner == nil {
		return "", fmt.Errorf("%w: no command runner for %s", domain.ErrInvalidInput, name)
	}

	dir, err := os.MkdirTemp("", "wiedza-pdf-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "input.pdf")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	// "-" sends the extracted text to stdout.
	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("%w: pdftotext %s: %v", domain.ErrSourceUnavailable, name, err)
	}
	return string(out), nil
}
