// Package exec runs external commands for normalisers that shell out,
// such as the pdftotext-based PDF extractor.
package exec

import (
	"bytes"
	"context"
	"fmt"
	osexec "os/exec"

	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// Ensure Runner implements the interface.
var _ driven.CommandRunner = (*Runner)(nil)

// Runner executes commands on the host.
type Runner struct{}

// NewRunner creates a command runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes a command and returns its stdout. A non-zero exit wraps
// the captured stderr so the caller's error carries the tool's own
// diagnostic.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := osexec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%s: %w: %s", name, err, stderr.String())
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}
