package driven

import "context"

// CommandRunner executes an external command and returns its stdout.
// Used by the PDF normaliser to drive pdftotext without binding a PDF
// library into the binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
