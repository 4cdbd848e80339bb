package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
)

// mockRunner is a test double for driven.CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestRegistry_Supported(t *testing.T) {
	r := Defaults(&mockRunner{})

	assert.True(t, r.Supported("notes.txt"))
	assert.True(t, r.Supported("README.md"))
	assert.True(t, r.Supported("handbook.PDF"))
	assert.False(t, r.Supported("photo.png"))
	assert.False(t, r.Supported("archive"))
}

func TestRegistry_UnsupportedType(t *testing.T) {
	r := Defaults(&mockRunner{})

	_, err := r.Normalise(context.Background(), "photo.png", []byte{1, 2, 3})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestRegistry_PlaintextRepaired(t *testing.T) {
	r := Defaults(&mockRunner{})

	out, err := r.Normalise(context.Background(), "a.txt", []byte("wyjazdy zagra-\nniczne wymagają zgody."))
	require.NoError(t, err)
	assert.Equal(t, "wyjazdy zagraniczne wymagają zgody.", out)
}

func TestRegistry_PDFThroughRunner(t *testing.T) {
	runner := &mockRunner{output: []byte("Delegacje krajo\nwe\nrozliczamy w terminie.")}
	r := Defaults(runner)

	out, err := r.Normalise(context.Background(), "handbook.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "Delegacje krajowe\nrozliczamy w terminie.", out)
}

func TestRegistry_PDFRunnerFailure(t *testing.T) {
	runner := &mockRunner{err: assert.AnError}
	r := Defaults(runner)

	_, err := r.Normalise(context.Background(), "handbook.pdf", []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSourceUnavailable)
}
