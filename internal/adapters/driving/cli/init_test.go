package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configfile "github.com/praksa-labs/wiedza-cli/internal/adapters/driven/config/file"
)

func TestInitWritesRedactedConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	corpus := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(corpus, 0o755))
	t.Setenv(configfile.EnvLLMProvider, "openai")
	t.Setenv(configfile.EnvOpenAIAPIKey, "sk-secret")

	buf := &bytes.Buffer{}
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"init", corpus, "--config", cfgPath})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagConfig = ""
	})

	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), corpus)
	assert.NotContains(t, string(data), "sk-secret")
	assert.Contains(t, buf.String(), cfgPath)
}
