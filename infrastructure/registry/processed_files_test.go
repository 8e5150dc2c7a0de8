package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessedFileRegistry_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "processed_files.json")

	registry := NewProcessedFileRegistry(path)
	require.NoError(t, registry.Load())
	assert.Empty(t, registry.Names())

	require.NoError(t, registry.Add("G-P export.csv"))
	require.NoError(t, registry.Add("AO Historical.xlsx"))
	require.NoError(t, registry.Add("G-P export.csv"))

	reloaded := NewProcessedFileRegistry(path)
	require.NoError(t, reloaded.Load())
	assert.True(t, reloaded.Contains("G-P export.csv"))
	assert.False(t, reloaded.Contains("other.csv"))
	assert.Equal(t, []string{"AO Historical.xlsx", "G-P export.csv"}, reloaded.Names())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestProcessedFileRegistry_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_files.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"not":"an array"}`), 0o644))

	registry := NewProcessedFileRegistry(path)
	require.NoError(t, registry.Load())
	assert.Empty(t, registry.Names())

	require.NoError(t, registry.Add("a.csv"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `["a.csv"]`, string(content))
}
