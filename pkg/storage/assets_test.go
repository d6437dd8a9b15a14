package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssetStoreExists(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAssetStore(dir)
	require.NoError(t, err)

	assert.False(t, store.Exists("logo.png"))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "logo.png"), []byte("png"), 0o644))
	assert.True(t, store.Exists("logo.png"))
	assert.Equal(t, filepath.Join(dir, "logo.png"), store.Path("logo.png"))
}

func TestAssetStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "assets")
	_, err := NewAssetStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestAssetStoreDirectoryIsNotAFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewAssetStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "photos"), 0o755))
	assert.False(t, store.Exists("photos"))
}
