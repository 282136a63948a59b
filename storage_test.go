package comfyapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStorage_SaveFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewDirStorage(dir)

	location, err := storage.SaveFile(context.Background(), []byte("data"), "2024-01-01/a.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2024-01-01", "a.png"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), data)
}

func TestSaveOutputs(t *testing.T) {
	dir := t.TempDir()
	storage := NewDirStorage(dir)

	outputs := map[string][]byte{
		"b.png": []byte("bb"),
		"a.png": []byte("a"),
	}

	results, err := SaveOutputs(context.Background(), storage, outputs, "run1")
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Filename order keeps results deterministic.
	assert.Equal(t, "run1/a.png", results[0].Path)
	assert.Equal(t, 1, results[0].Size)
	assert.Equal(t, "run1/b.png", results[1].Path)
	assert.Equal(t, 2, results[1].Size)
}

func TestSaveOutputs_NoStorage(t *testing.T) {
	_, err := SaveOutputs(context.Background(), nil, map[string][]byte{"a.png": []byte("x")}, "")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}

func TestSaveOutputs_Empty(t *testing.T) {
	results, err := SaveOutputs(context.Background(), NewDirStorage(t.TempDir()), nil, "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestClient_SaveOutputs(t *testing.T) {
	dir := t.TempDir()
	c := newTestClient(t, DefaultBaseURL, WithStorage(NewDirStorage(dir)))

	results, err := c.SaveOutputs(context.Background(), map[string][]byte{"a.png": []byte("x")}, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.FileExists(t, filepath.Join(dir, "a.png"))

	c.SetStorage(nil)
	_, err = c.SaveOutputs(context.Background(), map[string][]byte{"a.png": []byte("x")}, "")
	assert.ErrorIs(t, err, ErrStorageNotConfigured)
}
