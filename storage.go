package comfyapi

import (
	"context"
	"os"
	"path/filepath"
	"sort"
)

// Storage is an interface for persisting collected artifacts. Implementations
// can wrap existing storage clients (local disk, GCS, S3, etc.).
type Storage interface {
	// SaveFile saves artifact data under path and returns the location the
	// saved file can be reached at. The contentType is the artifact's MIME
	// type (e.g. "image/png").
	SaveFile(ctx context.Context, data []byte, path string, contentType string) (string, error)
}

// StorageResult contains information about a saved artifact.
type StorageResult struct {
	// Location is where the saved artifact can be accessed
	Location string

	// Path is the storage path/key the artifact was saved under
	Path string

	// Size is the number of bytes saved
	Size int
}

// DirStorage persists artifacts to a local directory.
type DirStorage struct {
	Root string
}

// NewDirStorage creates a DirStorage rooted at dir.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{Root: dir}
}

// Ensure DirStorage implements Storage.
var _ Storage = (*DirStorage)(nil)

// SaveFile writes data under the storage root, creating parent directories as
// needed. The contentType is unused; local files carry their extension.
func (s *DirStorage) SaveFile(_ context.Context, data []byte, path string, _ string) (string, error) {
	full := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", err
	}
	return full, nil
}

// SaveOutputs saves a collected artifact map to storage under basePath,
// preserving server-side filenames. Artifacts are written in filename order
// so results are deterministic.
func SaveOutputs(ctx context.Context, storage Storage, outputs map[string][]byte, basePath string) ([]StorageResult, error) {
	if storage == nil {
		return nil, ErrStorageNotConfigured
	}
	if len(outputs) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]StorageResult, 0, len(names))
	for _, name := range names {
		data := outputs[name]
		path := name
		if basePath != "" {
			path = basePath + "/" + name
		}

		location, err := storage.SaveFile(ctx, data, path, GetMIMEType(name))
		if err != nil {
			return results, err
		}

		results = append(results, StorageResult{
			Location: location,
			Path:     path,
			Size:     len(data),
		})
	}

	return results, nil
}

// SaveOutputs saves a collected artifact map to the client's configured
// storage. If no storage is configured, returns ErrStorageNotConfigured.
func (c *Client) SaveOutputs(ctx context.Context, outputs map[string][]byte, basePath string) ([]StorageResult, error) {
	c.mu.RLock()
	storage := c.storage
	c.mu.RUnlock()

	return SaveOutputs(ctx, storage, outputs, basePath)
}
