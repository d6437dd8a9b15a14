package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// AssetStore resolves report images (school logo, signatures, student
// photos) under a base directory. Assets are optional: callers check Exists
// and degrade when a file is absent.
type AssetStore struct {
	baseDir string
}

// NewAssetStore ensures the base directory exists and returns a handle.
func NewAssetStore(baseDir string) (*AssetStore, error) {
	if baseDir == "" {
		baseDir = "./assets"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create assets directory: %w", err)
	}
	return &AssetStore{baseDir: baseDir}, nil
}

// Path returns the absolute location for the named asset.
func (s *AssetStore) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// Exists reports whether the named asset is present and a regular file.
func (s *AssetStore) Exists(name string) bool {
	info, err := os.Stat(s.Path(name))
	return err == nil && info.Mode().IsRegular()
}
