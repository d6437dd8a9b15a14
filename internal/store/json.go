package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

func ensureDir(dir string) error {
	if dir == "" {
		dir = "./student_data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// loadCollection reads a whole collection file. loaded is false when the file
// is absent or empty, letting the caller fall back to seed data. A corrupt
// file is logged and treated as absent; the accepted cost is losing its
// contents on the next rewrite.
func loadCollection[T any](path string, logger *zap.Logger) ([]T, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []T{}, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(data) == 0 {
		return []T{}, false, nil
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("collection file is corrupt, resetting",
			zap.String("file", filepath.Base(path)), zap.Error(err))
		return []T{}, false, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, true, nil
}

// writeCollection serialises the whole collection pretty-printed and swaps it
// into place with a rename, so readers never observe a partial write.
// Callers must hold s.mu.
func (s *Store) writeCollection(name string, v any) error {
	start := time.Now()
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("flush %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	if s.observer != nil {
		s.observer.ObservePersist(name, time.Since(start))
	}
	return nil
}
