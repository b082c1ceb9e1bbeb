package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps one <namespace>.json file per namespace under a
// directory. Writes go through a temp file and rename so a crash never
// leaves a half-written snapshot behind.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir. The directory is
// created lazily on first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) path(namespace string) string {
	return filepath.Join(s.dir, namespace+".json")
}

// Load reads the snapshot for a namespace. A missing file yields nil
// data and no error.
func (s *FileStore) Load(namespace string) ([]byte, error) {
	data, err := os.ReadFile(s.path(namespace))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", namespace, err)
	}
	return data, nil
}

// Save writes the snapshot for a namespace atomically.
func (s *FileStore) Save(namespace string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.dir, namespace+".json.tmp")
	if err != nil {
		return fmt.Errorf("create temp snapshot file: %w", err)
	}
	name := tmpFile.Name()
	_, err = tmpFile.Write(data)
	if err1 := tmpFile.Close(); err1 != nil && err == nil {
		err = err1
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp snapshot file: %w", err)
	}

	if err := os.Rename(name, s.path(namespace)); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename snapshot file: %w", err)
	}

	return nil
}
