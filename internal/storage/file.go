// internal/storage/file.go
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend persists each key as one JSON document under dir. Writes go
// through a temp file and rename so a crashed write never leaves a
// half-written document behind. Two processes sharing a dir race with
// last-write-wins semantics.
type FileBackend struct {
	dir string
	mtx sync.RWMutex
	*notifier
}

func NewFileBackend(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &FileBackend{dir: dir, notifier: newNotifier()}, nil
}

// Keys may hold characters that are awkward on a filesystem; encode them.
func (f *FileBackend) path(key string) string {
	name := base64.RawURLEncoding.EncodeToString([]byte(key))
	return filepath.Join(f.dir, name+".json")
}

func (f *FileBackend) Get(key string) ([]byte, bool) {
	f.mtx.RLock()
	defer f.mtx.RUnlock()

	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (f *FileBackend) Set(key string, value []byte) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("failed to commit %s: %w", key, err)
	}

	f.notify(key)
	return nil
}

func (f *FileBackend) Delete(key string) error {
	f.mtx.Lock()
	defer f.mtx.Unlock()

	if err := os.Remove(f.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	f.notify(key)
	return nil
}

func (f *FileBackend) Subscribe(key string) (<-chan struct{}, func()) {
	return f.subscribe(key)
}
