package snapshot

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/ntthuylinh144/NER/model"
)

// FileStore reads and writes snapshot documents at a fixed path. A file
// lock next to the snapshot is held for the duration of each transfer and
// released on every exit path, so concurrent tooling never sees a partial
// file. I/O errors surface as model.ErrPersistenceFailure.
type FileStore struct {
	path string
}

// NewFileStore creates a file store for the given snapshot path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot path this store operates on.
func (f *FileStore) Path() string {
	return f.path
}

// Save writes the snapshot document. The write goes to a temporary file
// first and is renamed into place, so a failed save leaves any existing
// snapshot untouched.
func (f *FileStore) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("%w: create snapshot directory: %v", model.ErrPersistenceFailure, err)
	}

	lock := flock.New(f.lockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("%w: acquire snapshot lock: %v", model.ErrPersistenceFailure, err)
	}
	if !locked {
		return fmt.Errorf("%w: snapshot file %s is locked by another process", model.ErrPersistenceFailure, f.path)
	}
	defer func() { _ = lock.Unlock() }()

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("%w: write snapshot: %v", model.ErrPersistenceFailure, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename snapshot: %v", model.ErrPersistenceFailure, err)
	}
	return nil
}

// Load reads the snapshot document.
func (f *FileStore) Load() ([]byte, error) {
	lock := flock.New(f.lockPath())
	locked, err := lock.TryRLock()
	if err != nil {
		return nil, fmt.Errorf("%w: acquire snapshot lock: %v", model.ErrPersistenceFailure, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: snapshot file %s is locked by another process", model.ErrPersistenceFailure, f.path)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read snapshot: %v", model.ErrPersistenceFailure, err)
	}
	return data, nil
}

func (f *FileStore) lockPath() string {
	return f.path + ".lock"
}
