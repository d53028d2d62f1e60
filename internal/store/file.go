package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

// FileStore keeps the seen-set as a JSON array in a local file. Meant for
// development and single-host deployments.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Name implements SeenStore.
func (s *FileStore) Name() string { return "file" }

// Close implements SeenStore.
func (s *FileStore) Close() error { return nil }

// Load reads the file. A missing file is an empty set.
func (s *FileStore) Load(_ context.Context) (domain.SeenSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NewSeenSet(), nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	return decodeIDs(data)
}

// Save writes to a synced temporary file in the same directory and renames
// it over the target, so a crash never leaves a half-written document.
func (s *FileStore) Save(_ context.Context, ids domain.SeenSet) error {
	data, err := encodeIDs(ids)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	if err := renameio.WriteFile(s.path, data, 0o644, renameio.WithTempDir(dir)); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}
