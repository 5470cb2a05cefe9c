package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

// DiskStore keeps uploaded files in a flat directory, one file per blob,
// keyed by a generated filename.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

var _ domain.BlobStore = (*DiskStore)(nil)

func (s *DiskStore) Store(_ context.Context, data []byte, ext string) (string, error) {
	key := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", err
	}
	return key, nil
}

func (s *DiskStore) Fetch(_ context.Context, key string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, key))
}

func (s *DiskStore) Exists(_ context.Context, key string) bool {
	_, err := os.Stat(filepath.Join(s.dir, key))
	return err == nil
}
