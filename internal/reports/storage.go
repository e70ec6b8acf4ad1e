package reports

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ErrExists is returned when a report blob is written twice. Reports are
// immutable once stored.
var ErrExists = errors.New("report already exists")

// BlobStore abstracts blob storage for report documents.
type BlobStore interface {
	PutReport(ctx context.Context, id string, data []byte) error
	GetReport(ctx context.Context, id string) ([]byte, error)
}

func reportKey(id string) string {
	return "reports/" + id + ".json"
}

// objectKey places a report key under an optional bucket prefix.
func objectKey(prefix, id string) string {
	return path.Join(prefix, reportKey(id))
}

// LocalStore implements BlobStore using the local filesystem.
// Useful for development and testing.
type LocalStore struct {
	BaseDir string
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{BaseDir: baseDir}
}

func (s *LocalStore) path(id string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(reportKey(id)))
}

// PutReport stores a report blob. An existing blob is never overwritten.
func (s *LocalStore) PutReport(ctx context.Context, id string, data []byte) error {
	p := s.path(id)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrExists, id)
	}
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// GetReport retrieves a report blob.
func (s *LocalStore) GetReport(ctx context.Context, id string) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return data, err
}
