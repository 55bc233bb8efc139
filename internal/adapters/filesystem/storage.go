// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/example/praxis/internal/ports/secondary"
)

// FileStorage implements secondary.FileStorage on a local directory.
// Stored paths are slash-separated and relative to the root, e.g.
// "templates/3f2a....pdf".
type FileStorage struct {
	root    string
	baseURL string
}

var _ secondary.FileStorage = (*FileStorage)(nil)

// NewFileStorage creates a storage rooted at root. baseURL prefixes the
// URLs handed to clients (for example "/files").
func NewFileStorage(root, baseURL string) (*FileStorage, error) {
	if root == "" {
		return nil, errors.New("storage root is required")
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &FileStorage{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes r under bucket with a random name keeping fileName's extension.
func (s *FileStorage) Save(ctx context.Context, bucket, fileName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if bucket == "" || strings.ContainsAny(bucket, `/\.`) {
		return "", 0, fmt.Errorf("invalid bucket %q", bucket)
	}

	dir := filepath.Join(s.root, bucket)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create bucket: %w", err)
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	rel := path.Join(bucket, name)

	f, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()

	size, err := io.Copy(f, r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp)
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp, filepath.Join(dir, name)); err != nil {
		os.Remove(tmp)
		return "", 0, fmt.Errorf("failed to store file: %w", err)
	}
	return rel, size, nil
}

// Open returns a reader for a stored path.
func (s *FileStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p, err)
	}
	return f, nil
}

// Delete removes a stored path. Missing paths are ignored.
func (s *FileStorage) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(p)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

// URL returns the address a client uses to fetch p.
func (s *FileStorage) URL(p string) string {
	return s.baseURL + "/" + strings.TrimLeft(p, "/")
}

// resolve maps a stored path to a file under root, rejecting escapes.
func (s *FileStorage) resolve(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" || strings.Contains(p, `\`) {
		return "", fmt.Errorf("invalid storage path %q", p)
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
