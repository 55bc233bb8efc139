package secondary

import (
	"context"
	"io"
)

// FileStorage stores uploaded blobs.
type FileStorage interface {
	// Save writes r under bucket and returns the storage path and size.
	Save(ctx context.Context, bucket, fileName string, r io.Reader) (path string, size int64, err error)

	// Open returns a reader for a stored path.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a stored path. Missing paths are ignored.
	Delete(ctx context.Context, path string) error

	// URL returns the address a client uses to fetch path.
	URL(path string) string
}
