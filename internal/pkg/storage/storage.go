package storage

import (
	"context"
	"io"
)

// Storage is a flat blob store addressed by slash-separated relative paths.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error
	// Get returns the content at path. The caller closes it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes path. Deleting a missing path succeeds.
	Delete(ctx context.Context, path string) error
}
