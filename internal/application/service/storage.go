package service

import (
	"context"
	"io"
)

// BinaryStore is the single directory of uploaded binaries. Rows reference
// entries by generated filename only; the store is never authoritative.
type BinaryStore interface {
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
	// Delete is a no-op when the file is already gone.
	Delete(name string) error
	Exists(name string) bool
	// Path returns the absolute filesystem path for a stored name.
	Path(name string) string
	List() ([]string, error)
	Root() string
}
