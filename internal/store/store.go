// Package store abstracts the tree kupo browses. The local backend wraps
// the operating system filesystem; other backends present remote object
// storage as the same tree of slash-separated paths.
package store

import (
	"context"
	"io"

	"github.com/HaiFongPan/kupo/internal/nav"
)

// Store is a browsable tree of files and directories. Every error it
// returns is a *nav.Error so callers can branch on the kind.
type Store interface {
	// Name describes the backend for headers and logs
	Name() string
	Stat(ctx context.Context, path string) (nav.Entry, error)
	ReadDir(ctx context.Context, path string) ([]nav.Entry, error)
	// CreateFile creates an empty file and fails if anything exists at path
	CreateFile(ctx context.Context, path string) error
	CreateDir(ctx context.Context, path string) error
	// Delete removes a file or a whole directory tree
	Delete(ctx context.Context, path string) error
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}
