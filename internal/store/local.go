package store

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/HaiFongPan/kupo/internal/nav"
)

// Local is a Store over the operating system filesystem
type Local struct{}

// NewLocal creates a local filesystem store
func NewLocal() *Local {
	return &Local{}
}

// Name implements Store
func (l *Local) Name() string {
	return "local"
}

// Stat implements Store. Symlinks are followed.
func (l *Local) Stat(_ context.Context, path string) (nav.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nav.Entry{}, nav.Classify(err, path)
	}
	return nav.NewEntry(filepath.Dir(path), info), nil
}

// ReadDir implements Store. Children that vanish between the directory
// read and their stat are skipped.
func (l *Local) ReadDir(ctx context.Context, path string) ([]nav.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nav.Classify(err, path)
	}
	if !info.IsDir() {
		return nil, nav.NewError(nav.NotADirectory, path, nil)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, nav.Classify(err, path)
	}

	entries := make([]nav.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, nav.Classify(err, path)
		}

		child := filepath.Join(path, de.Name())
		var fi os.FileInfo
		if de.Type()&os.ModeSymlink != 0 {
			fi, err = os.Stat(child)
			if err != nil {
				// dangling link, show the link itself
				fi, err = de.Info()
			}
		} else {
			fi, err = de.Info()
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"path": child, "error": err}).Debug("Skipping unreadable entry")
			continue
		}
		entries = append(entries, nav.NewEntry(path, fi))
	}

	return entries, nil
}

// CreateFile implements Store
func (l *Local) CreateFile(_ context.Context, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nav.Classify(err, path)
	}
	return nav.Classify(f.Close(), path)
}

// CreateDir implements Store
func (l *Local) CreateDir(_ context.Context, path string) error {
	return nav.Classify(os.Mkdir(path, 0o755), path)
}

// Delete implements Store
func (l *Local) Delete(_ context.Context, path string) error {
	if _, err := os.Lstat(path); err != nil {
		return nav.Classify(err, path)
	}
	return nav.Classify(os.RemoveAll(path), path)
}

// Open implements Store
func (l *Local) Open(_ context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nav.Classify(err, path)
	}
	return f, nil
}
