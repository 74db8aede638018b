package nav

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Kind tells files and directories apart
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Entry is an immutable snapshot of one directory child
type Entry struct {
	Path      string
	Name      string
	Kind      Kind
	SortIndex int // 1-based position in the full sorted listing
	Size      int64
	ModTime   time.Time
	Mode      fs.FileMode
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool {
	return e.Kind == KindDir
}

// Hidden reports whether the entry is a dot file
func (e Entry) Hidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// NewEntry builds an entry for a child of dir from its fs.FileInfo
func NewEntry(dir string, info fs.FileInfo) Entry {
	kind := KindFile
	if info.IsDir() {
		kind = KindDir
	}
	return Entry{
		Path:    filepath.Join(dir, info.Name()),
		Name:    info.Name(),
		Kind:    kind,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}
}

// SortEntries returns a sorted copy of entries with SortIndex assigned.
// Directories come first, then names are compared case-folded with the
// raw name as a tiebreak so the order is total.
func SortEntries(entries []Entry) []Entry {
	folder := cases.Fold()
	keys := make(map[string]string, len(entries))
	for _, e := range entries {
		keys[e.Path] = folder.String(e.Name)
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.IsDir() != b.IsDir() {
			return a.IsDir()
		}
		ka, kb := keys[a.Path], keys[b.Path]
		if ka != kb {
			return ka < kb
		}
		return a.Name < b.Name
	})

	for i := range sorted {
		sorted[i].SortIndex = i + 1
	}
	return sorted
}

// TotalSize sums the sizes of the regular files in entries
func TotalSize(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		if !e.IsDir() {
			total += e.Size
		}
	}
	return total
}

func withoutHidden(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.Hidden() {
			out = append(out, e)
		}
	}
	return out
}

func indexOfPath(entries []Entry, path string) int {
	for i, e := range entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}
