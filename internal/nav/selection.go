package nav

import "sort"

// Selection is a set of absolute paths marked for batch operations.
// It is a value type; every change returns a new set.
type Selection struct {
	paths map[string]struct{}
}

// NewSelection creates a selection holding paths
func NewSelection(paths ...string) Selection {
	s := Selection{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		s.paths[p] = struct{}{}
	}
	return s
}

// Contains reports whether path is selected
func (s Selection) Contains(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of selected paths
func (s Selection) Len() int {
	return len(s.paths)
}

// Empty reports whether nothing is selected
func (s Selection) Empty() bool {
	return len(s.paths) == 0
}

// Toggle adds path if absent and removes it if present
func (s Selection) Toggle(path string) Selection {
	next := s.clone()
	if _, ok := next.paths[path]; ok {
		delete(next.paths, path)
	} else {
		next.paths[path] = struct{}{}
	}
	return next
}

// Remove drops paths from the selection
func (s Selection) Remove(paths ...string) Selection {
	next := s.clone()
	for _, p := range paths {
		delete(next.paths, p)
	}
	return next
}

// Paths returns the selected paths in lexical order
func (s Selection) Paths() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s Selection) clone() Selection {
	next := Selection{paths: make(map[string]struct{}, len(s.paths)+1)}
	for p := range s.paths {
		next.paths[p] = struct{}{}
	}
	return next
}
