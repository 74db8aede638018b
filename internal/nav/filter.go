package nav

import (
	"strings"

	"github.com/gobwas/glob"
	"golang.org/x/text/cases"
)

const globMeta = "*?["

// Filter narrows the visible listing by a name pattern
type Filter struct {
	Pattern string
	// restore is the path highlighted when the filter was first applied
	restore string
	// moved is set once the cursor is moved while the filter is active
	moved bool
}

// Active reports whether a pattern is set
func (f Filter) Active() bool {
	return f.Pattern != ""
}

// Matcher returns a case-insensitive name predicate for pattern. Patterns
// containing glob metacharacters match the whole name as a glob, anything
// else (or a glob that fails to compile) matches as a substring.
func Matcher(pattern string) func(name string) bool {
	folder := cases.Fold()
	folded := folder.String(pattern)
	if folded == "" {
		return func(string) bool { return true }
	}

	if strings.ContainsAny(folded, globMeta) {
		if g, err := glob.Compile(folded); err == nil {
			return func(name string) bool {
				return g.Match(cases.Fold().String(name))
			}
		}
	}

	return func(name string) bool {
		return strings.Contains(cases.Fold().String(name), folded)
	}
}

// filterEntries returns the subsequence of entries whose name matches pattern
func filterEntries(entries []Entry, pattern string) []Entry {
	if pattern == "" {
		return entries
	}
	match := Matcher(pattern)
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if match(e.Name) {
			out = append(out, e)
		}
	}
	return out
}
