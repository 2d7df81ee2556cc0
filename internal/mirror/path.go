package mirror

import (
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/fvtools/fvmirror/internal/fvid"
)

// Resolve walks the parent chain from id to a root and returns the folder
// names in root-first order. The walk stops at a zero parent, at an
// ancestor missing from the index, or when it revisits a folder (cycle).
// In the truncated cases the names collected so far still form the path,
// so a folder with a dangling parent behaves as an implicit root. An id
// not in the index resolves to nil, which maps to the mirror root.
func (idx Index) Resolve(id fvid.ID) []string {
	var parts []string

	visited := make(map[fvid.ID]bool)

	for cur := id; !cur.IsZero() && !visited[cur]; {
		node, ok := idx[cur]
		if !ok {
			break
		}

		visited[cur] = true

		parts = append(parts, node.Name)
		cur = node.Parent
	}

	slices.Reverse(parts)

	return parts
}

// Truncated reports whether Resolve(id) stopped early: the parent chain
// hit a cycle or referenced an ancestor missing from the index. An id
// absent from the index entirely is not truncated; it simply resolves to
// the root.
func (idx Index) Truncated(id fvid.ID) bool {
	visited := make(map[fvid.ID]bool)

	cur := id
	for !cur.IsZero() {
		if visited[cur] {
			return true
		}

		node, ok := idx[cur]
		if !ok {
			return cur != id
		}

		visited[cur] = true
		cur = node.Parent
	}

	return false
}

// SafeName makes a folder or file name safe to use as a single path
// segment. Unicode is normalized to NFC so the same name from different
// API responses lands in the same directory. Path separators and control
// characters become underscores, and trailing dots and spaces are trimmed
// because Windows silently drops them.
func SafeName(name string) string {
	name = norm.NFC.String(name)

	var b strings.Builder
	b.Grow(len(name))

	for _, r := range name {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	cleaned := strings.TrimRight(b.String(), ". ")
	if cleaned == "" {
		return "_"
	}

	return cleaned
}

// RelPath returns the folder's path relative to the mirror root, with each
// segment passed through SafeName. Unknown and root-level ids return "".
func (idx Index) RelPath(id fvid.ID) string {
	parts := idx.Resolve(id)
	if len(parts) == 0 {
		return ""
	}

	for i, part := range parts {
		parts[i] = SafeName(part)
	}

	return filepath.Join(parts...)
}
