package mirror

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fvtools/fvmirror/internal/filevine"
	"github.com/fvtools/fvmirror/internal/fvid"
)

// chainIndex builds a three-level chain: Root/Medical/Bills.
func chainIndex() Index {
	return BuildIndex([]filevine.Folder{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Medical", ParentID: 1},
		{ID: 3, Name: "Bills", ParentID: 2},
	})
}

func TestResolve(t *testing.T) {
	idx := chainIndex()

	tests := []struct {
		name string
		id   fvid.ID
		want []string
	}{
		{"leaf", 3, []string{"Root", "Medical", "Bills"}},
		{"middle", 2, []string{"Root", "Medical"}},
		{"root", 1, []string{"Root"}},
		{"unknown id", 42, nil},
		{"zero id", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Resolve(tt.id))
		})
	}
}

func TestResolve_DepthMatchesChainLength(t *testing.T) {
	// Ten nested folders; resolving the deepest yields all ten names.
	folders := make([]filevine.Folder, 0, 10)
	for i := 1; i <= 10; i++ {
		folders = append(folders, filevine.Folder{
			ID:       fvid.ID(i),
			Name:     string(rune('a' + i - 1)),
			ParentID: fvid.ID(i - 1),
		})
	}

	idx := BuildIndex(folders)

	parts := idx.Resolve(10)
	assert.Len(t, parts, 10)
	assert.Equal(t, "a", parts[0])
	assert.Equal(t, "j", parts[9])
}

func TestResolve_CycleTerminates(t *testing.T) {
	idx := BuildIndex([]filevine.Folder{
		{ID: 1, Name: "A", ParentID: 2},
		{ID: 2, Name: "B", ParentID: 1},
	})

	// The walk visits each folder once and stops on revisit.
	assert.Equal(t, []string{"B", "A"}, idx.Resolve(1))
	assert.Equal(t, []string{"A", "B"}, idx.Resolve(2))
}

func TestResolve_SelfParentTerminates(t *testing.T) {
	idx := BuildIndex([]filevine.Folder{{ID: 1, Name: "Self", ParentID: 1}})

	assert.Equal(t, []string{"Self"}, idx.Resolve(1))
}

func TestResolve_MissingAncestorTruncates(t *testing.T) {
	// Folder 5's parent 777 was never listed; 5 acts as an implicit root.
	idx := BuildIndex([]filevine.Folder{
		{ID: 5, Name: "Orphan", ParentID: 777},
		{ID: 6, Name: "Child", ParentID: 5},
	})

	assert.Equal(t, []string{"Orphan", "Child"}, idx.Resolve(6))
	assert.Equal(t, []string{"Orphan"}, idx.Resolve(5))
}

func TestTruncated(t *testing.T) {
	idx := BuildIndex([]filevine.Folder{
		{ID: 1, Name: "Root"},
		{ID: 2, Name: "Child", ParentID: 1},
		{ID: 5, Name: "Orphan", ParentID: 777},
		{ID: 8, Name: "A", ParentID: 9},
		{ID: 9, Name: "B", ParentID: 8},
	})

	tests := []struct {
		name string
		id   fvid.ID
		want bool
	}{
		{"intact chain", 2, false},
		{"root", 1, false},
		{"dangling parent", 5, true},
		{"cycle", 8, true},
		{"unknown id resolves to base", 42, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, idx.Truncated(tt.id))
		})
	}
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Medical", "Medical"},
		{"forward slash", "A/B", "A_B"},
		{"backslash", `A\B`, "A_B"},
		{"control chars", "a\x00b\x1fc", "a_b_c"},
		{"delete char", "a\x7fb", "a_b"},
		{"trailing dots", "name...", "name"},
		{"trailing spaces", "name   ", "name"},
		{"only dots", "...", "_"},
		{"empty", "", "_"},
		{"unicode kept", "Éxhibits", "Éxhibits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}

func TestSafeName_NormalizesUnicode(t *testing.T) {
	// "é" as combining sequence vs precomposed must map to one name.
	composed := "café"
	decomposed := "café"

	assert.Equal(t, SafeName(composed), SafeName(decomposed))
}

func TestRelPath(t *testing.T) {
	idx := chainIndex()

	assert.Equal(t, filepath.Join("Root", "Medical", "Bills"), idx.RelPath(3))
	assert.Equal(t, "Root", idx.RelPath(1))
	assert.Equal(t, "", idx.RelPath(42), "unknown folder maps to the mirror root")
	assert.Equal(t, "", idx.RelPath(0))
}

func TestRelPath_SanitizesSegments(t *testing.T) {
	idx := BuildIndex([]filevine.Folder{
		{ID: 1, Name: "Top/Level"},
		{ID: 2, Name: "Sub.", ParentID: 1},
	})

	assert.Equal(t, filepath.Join("Top_Level", "Sub"), idx.RelPath(2))
}
