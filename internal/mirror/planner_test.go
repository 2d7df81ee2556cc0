package mirror

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fvtools/fvmirror/internal/filevine"
)

func TestEnsureFolders_CreatesAllDirectories(t *testing.T) {
	base := t.TempDir()
	idx := chainIndex()

	planner := NewPlanner(base, slog.Default())
	require.NoError(t, planner.EnsureBase())
	require.NoError(t, planner.EnsureFolders(context.Background(), idx))

	// All three levels exist, including the two with no documents.
	for _, rel := range []string{"Root", "Root/Medical", "Root/Medical/Bills"} {
		info, err := os.Stat(filepath.Join(base, filepath.FromSlash(rel)))
		require.NoError(t, err, rel)
		assert.True(t, info.IsDir(), rel)
	}
}

func TestEnsureFolders_Idempotent(t *testing.T) {
	base := t.TempDir()
	idx := chainIndex()

	planner := NewPlanner(base, slog.Default())
	require.NoError(t, planner.EnsureFolders(context.Background(), idx))
	require.NoError(t, planner.EnsureFolders(context.Background(), idx))

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "second run must not duplicate anything")
}

func TestEnsureFolders_TruncatedChainStillCreated(t *testing.T) {
	base := t.TempDir()
	idx := BuildIndex([]filevine.Folder{
		{ID: 5, Name: "Orphan", ParentID: 777},
	})

	planner := NewPlanner(base, slog.Default())
	require.NoError(t, planner.EnsureFolders(context.Background(), idx))

	info, err := os.Stat(filepath.Join(base, "Orphan"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureFolders_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	planner := NewPlanner(t.TempDir(), slog.Default())

	err := planner.EnsureFolders(ctx, chainIndex())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnsureBase_Fails(t *testing.T) {
	base := t.TempDir()

	// A file where the mirror root should go makes MkdirAll fail.
	blocker := filepath.Join(base, "blocked")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	planner := NewPlanner(blocker, slog.Default())

	err := planner.EnsureBase()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating mirror root")
}
