package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaiFongPan/kupo/internal/nav"
)

func TestLocal_ReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "c"), 0o755))

	entries, err := NewLocal().ReadDir(context.Background(), dir)
	require.NoError(t, err)

	sorted := nav.SortEntries(entries)
	require.Len(t, sorted, 2)
	assert.Equal(t, "c", sorted[0].Name)
	assert.True(t, sorted[0].IsDir())
	assert.Equal(t, filepath.Join(dir, "b.txt"), sorted[1].Path)
	assert.Equal(t, int64(5), sorted[1].Size)
}

func TestLocal_ReadDirErrors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	l := NewLocal()

	_, err := l.ReadDir(context.Background(), filepath.Join(dir, "missing"))
	assert.Equal(t, nav.NotFound, nav.KindOf(err))

	_, err = l.ReadDir(context.Background(), file)
	assert.Equal(t, nav.NotADirectory, nav.KindOf(err))
}

func TestLocal_ReadDirCancelled(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), nil, 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	entries, err := NewLocal().ReadDir(ctx, dir)
	assert.Nil(t, entries)
	var navErr *nav.Error
	require.ErrorAs(t, err, &navErr)
	assert.Equal(t, dir, navErr.Path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocal_ReadDirFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "target"), 0o755))
	if err := os.Symlink(filepath.Join(dir, "target"), filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere"), filepath.Join(dir, "dangling")))

	entries, err := NewLocal().ReadDir(context.Background(), dir)
	require.NoError(t, err)

	kinds := map[string]nav.Kind{}
	for _, e := range entries {
		kinds[e.Name] = e.Kind
	}
	assert.Equal(t, nav.KindDir, kinds["link"])
	assert.Equal(t, nav.KindFile, kinds["dangling"])
}

func TestLocal_CreateAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal()
	ctx := context.Background()

	file := filepath.Join(dir, "new.txt")
	require.NoError(t, l.CreateFile(ctx, file))
	assert.Equal(t, nav.AlreadyExists, nav.KindOf(l.CreateFile(ctx, file)))

	sub := filepath.Join(dir, "sub")
	require.NoError(t, l.CreateDir(ctx, sub))
	assert.Equal(t, nav.AlreadyExists, nav.KindOf(l.CreateDir(ctx, sub)))
	require.NoError(t, l.CreateFile(ctx, filepath.Join(sub, "inner")))

	assert.Equal(t, nav.NotFound, nav.KindOf(l.CreateFile(ctx, filepath.Join(dir, "nope", "x"))))

	e, err := l.Stat(ctx, sub)
	require.NoError(t, err)
	assert.True(t, e.IsDir())

	require.NoError(t, l.Delete(ctx, sub))
	require.NoError(t, l.Delete(ctx, file))
	assert.Equal(t, nav.NotFound, nav.KindOf(l.Delete(ctx, file)))

	entries, err := l.ReadDir(ctx, dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLocal_PermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := t.TempDir()
	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Mkdir(locked, 0o555))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	err := NewLocal().CreateFile(context.Background(), filepath.Join(locked, "x"))
	assert.Equal(t, nav.PermissionDenied, nav.KindOf(err))
}

func TestLocal_Open(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("content"), 0o644))

	rc, err := NewLocal().Open(context.Background(), file)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}
