package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	require.NoError(t, w.Switch(dir))
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w
}

func TestWatcher_DebouncedChange(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}

	select {
	case change := <-w.Changes():
		assert.Equal(t, dir, change.Dir)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	select {
	case <-w.Changes():
		t.Fatal("burst should collapse into one change")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_Switch(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	w := startWatcher(t, first)

	require.NoError(t, w.Switch(second))
	assert.Equal(t, second, w.Dir())

	require.NoError(t, os.WriteFile(filepath.Join(second, "x"), nil, 0o644))
	select {
	case change := <-w.Changes():
		assert.Equal(t, second, change.Dir)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_SwitchMissing(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	defer w.Stop()

	assert.Error(t, w.Switch(filepath.Join(t.TempDir(), "missing")))
	assert.Empty(t, w.Dir())
}

func TestWatcher_StopClosesChanges(t *testing.T) {
	w := startWatcher(t, t.TempDir())
	w.Stop()
	w.Stop()

	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestWatcher_StartTwice(t *testing.T) {
	w := startWatcher(t, t.TempDir())
	assert.Error(t, w.Start())
}
