package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaiFongPan/kupo/internal/config"
	"github.com/HaiFongPan/kupo/internal/nav"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()
	globalConfig = &config.Config{
		General: config.GeneralConfig{Backend: config.BackendLocal, OperationTimeout: 5},
		UI:      config.UIConfig{PreviewMaxBytes: 1024, PreviewWidth: 40},
	}
	t.Cleanup(func() {
		globalConfig = nil
		lsFilter, lsAll, execDir, rmForce = "", false, "", false
	})

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("hello"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), nil, 0o644))
	return dir
}

func newTestCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c := &cobra.Command{}
	c.SetOut(out)
	c.SetIn(strings.NewReader(stdin))
	return c, out
}

func TestListDir(t *testing.T) {
	dir := setupTestConfig(t)
	c, out := newTestCommand("")

	require.NoError(t, listDir(c, []string{dir}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"#", "NAME", "SIZE", "MODIFIED"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"1", "src/", "-"}, strings.Fields(lines[1])[:3])
	assert.Equal(t, []string{"2", "a.md", "0", "B"}, strings.Fields(lines[2])[:4])
	assert.Equal(t, "b.txt", strings.Fields(lines[3])[1])
	assert.NotContains(t, out.String(), ".env")
}

func TestListDir_AllAndFilter(t *testing.T) {
	dir := setupTestConfig(t)

	lsAll = true
	c, out := newTestCommand("")
	require.NoError(t, listDir(c, []string{dir}))
	assert.Contains(t, out.String(), ".env")

	lsFilter = "*.txt"
	c, out = newTestCommand("")
	require.NoError(t, listDir(c, []string{dir}))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "4", strings.Fields(lines[1])[0], "sort index is kept under a filter")
}

func TestListDir_Missing(t *testing.T) {
	dir := setupTestConfig(t)
	c, _ := newTestCommand("")

	err := listDir(c, []string{filepath.Join(dir, "nope")})
	assert.Equal(t, nav.NotFound, nav.KindOf(err))
}

func TestExecLines(t *testing.T) {
	dir := setupTestConfig(t)
	execDir = dir
	c, out := newTestCommand("")

	require.NoError(t, execLines(c, []string{"mkdir build", "touch build/main.go"}))

	assert.FileExists(t, filepath.Join(dir, "build", "main.go"))
	assert.Equal(t, filepath.Join(dir, "build")+"\n", out.String())
}

func TestExecLines_StopsAtError(t *testing.T) {
	dir := setupTestConfig(t)
	execDir = dir
	c, out := newTestCommand("")

	err := execLines(c, []string{"cd missing", "mkdir later"})
	require.Error(t, err)
	assert.Equal(t, nav.NotFound, nav.KindOf(err))
	assert.Contains(t, err.Error(), "cd missing")
	assert.NoDirExists(t, filepath.Join(dir, "later"))
	assert.Empty(t, out.String())
}

func TestExecLines_Quit(t *testing.T) {
	dir := setupTestConfig(t)
	execDir = dir
	c, out := newTestCommand("")

	require.NoError(t, execLines(c, []string{"cd src", "q", "mkdir later"}))
	assert.NoDirExists(t, filepath.Join(dir, "src", "later"))
	assert.Equal(t, filepath.Join(dir, "src")+"\n", out.String())
}

func TestRemovePaths_Force(t *testing.T) {
	dir := setupTestConfig(t)
	rmForce = true
	c, out := newTestCommand("")

	require.NoError(t, removePaths(c, []string{filepath.Join(dir, "b.txt"), filepath.Join(dir, "src")}))

	assert.NoFileExists(t, filepath.Join(dir, "b.txt"))
	assert.NoDirExists(t, filepath.Join(dir, "src"))
	assert.Equal(t, "deleted 2 item(s)\n", out.String())
}

func TestRemovePaths_PartialFailure(t *testing.T) {
	dir := setupTestConfig(t)
	rmForce = true
	c, out := newTestCommand("")

	missing := filepath.Join(dir, "missing.txt")
	err := removePaths(c, []string{filepath.Join(dir, "a.md"), missing})

	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "a.md"))
	assert.Contains(t, out.String(), "Deleted 1 item(s) successfully, 1 failed")
	assert.Contains(t, out.String(), missing)
}

func TestRemovePaths_Cancelled(t *testing.T) {
	dir := setupTestConfig(t)
	c, out := newTestCommand("n\n")

	require.NoError(t, removePaths(c, []string{filepath.Join(dir, "b.txt")}))

	assert.FileExists(t, filepath.Join(dir, "b.txt"))
	assert.Contains(t, out.String(), "1 item(s) will be deleted")
	assert.Contains(t, out.String(), "Delete cancelled.")
}

func TestRemovePaths_Confirmed(t *testing.T) {
	dir := setupTestConfig(t)
	c, _ := newTestCommand("yes\n")

	require.NoError(t, removePaths(c, []string{filepath.Join(dir, "b.txt")}))
	assert.NoFileExists(t, filepath.Join(dir, "b.txt"))
}

func TestResolveDir(t *testing.T) {
	setupTestConfig(t)
	cwd, err := os.Getwd()
	require.NoError(t, err)

	got, err := resolveDir(globalConfig, "/home/u", "")
	require.NoError(t, err)
	assert.Equal(t, cwd, got)

	got, err = resolveDir(globalConfig, "/home/u", "~/src")
	require.NoError(t, err)
	assert.Equal(t, "/home/u/src", got)

	globalConfig.General.Backend = config.BackendR2
	got, err = resolveDir(globalConfig, "/", "photos/2024")
	require.NoError(t, err)
	assert.Equal(t, "/photos/2024", got)
}
