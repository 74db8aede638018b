package executor

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/HaiFongPan/kupo/internal/nav"
	"github.com/HaiFongPan/kupo/internal/preview"
	"github.com/HaiFongPan/kupo/internal/store"
)

// mockStore is a mock implementation of store.Store
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Name() string { return "mock" }

func (m *mockStore) Stat(ctx context.Context, path string) (nav.Entry, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(nav.Entry), args.Error(1)
}

func (m *mockStore) ReadDir(ctx context.Context, path string) ([]nav.Entry, error) {
	args := m.Called(ctx, path)
	entries, _ := args.Get(0).([]nav.Entry)
	return entries, args.Error(1)
}

func (m *mockStore) CreateFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockStore) CreateDir(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockStore) Delete(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	args := m.Called(ctx, path)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func TestExecute_DeleteContinuesPastFailures(t *testing.T) {
	st := &mockStore{}
	denied := nav.NewError(nav.PermissionDenied, "/a/x", nil)
	st.On("Delete", mock.Anything, "/a/x").Return(denied)
	st.On("Delete", mock.Anything, "/a/y").Return(nil)
	st.On("Delete", mock.Anything, "/a/z").Return(nil)

	result := New(st, nil, 0).Execute(context.Background(), nav.DeletePaths{Paths: []string{"/a/x", "/a/y", "/a/z"}})

	assert.Equal(t, nav.BatchDeleted{
		Deleted:  []string{"/a/y", "/a/z"},
		Failures: []nav.Failure{{Path: "/a/x", Err: denied}},
	}, result)
	st.AssertNumberOfCalls(t, "Delete", 3)
}

func TestExecute_DeleteTimeoutPerPath(t *testing.T) {
	st := &mockStore{}
	var deadlines []time.Time
	record := func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		d, ok := ctx.Deadline()
		require.True(t, ok)
		require.NoError(t, ctx.Err())
		deadlines = append(deadlines, d)
		time.Sleep(30 * time.Millisecond)
	}
	paths := []string{"/a/x", "/a/y", "/a/z"}
	for _, p := range paths {
		st.On("Delete", mock.Anything, p).Return(nil).Run(record)
	}

	// the whole batch outlasts a single timeout
	result := New(st, nil, 50*time.Millisecond).Execute(context.Background(), nav.DeletePaths{Paths: paths})

	assert.Equal(t, paths, result.(nav.BatchDeleted).Deleted)
	assert.Empty(t, result.(nav.BatchDeleted).Failures)
	require.Len(t, deadlines, 3)
	assert.True(t, deadlines[1].After(deadlines[0]))
	assert.True(t, deadlines[2].After(deadlines[1]))
}

func TestExecute_ReadDirHasDeadline(t *testing.T) {
	st := &mockStore{}
	withDeadline := mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})
	entries := []nav.Entry{{Path: "/a/b", Name: "b"}}
	st.On("ReadDir", withDeadline, "/a").Return(entries, nil)

	result := New(st, nil, time.Second).Execute(context.Background(), nav.ReadDir{Path: "/a", Highlight: "/a/b"})

	assert.Equal(t, nav.DirLoaded{Path: "/a", Entries: entries, Highlight: "/a/b"}, result)
	st.AssertExpectations(t)
}

func TestExecute_CreateEntry(t *testing.T) {
	st := &mockStore{}
	st.On("CreateDir", mock.Anything, "/a/new").Return(nil)
	exists := nav.NewError(nav.AlreadyExists, "/a/f", nil)
	st.On("CreateFile", mock.Anything, "/a/f").Return(exists)
	ex := New(st, nil, 0)

	assert.Equal(t, nav.EntryCreated{Path: "/a/new", Kind: nav.KindDir},
		ex.Execute(context.Background(), nav.CreateEntry{Path: "/a/new", Kind: nav.KindDir}))
	assert.Equal(t, nav.EntryCreated{Path: "/a/f", Kind: nav.KindFile, Err: exists},
		ex.Execute(context.Background(), nav.CreateEntry{Path: "/a/f", Kind: nav.KindFile}))
}

func TestExecute_PreviewAndQuit(t *testing.T) {
	ex := New(&mockStore{}, nil, 0)

	assert.Equal(t, nav.PreviewLoaded{Path: "/a"}, ex.Execute(context.Background(), nav.LoadPreview{Path: "/a"}))
	assert.Nil(t, ex.Execute(context.Background(), nav.Quit{}))
}

func newLocalSession(t *testing.T) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("# hi\n"), 0o644))

	st := store.NewLocal()
	sess := NewSession(nav.New(t.TempDir(), false), New(st, preview.NewLoader(st, 1024), time.Second), true)
	sess.Dispatch(context.Background(), nav.EnterDirectory{Path: dir})
	require.Equal(t, dir, sess.State.Dir)
	return sess, dir
}

func TestSession_PreviewFollowsHighlight(t *testing.T) {
	sess, dir := newLocalSession(t)

	assert.Equal(t, filepath.Join(dir, "readme.md"), sess.State.Preview.Path)
	assert.Equal(t, []string{"# hi"}, sess.State.Preview.Lines)
}

func TestSession_Commands(t *testing.T) {
	sess, dir := newLocalSession(t)
	ctx := context.Background()

	sess.Exec(ctx, "mkdir build")
	assert.DirExists(t, filepath.Join(dir, "build"))
	assert.Equal(t, nav.StatusSuccess, sess.State.Status.Level)
	e, ok := sess.State.Highlighted()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "build"), e.Path)

	sess.Exec(ctx, "touch build/main.go")
	assert.FileExists(t, filepath.Join(dir, "build", "main.go"))
	assert.Equal(t, filepath.Join(dir, "build"), sess.State.Dir)

	sess.Exec(ctx, "touch main.go")
	assert.Equal(t, nav.AlreadyExists, nav.KindOf(sess.State.Status.Err))

	sess.Exec(ctx, "cd ..")
	assert.Equal(t, dir, sess.State.Dir)

	sess.Exec(ctx, "cd missing")
	assert.Equal(t, nav.NotFound, nav.KindOf(sess.State.Status.Err))
	assert.Equal(t, dir, sess.State.Dir)

	assert.False(t, sess.Quit())
	sess.Exec(ctx, "q")
	assert.True(t, sess.Quit())
}

func TestSession_DeleteSelected(t *testing.T) {
	sess, dir := newLocalSession(t)
	ctx := context.Background()

	sess.Dispatch(ctx, nav.ToggleSelection{})
	sess.Dispatch(ctx, nav.DeleteSelected{})

	assert.NoFileExists(t, filepath.Join(dir, "readme.md"))
	assert.Empty(t, sess.State.Visible())
	assert.True(t, sess.State.Selection.Empty())
	assert.Equal(t, "deleted 1 item(s)", sess.State.Status.Text)
}
