package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func start(t *testing.T, w *Watcher) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return func() {
		cancelCtx()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watch loop did not stop")
		}
	}
}

func TestRun_DebouncesBurstIntoOneRebuild(t *testing.T) {
	dir := t.TempDir()
	kw := filepath.Join(dir, "keywords.json")
	require.NoError(t, os.WriteFile(kw, []byte(`[]`), 0o600))

	var builds atomic.Int32
	w, err := New([]string{kw}, 100*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond) // let the watcher register
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(kw, []byte(`["a"]`), 0o600))
	}
	require.Eventually(t, func() bool { return builds.Load() == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())
}

func TestRun_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	kw := filepath.Join(dir, "keywords.json")
	require.NoError(t, os.WriteFile(kw, []byte(`[]`), 0o600))

	var builds atomic.Int32
	w, err := New([]string{kw}, 50*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))
	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, builds.Load())
}

func TestRun_WatchesDirectoryContents(t *testing.T) {
	pages := t.TempDir()
	var builds atomic.Int32
	w, err := New([]string{pages, ""}, 50*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(pages, "about.md"), []byte("# About"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestRun_DirectoryCreatedAfterStart(t *testing.T) {
	base := t.TempDir()
	pages := filepath.Join(base, "content", "pages")
	var builds atomic.Int32
	w, err := New([]string{pages}, 50*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.MkdirAll(pages, 0o750))
	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	after := builds.Load()

	require.NoError(t, os.WriteFile(filepath.Join(pages, "about.md"), []byte("# About"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() > after }, 3*time.Second, 20*time.Millisecond)
}

func TestRun_WatchesNestedDirectories(t *testing.T) {
	pages := t.TempDir()
	nested := filepath.Join(pages, "guides", "deep")
	require.NoError(t, os.MkdirAll(nested, 0o750))
	var builds atomic.Int32
	w, err := New([]string{pages}, 50*time.Millisecond, func(context.Context) error {
		builds.Add(1)
		return nil
	})
	require.NoError(t, err)
	stop := start(t, w)
	defer stop()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(nested, "one.md"), []byte("# One"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	after := builds.Load()

	// A subdirectory created while watching is picked up too.
	fresh := filepath.Join(pages, "fresh")
	require.NoError(t, os.Mkdir(fresh, 0o750))
	require.Eventually(t, func() bool { return builds.Load() > after }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	after = builds.Load()
	require.NoError(t, os.WriteFile(filepath.Join(fresh, "two.md"), []byte("# Two"), 0o600))
	require.Eventually(t, func() bool { return builds.Load() > after }, 3*time.Second, 20*time.Millisecond)
}

func TestRelevant(t *testing.T) {
	w, err := New([]string{"/srv/in/keywords.json", "/srv/pages", "/srv/pages"}, 0, nil)
	require.NoError(t, err)
	assert.Len(t, w.roots, 2)

	assert.True(t, w.relevant(fsnotify.Event{Name: "/srv/in/keywords.json", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/srv/in/keywords.json", Op: fsnotify.Chmod}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/srv/pages", Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/srv/pages/about.md", Op: fsnotify.Create}))
	assert.True(t, w.relevant(fsnotify.Event{Name: "/srv/pages/guides/buying.md", Op: fsnotify.Write}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/srv/pages-old/about.md", Op: fsnotify.Create}))
	assert.False(t, w.relevant(fsnotify.Event{Name: "/srv/in/other.json", Op: fsnotify.Write}))
	assert.True(t, w.leadsToRoot("/srv"))
	assert.False(t, w.leadsToRoot("/srv/pages"))
	assert.Equal(t, DefaultDebounce, w.debounce)
}
