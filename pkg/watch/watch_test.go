package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string) <-chan []string {
	t.Helper()

	w, err := New(root, zerolog.Nop())
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	changes := make(chan []string, 4)
	w.OnChange = func(paths []string) { changes <- paths }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give Start time to register the tree.
	time.Sleep(50 * time.Millisecond)
	return changes
}

func waitChange(t *testing.T, changes <-chan []string) []string {
	t.Helper()
	select {
	case paths := <-changes:
		return paths
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for change report")
		return nil
	}
}

func TestWatcher_ReportsWrites(t *testing.T) {
	root := t.TempDir()
	changes := startWatcher(t, root)

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.html"), []byte("<h1>hi</h1>"), 0o644))

	assert.Contains(t, waitChange(t, changes), "index.html")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	root := t.TempDir()
	changes := startWatcher(t, root)

	for _, name := range []string{"a.js", "b.css", "c.html"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644))
	}

	assert.ElementsMatch(t, []string{"a.js", "b.css", "c.html"}, waitChange(t, changes))
}

func TestWatcher_WatchesNewSubdirectories(t *testing.T) {
	root := t.TempDir()
	changes := startWatcher(t, root)

	sub := filepath.Join(root, "assets")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitChange(t, changes)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "app.js"), []byte("x"), 0o644))
	assert.Contains(t, waitChange(t, changes), "assets/app.js")
}

func TestWatcher_MissingRoot(t *testing.T) {
	w, err := New(filepath.Join(t.TempDir(), "gone"), zerolog.Nop())
	require.NoError(t, err)

	err = w.Start(context.Background())
	require.Error(t, err)
}

func TestHidden(t *testing.T) {
	assert.True(t, hidden(".git/HEAD"))
	assert.True(t, hidden("assets/.DS_Store"))
	assert.False(t, hidden("index.html"))
	assert.False(t, hidden("assets/app.js"))
}
