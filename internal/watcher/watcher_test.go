package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsReloadTriggerFiltersExtensions(t *testing.T) {
	assert.True(t, isReloadTrigger(fsnotify.Event{Name: "index.html", Op: fsnotify.Write}))
	assert.True(t, isReloadTrigger(fsnotify.Event{Name: "backend.PY", Op: fsnotify.Create}))
	assert.False(t, isReloadTrigger(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}))
	assert.False(t, isReloadTrigger(fsnotify.Event{Name: "index.html", Op: fsnotify.Chmod}))
}

func TestWatchDebouncesBurstOfWrites(t *testing.T) {
	dir := t.TempDir()
	entry := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(entry, []byte("<html></html>"), 0o644))

	w := New(200 * time.Millisecond)
	require.NoError(t, w.Watch(context.Background(), "clock", dir))
	defer w.Stop()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(entry, []byte("<html>v"+string(rune('0'+i))+"</html>"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}

	assert.Empty(t, w.PollReloads(), "debounce window has not elapsed yet")

	time.Sleep(300 * time.Millisecond)
	reloads := w.PollReloads()
	require.Len(t, reloads, 1)
	assert.Equal(t, "clock", reloads[0])

	assert.Empty(t, w.PollReloads(), "queue drains on poll")
}

func TestStopWidgetIsIdempotentForUnknownName(t *testing.T) {
	w := New(50 * time.Millisecond)
	w.StopWidget("does-not-exist")
}
