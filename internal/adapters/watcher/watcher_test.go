package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/watcher"
	"go.trai.ch/stamp/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Info(string) {}
func (nopLogger) Warn(string) {}
func (nopLogger) Error(error) {}

func TestWatcher_ReportsOnlyWatchedFiles(t *testing.T) {
	dir := t.TempDir()
	template := filepath.Join(dir, "sw.template.ts")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(template, []byte("v1"), 0o600))

	w := watcher.NewWatcher(nopLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		_ = w.Close()
	})

	require.NoError(t, w.Watch(ctx, template))

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	require.NoError(t, os.WriteFile(template, []byte("v2"), 0o600))

	got := make(chan ports.WatchEvent, 1)
	go func() {
		for ev := range w.Events() {
			got <- ev
			return
		}
	}()

	select {
	case ev := <-got:
		assert.Equal(t, filepath.Clean(template), ev.Path)
	case <-time.After(5 * time.Second):
		t.Fatal("no event for the watched file")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w := watcher.NewWatcher(nopLogger{})
	t.Cleanup(func() { _ = w.Close() })

	err := w.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "sw.template.ts"))
	assert.ErrorContains(t, err, "failed to watch directory")
}

func TestWatcher_CloseBeforeWatch(t *testing.T) {
	w := watcher.NewWatcher(nopLogger{})
	assert.NoError(t, w.Close())
}
