package plugin

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherRediscoversOnManifestChange(t *testing.T) {
	dir := t.TempDir()
	staging := t.TempDir()
	writeManifest(t, staging, "heatmap", "name: heatmap\nversion: 1.0.0\n")

	r := NewRegistry()
	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(r, dir, nil, 1, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(stopped)
	}()

	// Moving a ready plugin directory into place generates a single
	// create event with the manifest already readable.
	require.NoError(t, os.Rename(filepath.Join(staging, "heatmap"), filepath.Join(dir, "heatmap")))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for plugin re-discovery")
	}

	p, ok := r.Get("heatmap")
	require.True(t, ok)
	assert.Equal(t, "1.0.0", p.Version)

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestWatcherRespectsDisabledList(t *testing.T) {
	dir := t.TempDir()
	staging := t.TempDir()
	writeManifest(t, staging, "heatmap", "name: heatmap\nversion: 1.0.0\n")

	r := NewRegistry()
	reloaded := make(chan struct{}, 1)
	w, err := NewWatcher(r, dir, []string{"heatmap"}, 1, func() {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	require.NoError(t, os.Rename(filepath.Join(staging, "heatmap"), filepath.Join(dir, "heatmap")))

	select {
	case <-reloaded:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for plugin re-discovery")
	}

	_, ok := r.Get("heatmap")
	assert.False(t, ok)
}
