package plugin

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/lenslab/lens/logging"
)

// Watcher watches the plugin directory and re-discovers external plugins
// when manifests change.
type Watcher struct {
	watcher    *fsnotify.Watcher
	registry   *Registry
	dir        string
	disabled   []string
	debounceMs int
	lastChange time.Time
	mu         sync.Mutex
	logger     *logrus.Entry
	onReload   func()
}

// NewWatcher creates a watcher over the plugin directory. The debounceMs
// parameter controls how long to wait before processing rapid changes; the
// onReload callback fires after each successful re-discovery.
func NewWatcher(registry *Registry, dir string, disabled []string, debounceMs int, onReload func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 100
	}

	return &Watcher{
		watcher:    watcher,
		registry:   registry,
		dir:        dir,
		disabled:   disabled,
		debounceMs: debounceMs,
		logger:     logging.NewLogger("plugin-watcher"),
		onReload:   onReload,
	}, nil
}

// Start begins watching for plugin changes. It blocks until the context is
// cancelled.
func (w *Watcher) Start(ctx context.Context) {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.logger.Debugf("fsnotify event: %s op=%v", event.Name, event.Op)

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove) != 0 {
				if isManifest(event.Name) || event.Op&fsnotify.Create != 0 {
					w.handleChange(event.Name)
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Errorf("Watcher error: %v", err)
		case <-ctx.Done():
			w.watcher.Close()
			return
		}
	}
}

func isManifest(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".yml") || strings.HasSuffix(base, ".yaml")
}

// handleChange re-discovers external plugins with debouncing.
func (w *Watcher) handleChange(file string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	elapsed := time.Since(w.lastChange)
	if elapsed < time.Duration(w.debounceMs)*time.Millisecond {
		w.logger.Debugf("Debounced: %s (only %v since last change)", filepath.Base(file), elapsed)
		return
	}
	w.lastChange = time.Now()

	w.logger.Infof("Plugin directory changed: %s", filepath.Base(file))

	w.registry.removeExternal()
	if err := w.registry.LoadDir(w.dir, w.disabled); err != nil {
		w.logger.WithError(err).Error("Plugin re-discovery failed")
		return
	}

	if w.onReload != nil {
		w.onReload()
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
