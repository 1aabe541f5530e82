// Package watch reports changes to the served directory while the server runs.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// DefaultDebounce coalesces editor save bursts into one report.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a directory tree and reports changed paths after a
// quiet period, so the person running the demo knows when to reload the
// phone's browser.
type Watcher struct {
	root          string
	watcher       *fsnotify.Watcher
	debounceDelay time.Duration
	logger        zerolog.Logger

	// OnChange receives the root-relative paths changed since the last
	// report. Defaults to logging them.
	OnChange func(paths []string)

	mu        sync.Mutex
	pending   map[string]struct{}
	debounced func(f func())
}

// New creates a watcher for root. Hidden directories are skipped.
func New(root string, logger zerolog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		root:          root,
		watcher:       fw,
		debounceDelay: DefaultDebounce,
		logger:        logger.With().Str("component", "watch").Logger(),
		pending:       make(map[string]struct{}),
		debounced:     debounce.New(DefaultDebounce),
	}
	w.OnChange = w.logChanges
	return w, nil
}

// SetDebounce overrides the quiet period before a report.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounceDelay = d
	w.debounced = debounce.New(d)
}

// Start blocks until ctx is canceled. It should be run in its own goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Error closing watcher")
		}
		w.logger.Debug().Msg("Stopped watching served directory")
	}()

	if err := w.addTree(w.root); err != nil {
		w.logger.Error().Err(err).Str("dir", w.root).Msg("Failed to watch served directory")
		return err
	}

	w.logger.Info().
		Str("dir", w.root).
		Dur("debounce", w.debounceDelay).
		Msg("Watching served directory for changes")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if event.Op == fsnotify.Chmod {
		return
	}

	if event.Op.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn().Err(err).Str("dir", event.Name).Msg("Failed to watch new directory")
			}
		}
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil {
		rel = event.Name
	}
	if hidden(rel) {
		return
	}

	w.logger.Debug().Str("op", event.Op.String()).Str("file", rel).Msg("Detected change")
	w.schedule(filepath.ToSlash(rel))
}

// schedule records path and restarts the quiet period.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	w.pending[path] = struct{}{}
	debounced := w.debounced
	w.mu.Unlock()

	debounced(w.flush)
}

func (w *Watcher) flush() {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}
	paths := lo.Keys(w.pending)
	w.pending = make(map[string]struct{})
	onChange := w.OnChange
	w.mu.Unlock()

	sort.Strings(paths)
	onChange(paths)
}

func (w *Watcher) logChanges(paths []string) {
	w.logger.Info().
		Strs("files", paths).
		Int("count", len(paths)).
		Msg("Served files changed, reload the browser to see them")
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.watcher.Add(path)
	})
}

// Close releases the underlying watcher without starting it.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func hidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
