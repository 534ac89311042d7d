// Package watcher reports debounced changes below a tree root so the import graph can be
// rebuilt while the server runs.
package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultInterval is the quiet period before a batch of changes is emitted.
const DefaultInterval = 200 * time.Millisecond

// IgnoreChecker decides which paths are not watched.
type IgnoreChecker interface {
	ShouldIgnoreDir(absolutePath string) bool
	ShouldIgnore(absolutePath string) bool
}

// Options configures a Watcher.
type Options struct {
	RootDir string
	Ignore  IgnoreChecker
	// Relevant, when set, drops changes to paths for which it returns false.
	Relevant func(path string) bool
	Interval time.Duration
	Logger   *slog.Logger
}

// Watcher watches every non-ignored directory below a root.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	debouncer *Debouncer
	options   Options
	logger    *slog.Logger
}

// New creates a recursive watcher and registers the directories below options.RootDir.
func New(options Options) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if options.Interval <= 0 {
		options.Interval = DefaultInterval
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		debouncer: NewDebouncer(options.Interval),
		options:   options,
		logger:    logger,
	}

	err = filepath.WalkDir(options.RootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != options.RootDir && options.Ignore.ShouldIgnoreDir(path) {
			return filepath.SkipDir
		}
		if watchErr := fsWatcher.Add(path); watchErr != nil {
			w.logger.Warn("failed to watch directory", "path", path, "error", watchErr)
		}
		return nil
	})
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}
	return w, nil
}

// Changes returns the channel of debounced change batches.
func (w *Watcher) Changes() <-chan []Change {
	return w.debouncer.Output()
}

// Run forwards file system events to the debouncer until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if !w.options.Ignore.ShouldIgnoreDir(path) {
				if err := w.fsWatcher.Add(path); err != nil {
					w.logger.Warn("failed to watch new directory", "path", path, "error", err)
				}
			}
			return
		}
	}

	if w.options.Ignore.ShouldIgnore(path) {
		return
	}
	if w.options.Relevant != nil && !w.options.Relevant(path) {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create):
		op = OpCreate
	case event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove):
		op = OpRemove
	case event.Has(fsnotify.Rename):
		op = OpRename
	default:
		return
	}
	w.debouncer.Add(path, op)
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
