package watcher

import (
	"sort"
	"sync"
	"time"
)

// Op is the kind of a file change.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	}
	return "unknown"
}

// Change is the net effect on one path within a debounce window.
type Change struct {
	Path string
	Op   Op
}

// Debouncer collects changes and emits them as one batch, sorted by path, after a quiet period.
// Changes to the same path are merged: a write after a create stays a create, and a file
// created and removed within the window produces no change at all.
type Debouncer struct {
	interval time.Duration
	changes  map[string]Op
	mu       sync.Mutex
	timer    *time.Timer
	output   chan []Change
}

// NewDebouncer creates a debouncer with the given quiet interval.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{
		interval: interval,
		changes:  make(map[string]Op),
		output:   make(chan []Change, 16),
	}
}

// Output returns the channel receiving batches.
func (d *Debouncer) Output() <-chan []Change {
	return d.output
}

// Add records a change and restarts the quiet period.
func (d *Debouncer) Add(path string, op Op) {
	d.mu.Lock()
	defer d.mu.Unlock()

	previous, seen := d.changes[path]
	switch {
	case seen && previous == OpCreate && op == OpWrite:
		// still a create
	case seen && previous == OpCreate && (op == OpRemove || op == OpRename):
		delete(d.changes, path)
	default:
		d.changes[path] = op
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.changes) == 0 {
		return
	}

	batch := make([]Change, 0, len(d.changes))
	for path, op := range d.changes {
		batch = append(batch, Change{Path: path, Op: op})
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	d.changes = make(map[string]Op)
	d.output <- batch
}
