// Package watch reports changes to a set of profile files.
//
// A [Watcher] watches the directories that contain its files, because editors
// often save by writing a temporary file and renaming it over the original.
// Events for other files in those directories are ignored. Bursts of events
// are debounced into one batch, and the handler runs on the goroutine that
// called [Watcher.Run], so batches are handled one at a time.
//
//	w, err := watch.New(files, func(changes []watch.Change) {
//	    // re-run the pipeline
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	return w.Run(ctx)
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the watcher waits for more events before
// calling the handler.
const DefaultDebounce = 150 * time.Millisecond

// Op is the kind of change.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

// String returns the string representation of the operation.
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
	default:
		return "unknown"
	}
}

// Change is one debounced file change.
type Change struct {
	Path string
	Op   Op
	Time time.Time
}

// Handler receives a batch of changes, at most one per path.
type Handler func(changes []Change)

// Options configures a Watcher.
type Options struct {
	// Debounce is the quiet period that ends a batch. Default: DefaultDebounce.
	Debounce time.Duration

	// OnError receives errors reported by the file system watcher. The
	// watcher keeps running after an error.
	OnError func(error)
}

// Watcher watches a set of files.
type Watcher struct {
	fs       *fsnotify.Watcher
	handler  Handler
	debounce time.Duration
	onError  func(error)

	mu    sync.RWMutex
	files map[string]bool
	dirs  map[string]bool
}

// New creates a watcher for files. Paths are made absolute.
func New(files []string, handler Handler, opts *Options) (*Watcher, error) {
	if opts == nil {
		opts = &Options{}
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fs:       fsw,
		handler:  handler,
		debounce: debounce,
		onError:  opts.OnError,
		files:    make(map[string]bool),
		dirs:     make(map[string]bool),
	}
	if err := w.SetFiles(files); err != nil {
		_ = fsw.Close()
		return nil, err
	}
	return w, nil
}

// SetFiles replaces the watched set. A re-resolved profile can reference a
// different set of files than before; directories no longer needed are
// released.
func (w *Watcher) SetFiles(files []string) error {
	nextFiles := make(map[string]bool, len(files))
	nextDirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("watch %s: %w", f, err)
		}
		nextFiles[abs] = true
		nextDirs[filepath.Dir(abs)] = true
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for dir := range nextDirs {
		if w.dirs[dir] {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	for dir := range w.dirs {
		if !nextDirs[dir] {
			_ = w.fs.Remove(dir)
		}
	}
	w.files = nextFiles
	w.dirs = nextDirs
	return nil
}

// Files returns the number of watched files.
func (w *Watcher) Files() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.files)
}

func (w *Watcher) watches(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Run delivers batches to the handler until ctx is done or the watcher is
// closed. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		batch  []Change
		timer  *time.Timer
		timerC <-chan time.Time
	)
	stopTimer := func() {
		if timer != nil {
			timer.Stop()
			timer, timerC = nil, nil
		}
	}
	defer stopTimer()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.watches(filepath.Clean(event.Name)) || event.Op == fsnotify.Chmod {
				continue
			}
			batch = append(batch, Change{
				Path: filepath.Clean(event.Name),
				Op:   convertOp(event.Op),
				Time: time.Now(),
			})
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			if w.onError != nil {
				w.onError(err)
			}

		case <-timerC:
			stopTimer()
			changes := dedupe(batch)
			batch = nil
			if w.handler != nil && len(changes) > 0 {
				w.handler(changes)
			}
		}
	}
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}

// dedupe keeps the most recent change per path, in order of first appearance.
func dedupe(changes []Change) []Change {
	seen := make(map[string]int)
	out := make([]Change, 0, len(changes))
	for _, c := range changes {
		if i, ok := seen[c.Path]; ok {
			out[i] = c
			continue
		}
		seen[c.Path] = len(out)
		out = append(out, c)
	}
	return out
}
