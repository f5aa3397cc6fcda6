// Package watch re-runs scenarios when their files change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last change before a batch is delivered.
// editors usually produce several events for a single save.
const DefaultDebounce = 300 * time.Millisecond

// Logger receives watcher diagnostics.
type Logger interface {
	Print(format string, args ...any)
	Warn(format string, args ...any)
}

// Options configures the watcher.
type Options struct {
	Debounce time.Duration
	Log      Logger
}

// Watcher monitors scenario directories for changed yaml files.
type Watcher struct {
	fsw      *fsnotify.Watcher
	dirs     []string
	debounce time.Duration
	log      Logger
}

// New creates a watcher for dirs. All directories must exist.
func New(dirs []string, opts Options) (*Watcher, error) {
	if len(dirs) == 0 {
		return nil, errors.New("no directories to watch")
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &Watcher{fsw: fsw, debounce: opts.Debounce, log: opts.Log}
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolve %s: %w", d, err)
		}
		if err := fsw.Add(abs); err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("watch %s: %w", abs, err)
		}
		w.dirs = append(w.dirs, abs)
	}
	return w, nil
}

// Dirs returns the watched directories as absolute paths.
func (w *Watcher) Dirs() []string {
	return w.dirs
}

// Run delivers batches of changed scenario files to onChange until ctx is canceled.
// onChange is called from the Run goroutine, changes arriving while it runs are batched for the next call.
// Run closes the underlying watcher on return.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, files []string)) error {
	defer w.fsw.Close()

	pending := map[string]struct{}{}
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			if w.log != nil {
				w.log.Warn("watcher error: %v", err)
			}

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			sort.Strings(files)
			clear(pending)
			if len(files) == 0 {
				continue
			}
			if w.log != nil {
				w.log.Print("changed: %s", strings.Join(files, ", "))
			}
			onChange(ctx, files)
		}
	}
}

// relevant reports whether the event writes a yaml file. Saving through a temp file
// shows up as a create of the target name.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(ev.Name))
	return ext == ".yml" || ext == ".yaml"
}
