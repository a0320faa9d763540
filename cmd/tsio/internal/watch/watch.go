// Package watch reruns a function when input files change.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls a function after any watched file is written or created.
type Watcher struct {
	// Debounce is the quiet period before a change fires. Defaults to
	// DefaultDebounce.
	Debounce time.Duration

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	paths map[string]bool
	dirs  []string
}

// New returns a Watcher for paths. The parent directories are watched rather
// than the files, so replacing a file by rename is seen as well.
func New(paths ...string) (*Watcher, error) {
	w := &Watcher{paths: make(map[string]bool)}
	seen := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, errors.Wrapf(err, "resolve %s", p)
		}
		w.paths[abs] = true
		if dir := filepath.Dir(abs); !seen[dir] {
			seen[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.paths) == 0 {
		return nil, errors.New("nothing to watch")
	}
	return w, nil
}

// Run blocks until ctx is done, calling fn once per debounced batch of
// changes. Calls to fn never overlap.
func (w *Watcher) Run(ctx context.Context, fn func(context.Context)) error {
	logger := w.Logger
	if logger == nil {
		logger = slog.Default()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create file watcher")
	}
	defer fw.Close()
	for _, dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return errors.Wrapf(err, "watch %s", dir)
		}
	}

	var (
		mu    sync.Mutex
		run   sync.Mutex
		timer *time.Timer
		wg    sync.WaitGroup
	)
	schedule := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		wg.Add(1)
		timer = time.AfterFunc(debounce, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			run.Lock()
			defer run.Unlock()
			fn(ctx)
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil && timer.Stop() {
			wg.Done()
		}
		mu.Unlock()
		wg.Wait()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !w.paths[abs] {
				continue
			}
			logger.Debug("input changed", slog.String("file", event.Name), slog.String("op", event.Op.String()))
			schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", slog.String("error", err.Error()))
		}
	}
}
