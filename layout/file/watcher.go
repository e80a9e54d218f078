package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/ardnew/chordkb/layout"
	"github.com/ardnew/chordkb/pkg"
)

// DefaultDebounce is the quiet period after the last file event before a
// reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher reloads a layout file into a [layout.Live] when the file changes.
// A file that fails to load leaves the current table in place and reports
// the error on [Watcher.Errors].
type Watcher struct {
	path     string
	live     *layout.Live
	debounce time.Duration

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timer    *time.Timer
	onReload []func(generation uint64)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	errs   chan error
}

// NewWatcher creates a watcher for path feeding live.
func NewWatcher(path string, live *layout.Live) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	return &Watcher{
		path:     path,
		live:     live,
		debounce: DefaultDebounce,
		ctx:      ctx,
		cancel:   cancel,
		errs:     make(chan error, 4),
	}
}

// SetDebounce changes the quiet period. It must be called before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// OnReload registers a callback invoked after each successful reload.
func (w *Watcher) OnReload(cb func(generation uint64)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReload = append(w.onReload, cb)
}

// Errors returns a channel of reload errors. Errors are dropped when the
// channel is full.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Start begins watching. The directory containing the file is watched so
// that editors replacing the file by rename are seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != nil {
		return pkg.ErrAlreadyRunning
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	w.watcher = fw

	w.wg.Add(1)
	go w.watchLoop(fw)
	pkg.LogInfo(pkg.ComponentLayout, "watching layout", "path", w.path)
	return nil
}

// Close stops watching and waits for the event loop to exit.
func (w *Watcher) Close() error {
	w.cancel()
	w.mu.Lock()
	fw := w.watcher
	w.watcher = nil
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	if fw == nil {
		return nil
	}
	err := fw.Close()
	w.wg.Wait()
	return err
}

func (w *Watcher) watchLoop(fw *fsnotify.Watcher) {
	defer w.wg.Done()
	name := filepath.Base(w.path)
	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	if w.ctx.Err() != nil {
		return
	}
	t, err := Load(w.path)
	if err != nil {
		w.report(fmt.Errorf("reload layout: %w", err))
		return
	}
	gen := w.live.Store(t)

	w.mu.Lock()
	callbacks := append([]func(uint64){}, w.onReload...)
	w.mu.Unlock()
	for _, cb := range callbacks {
		cb(gen)
	}
}

func (w *Watcher) report(err error) {
	pkg.LogWarn(pkg.ComponentLayout, "layout watch error", "path", w.path, "error", err)
	select {
	case w.errs <- err:
	default:
	}
}
