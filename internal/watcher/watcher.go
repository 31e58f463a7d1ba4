// Package watcher observes the writable rules directory, coalesces
// bursts of file events with a fixed 250ms debounce, and runs every
// reload callback on one dedicated serial goroutine, so the loader is
// never re-entrant.
package watcher

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DebounceInterval is the coalescing window. Var, not const, so tests
// can shrink it.
var DebounceInterval = 250 * time.Millisecond

// interestingOps covers create, moved-to, close-write, delete, and
// moved-from. fsnotify folds close-write into Write and
// moved-to/moved-from into Create/Rename on most platforms, so
// Write/Create/Remove/Rename together are the faithful mapping.
const interestingOps = fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename

// Watcher observes the writable rules directory only — read-only
// directories are never watched, so a change there triggers no reload
// on its own.
type Watcher struct {
	fsw     *fsnotify.Watcher
	trigger chan struct{}
	done    chan struct{}
	log     zerolog.Logger
	onFire  func()
}

// New starts watching dir and returns a Watcher whose Start method
// runs the single serial executor that calls onReload after each
// debounced burst. The watcher itself performs no parsing.
func New(dir string, log zerolog.Logger, onReload func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, err
	}
	return &Watcher{
		fsw:     fsw,
		trigger: make(chan struct{}, 1),
		done:    make(chan struct{}),
		log:     log,
		onFire:  onReload,
	}, nil
}

// Start runs the event pump and the debounced serial executor. It
// blocks until Close is called, so callers run it in its own
// goroutine.
func (w *Watcher) Start() {
	go w.pumpEvents()
	w.debounceLoop()
}

func (w *Watcher) pumpEvents() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Ext(ev.Name) != ".xml" {
				continue
			}
			if ev.Op&interestingOps == 0 {
				continue
			}
			select {
			case w.trigger <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn().Err(err).Msg("ifw: watcher error")
		case <-w.done:
			return
		}
	}
}

// debounceLoop is the dedicated serial executor: every trigger
// restarts a 250ms timer; the timer firing (with no further triggers
// in the window) is the only thing that calls onFire, and it is never
// called concurrently with itself.
func (w *Watcher) debounceLoop() {
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case <-w.trigger:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(DebounceInterval)
			timerC = timer.C
		case <-timerC:
			timerC = nil
			w.log.Debug().Msg("ifw: debounce window elapsed, reloading")
			w.onFire()
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// Close stops the event pump and the serial executor and releases the
// underlying fsnotify watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
