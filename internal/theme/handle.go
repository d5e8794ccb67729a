package swatch

import (
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// handleEventFunc is invoked at most once, after the handle has torn itself
// down, with the path that changed and the operation that fired.
type handleEventFunc func(path string, op fsnotify.Op)

// WatchHandle owns the watch for exactly one file. It is one-shot: the first
// write, truncate, delete, or rename on the path fires the handler once and
// leaves the handle inert. Continuous observation is the orchestrator's job,
// by creating a fresh handle after every fire.
//
// One-shot semantics are deliberate: editors commonly replace a file on save
// rather than writing in place, which invalidates the watched inode. Tearing
// the registration down on every fire and re-opening the path is the only way
// to keep observing across such replacements.
type WatchHandle struct {
	path   string
	fw     *fsnotify.Watcher
	logger *zap.Logger

	// cancelOnce guards the close of fw so the underlying descriptor is
	// released exactly once, whichever of Cancel or the event loop wins.
	cancelOnce sync.Once
	cancelled  bool
	mu         sync.Mutex
}

// newWatchHandle opens path for notifications and starts the delivery
// goroutine. onEvent runs on that goroutine after teardown of this handle.
func newWatchHandle(path string, logger *zap.Logger, onEvent handleEventFunc) (*WatchHandle, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, &WatchCreationError{Path: path, Err: err}
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, &WatchCreationError{Path: path, Err: err}
	}

	h := &WatchHandle{path: path, fw: fw, logger: logger}
	go h.run(onEvent)
	return h, nil
}

// Path returns the absolute path this handle watches.
func (h *WatchHandle) Path() string { return h.path }

// Cancelled reports whether the handle has been torn down, either by Cancel
// or by delivering its one event.
func (h *WatchHandle) Cancelled() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancelled
}

// Cancel tears the watch down. Idempotent; safe to call while an event is in
// flight. After Cancel returns no handler will start for this handle.
func (h *WatchHandle) Cancel() {
	h.cancelOnce.Do(func() {
		h.mu.Lock()
		h.cancelled = true
		h.mu.Unlock()
		if err := h.fw.Close(); err != nil {
			h.logger.Warn("closing watch", zap.String("path", h.path), zap.Error(err))
		}
	})
}

// run waits for the first qualifying event, tears the handle down, then
// invokes onEvent. Non-qualifying events (chmod) are skipped. Errors from the
// notification channel are logged and the loop keeps waiting.
func (h *WatchHandle) run(onEvent handleEventFunc) {
	for {
		select {
		case ev, ok := <-h.fw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// Tear down before notifying so the orchestrator can re-arm
			// the path without racing this handle's registration.
			fired := false
			h.cancelOnce.Do(func() {
				h.mu.Lock()
				h.cancelled = true
				h.mu.Unlock()
				if err := h.fw.Close(); err != nil {
					h.logger.Warn("closing fired watch", zap.String("path", h.path), zap.Error(err))
				}
				fired = true
			})
			if fired && onEvent != nil {
				h.logger.Debug("watch fired",
					zap.String("path", h.path),
					zap.String("op", ev.Op.String()),
				)
				onEvent(h.path, ev.Op)
			}
			return

		case err, ok := <-h.fw.Errors:
			if !ok {
				return
			}
			h.logger.Warn("watch error", zap.String("path", h.path), zap.Error(err))
		}
	}
}
