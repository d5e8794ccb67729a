package swatch

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// UpdateFunc receives the outcome of every reload attempt. On success theme
// is the freshly composed artifact and err is nil. On failure theme is the
// last artifact that composed successfully and err describes what went wrong.
// Implementations must be safe to call from a background goroutine.
type UpdateFunc func(theme *Theme, err error)

// ObserverOptions configures an Observer.
type ObserverOptions struct {
	// Logger to use. When nil a logger is built from LogLevel.
	Logger *zap.Logger

	// LogLevel for the built-in logger. Ignored when Logger is set.
	LogLevel LogLevel

	// Compose builds the artifact from the resolved paths. Defaults to
	// DefaultCompose.
	Compose ComposeFunc

	// RewatchAttempts bounds how often re-opening a path is retried after a
	// watch fires. Atomic-save editors delete and recreate files, so the
	// path can be briefly absent when the delete event arrives.
	RewatchAttempts int

	// RewatchDelay is the pause between re-open attempts.
	RewatchDelay time.Duration
}

const (
	defaultRewatchAttempts = 10
	defaultRewatchDelay    = 50 * time.Millisecond
)

// Observer watches every file of one theme and re-composes the artifact on
// change. It is created by Observe and released with Close.
//
// Per watched path the lifecycle loops unwatched -> watching -> fired ->
// watching with a fresh handle, until Close moves every path to closed.
// All reactions to change events run on one serial delivery goroutine, so
// for any single event the sequence re-arm, publish to the WatchSet, reload,
// notify completes before the next event is taken. Raw event reception stays
// concurrent across paths; only the reactions are serialized.
type Observer struct {
	root     string
	paths    []string
	compose  ComposeFunc
	onUpdate UpdateFunc
	logger   *zap.Logger

	rewatchAttempts int
	rewatchDelay    time.Duration

	set       *WatchSet
	events    chan string
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	mu      sync.RWMutex
	theme   *Theme
	loadErr error
}

// Observe resolves source's filenames under root, composes the initial theme
// synchronously, and starts watching every resolved path. onUpdate fires on
// every subsequent reload attempt; the initial artifact is read from Theme.
//
// Construction fails, and nothing keeps running, when root is not a
// directory, when resolution hits a missing or ambiguous filename, when the
// initial compose fails, or when any path cannot be watched.
func Observe(root string, source Source, onUpdate UpdateFunc, opts ObserverOptions) (*Observer, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("swatch: source root %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("swatch: source root %s is not a directory", root)
	}

	names := source.ThemeFiles()
	if len(names) == 0 {
		return nil, errors.New("swatch: theme lists no files")
	}

	logger := opts.Logger
	if logger == nil {
		logger = createLogger(opts.LogLevel)
	}
	compose := opts.Compose
	if compose == nil {
		compose = DefaultCompose
	}

	paths, err := ResolvePaths(root, names)
	if err != nil {
		return nil, err
	}

	theme, err := LoadTheme(paths, compose)
	if err != nil {
		return nil, err
	}

	o := &Observer{
		root:            root,
		paths:           paths,
		compose:         compose,
		onUpdate:        onUpdate,
		logger:          logger,
		rewatchAttempts: opts.RewatchAttempts,
		rewatchDelay:    opts.RewatchDelay,
		set:             NewWatchSet(),
		events:          make(chan string, len(paths)*2),
		done:            make(chan struct{}),
		theme:           theme,
	}
	if o.rewatchAttempts <= 0 {
		o.rewatchAttempts = defaultRewatchAttempts
	}
	if o.rewatchDelay <= 0 {
		o.rewatchDelay = defaultRewatchDelay
	}

	for _, path := range paths {
		h, err := newWatchHandle(path, logger, o.enqueue)
		if err != nil {
			o.set.Close()
			return nil, err
		}
		o.set.Replace(h)
	}

	o.wg.Add(1)
	go o.deliver()

	logger.Debug("observer started",
		zap.String("root", root),
		zap.Int("paths", len(paths)),
	)
	return o, nil
}

// Root returns the source root the observer was created with.
func (o *Observer) Root() string { return o.root }

// Paths returns the resolved absolute paths being watched, in theme order.
// The dependency set is fixed for the observer's lifetime.
func (o *Observer) Paths() []string { return o.paths }

// Theme returns the most recently successfully composed artifact. A failed
// reload does not change it.
func (o *Observer) Theme() *Theme {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.theme
}

// Err returns the error from the most recent reload attempt, or nil when the
// last attempt succeeded.
func (o *Observer) Err() error {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.loadErr
}

// WatchedPaths returns the paths with a currently live watch. Normally that
// is every resolved path; a path drops out only when re-arming it failed.
func (o *Observer) WatchedPaths() []string {
	snap := o.set.Snapshot()
	paths := make([]string, 0, len(snap))
	for p := range snap {
		paths = append(paths, p)
	}
	return paths
}

// Close stops watching. Every outstanding watch is cancelled, every
// descriptor closed exactly once, and no callback starts after Close begins;
// events racing teardown are dropped. Idempotent.
func (o *Observer) Close() {
	o.closeOnce.Do(func() {
		close(o.done)
		// Wait for the delivery goroutine first: it is the only other
		// mutator of the set, so closing after it exits cannot race a
		// re-arm publishing a fresh handle.
		o.wg.Wait()
		o.set.Close()
		o.logger.Debug("observer closed", zap.String("root", o.root))
	})
}

// enqueue hands a fired path to the delivery goroutine. Runs on the fired
// handle's own goroutine; when teardown has begun the event is dropped.
func (o *Observer) enqueue(path string, op fsnotify.Op) {
	select {
	case <-o.done:
	case o.events <- path:
	}
}

// deliver is the serial execution context for every reaction to a change
// event. One event is fully processed, through re-arm, WatchSet publication,
// reload, and notification, before the next is taken.
func (o *Observer) deliver() {
	defer o.wg.Done()
	for {
		select {
		case <-o.done:
			return
		case path := <-o.events:
			o.handleEvent(path)
		}
	}
}

// handleEvent re-arms the watch for path, reloads the theme over the full
// resolved set, and notifies the caller. The fired handle already closed its
// own descriptor; by the time the callback observes the update the fresh
// watch is live, so an immediate re-edit is never missed.
func (o *Observer) handleEvent(path string) {
	select {
	case <-o.done:
		return
	default:
	}

	watchErr := o.rewatch(path)

	theme, loadErr := LoadTheme(o.paths, o.compose)

	o.mu.Lock()
	if loadErr == nil {
		o.theme = theme
		o.loadErr = nil
		o.logger.Info("theme reloaded",
			zap.String("path", path),
			zap.Int("keys", theme.Len()),
		)
	} else {
		// Keep the last good artifact; only the error is refreshed.
		o.loadErr = loadErr
		theme = o.theme
		o.logger.Warn("theme reload failed",
			zap.String("path", path),
			zap.Error(loadErr),
		)
	}
	o.mu.Unlock()

	select {
	case <-o.done:
		return
	default:
	}
	if o.onUpdate != nil {
		o.onUpdate(theme, errors.Join(watchErr, loadErr))
	}
}

// rewatch opens a fresh handle for path and publishes it to the WatchSet,
// retrying briefly because atomic-save editors leave a short window where
// the path does not exist. On definitive failure the path is dropped from
// the set and stays unwatched; the observer keeps serving its other paths.
func (o *Observer) rewatch(path string) error {
	var err error
	for attempt := 0; attempt < o.rewatchAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-o.done:
				return nil
			case <-time.After(o.rewatchDelay):
			}
		}

		var h *WatchHandle
		h, err = newWatchHandle(path, o.logger, o.enqueue)
		if err != nil {
			continue
		}

		select {
		case <-o.done:
			// Teardown won the race; the fresh handle must not outlive it.
			h.Cancel()
			return nil
		default:
		}

		if old := o.set.Replace(h); old != nil {
			old.Cancel()
		}
		return nil
	}

	o.set.Remove(path)
	o.logger.Warn("path left unwatched",
		zap.String("path", path),
		zap.Error(err),
	)
	return err
}
