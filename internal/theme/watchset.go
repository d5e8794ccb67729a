package swatch

import "sync"

// WatchSet owns the live WatchHandles of one observer, keyed by path. At most
// one live handle exists per path.
//
// The map is never mutated in place. Replace builds a copy with the single
// entry swapped and publishes it under the lock, so a caller that captured an
// earlier snapshot keeps reading a consistent collection while concurrent
// replacements proceed.
type WatchSet struct {
	mu      sync.RWMutex
	handles map[string]*WatchHandle
}

// NewWatchSet returns an empty WatchSet.
func NewWatchSet() *WatchSet {
	return &WatchSet{handles: map[string]*WatchHandle{}}
}

// Replace installs h as the handle for its path and returns the handle it
// displaced, or nil. The caller is responsible for cancelling the returned
// handle.
func (s *WatchSet) Replace(h *WatchHandle) *WatchHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.handles[h.Path()]
	next := make(map[string]*WatchHandle, len(s.handles)+1)
	for p, v := range s.handles {
		next[p] = v
	}
	next[h.Path()] = h
	s.handles = next
	return old
}

// Remove drops the handle for path without cancelling it and returns it, or
// nil when the path is not present.
func (s *WatchSet) Remove(path string) *WatchHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	old, ok := s.handles[path]
	if !ok {
		return nil
	}
	next := make(map[string]*WatchHandle, len(s.handles))
	for p, v := range s.handles {
		if p != path {
			next[p] = v
		}
	}
	s.handles = next
	return old
}

// Get returns the live handle for path, or nil.
func (s *WatchSet) Get(path string) *WatchHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handles[path]
}

// Len reports the number of live handles.
func (s *WatchSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.handles)
}

// Snapshot returns the current collection. The returned map must be treated
// as read-only; it stays internally consistent even as the set moves on.
func (s *WatchSet) Snapshot() map[string]*WatchHandle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.handles
}

// Close cancels every handle and empties the set. Safe to call more than
// once; each handle's descriptor is closed exactly once regardless.
func (s *WatchSet) Close() {
	s.mu.Lock()
	old := s.handles
	s.handles = map[string]*WatchHandle{}
	s.mu.Unlock()

	for _, h := range old {
		h.Cancel()
	}
}
