package refresh

import "sync"

// sourceLocks is a table of per-source exclusive refresh locks. Entries
// are created lazily on acquire and removed on release, so the table only
// ever holds sources with a refresh in flight.
type sourceLocks struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func newSourceLocks() *sourceLocks {
	return &sourceLocks{held: make(map[int64]struct{})}
}

// tryAcquire takes the lock for a source without blocking; false means a
// refresh for this source is already in flight
func (l *sourceLocks) tryAcquire(sourceID int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, inFlight := l.held[sourceID]; inFlight {
		return false
	}
	l.held[sourceID] = struct{}{}
	return true
}

// release frees the lock for a source
func (l *sourceLocks) release(sourceID int64) {
	l.mu.Lock()
	delete(l.held, sourceID)
	l.mu.Unlock()
}
