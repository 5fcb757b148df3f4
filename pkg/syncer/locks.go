package syncer

import "sync"

// feedLocks serializes work per feed. Locks are created lazily on first use
// and removed once the last holder releases them, so the map stays bounded
// by the number of feeds currently syncing.
type feedLocks struct {
	mu    sync.Mutex
	locks map[int64]*feedLock
}

type feedLock struct {
	mu   sync.Mutex
	refs int
}

func newFeedLocks() *feedLocks {
	return &feedLocks{locks: make(map[int64]*feedLock)}
}

// lock acquires the mutex for the given feed, blocking while another
// goroutine holds it.
func (l *feedLocks) lock(feedID int64) {
	l.mu.Lock()
	e, ok := l.locks[feedID]
	if !ok {
		e = &feedLock{}
		l.locks[feedID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

// unlock releases the feed mutex and drops the map entry when nobody else
// is waiting on it.
func (l *feedLocks) unlock(feedID int64) {
	l.mu.Lock()
	e := l.locks[feedID]
	e.refs--
	if e.refs == 0 {
		delete(l.locks, feedID)
	}
	l.mu.Unlock()

	e.mu.Unlock()
}
