package syncer

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFeedLocks_MutualExclusionPerFeed(t *testing.T) {
	locks := newFeedLocks()

	var active, maxActive int32
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locks.lock(1)
			defer locks.unlock(1)

			cur := atomic.AddInt32(&active, 1)
			if cur > atomic.LoadInt32(&maxActive) {
				atomic.StoreInt32(&maxActive, cur)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&active, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxActive, "same feed must never run twice concurrently")
}

func TestFeedLocks_IndependentFeeds(t *testing.T) {
	locks := newFeedLocks()

	locks.lock(1)
	done := make(chan struct{})
	go func() {
		locks.lock(2) // different feed, must not block
		locks.unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different feed blocked")
	}
	locks.unlock(1)
}

func TestFeedLocks_ReclaimedWhenIdle(t *testing.T) {
	locks := newFeedLocks()

	locks.lock(1)
	locks.lock(2)
	locks.unlock(2)
	locks.unlock(1)

	locks.mu.Lock()
	defer locks.mu.Unlock()
	assert.Empty(t, locks.locks, "idle entries must be removed")
}
