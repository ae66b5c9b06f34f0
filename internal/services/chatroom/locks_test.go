package chatroom

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"chatvault/internal/domain"
)

func TestKeyLocks_ReleasesEntries(t *testing.T) {
	l := newKeyLocks()

	unlockA := l.lock("a")
	unlockB := l.lock("b")
	assert.Equal(t, 2, l.size())

	unlockA()
	unlockB()
	assert.Equal(t, 0, l.size())
}

func TestKeyLocks_SerializesSameKey(t *testing.T) {
	l := newKeyLocks()
	unlock := l.lock("room")

	acquired := make(chan struct{})
	go func() {
		release := l.lock("room")
		close(acquired)
		release()
	}()

	select {
	case <-acquired:
		t.Fatal("second holder acquired a held key")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("waiter never acquired the released key")
	}
}

func TestKeyLocks_IndependentKeys(t *testing.T) {
	l := newKeyLocks()
	unlock := l.lock("a")
	defer unlock()

	done := make(chan struct{})
	go func() {
		l.lock("b")()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("distinct key blocked")
	}
}

func TestKeyLocks_ConcurrentCounter(t *testing.T) {
	l := newKeyLocks()
	var (
		wg      sync.WaitGroup
		counter int
	)
	key := domain.StorageKey("shared")
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.lock(key)
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, l.size())
}
