package service

import "sync"

// slotLocks serializes booking and cancellation per time slot inside this
// process. The database row lock covers multi-instance deployments; this
// keeps a single binary honest even on sqlite, where FOR UPDATE does not
// exist. Entries are refcounted so the map does not grow with slot count.
type slotLocks struct {
	mu    sync.Mutex
	slots map[string]*slotLock
}

type slotLock struct {
	mu   sync.Mutex
	refs int
}

func newSlotLocks() *slotLocks {
	return &slotLocks{slots: make(map[string]*slotLock)}
}

// Lock acquires the lock for a slot ID and returns its release func.
func (l *slotLocks) Lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.slots[id]
	if !ok {
		entry = &slotLock{}
		l.slots[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.slots, id)
		}
		l.mu.Unlock()
	}
}
