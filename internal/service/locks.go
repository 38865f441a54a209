package service

import "sync"

type refLock struct {
	sync.Mutex
	refs int
}

// roomLocks serializes operations on the same room inside one process.
// Entries are dropped once no goroutine holds or waits on them.
type roomLocks struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

func (l *roomLocks) lock(roomID string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*refLock)
	}
	rl, ok := l.locks[roomID]
	if !ok {
		rl = &refLock{}
		l.locks[roomID] = rl
	}
	rl.refs++
	l.mu.Unlock()

	rl.Lock()
	return func() {
		rl.Unlock()
		l.mu.Lock()
		rl.refs--
		if rl.refs == 0 {
			delete(l.locks, roomID)
		}
		l.mu.Unlock()
	}
}

func (l *roomLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
