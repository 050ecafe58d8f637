package service

import "sync"

// gameLocks serializes turn execution per game. Acquisition is non-blocking:
// a caller that loses the race simply does not run. Entries are reference
// counted and removed once no caller holds or waits on them, so the map does
// not grow with the number of games ever played.
type gameLocks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{entries: make(map[string]*lockEntry)}
}

// TryAcquire attempts to take the lock for a game. On success it returns a
// release func that is safe to call exactly once from any exit path.
func (l *gameLocks) TryAcquire(gameID string) (func(), bool) {
	l.mu.Lock()
	e := l.entries[gameID]
	if e == nil {
		e = &lockEntry{}
		l.entries[gameID] = e
	}
	e.refs++
	l.mu.Unlock()

	if !e.mu.TryLock() {
		l.releaseRef(gameID, e)
		return nil, false
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			e.mu.Unlock()
			l.releaseRef(gameID, e)
		})
	}
	return release, true
}

func (l *gameLocks) releaseRef(gameID string, e *lockEntry) {
	l.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, gameID)
	}
	l.mu.Unlock()
}

// size reports the number of live lock entries, for tests.
func (l *gameLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
