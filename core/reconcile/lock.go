package reconcile

import "sync"

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// Locks serializes work per key. The zero value is ready to use and idle
// keys hold no memory.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// Lock blocks until key is free and returns the function releasing it.
func (l *Locks) Lock(key string) (unlock func()) {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*keyLock)
	}
	k, ok := l.locks[key]
	if !ok {
		k = &keyLock{}
		l.locks[key] = k
	}
	k.refs++
	l.mu.Unlock()

	k.mu.Lock()
	return func() {
		k.mu.Unlock()
		l.mu.Lock()
		if k.refs--; k.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
