package store

import "sync"

// subscribers is the listener list shared by both stores. Callbacks run
// outside the store lock so they may freely read store state.
type subscribers struct {
	mu  sync.RWMutex
	fns []func()
}

func (s *subscribers) add(fn func()) {
	s.mu.Lock()
	s.fns = append(s.fns, fn)
	s.mu.Unlock()
}

func (s *subscribers) notify() {
	s.mu.RLock()
	fns := make([]func(), len(s.fns))
	copy(fns, s.fns)
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
