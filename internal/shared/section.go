//go:build !tinygo

package shared

import "sync"

// Section guards the shared state. On the host every interrupt source runs
// on its own goroutine, so a mutex gives the exclusion that interrupt
// masking gives on the device.
type Section struct {
	mu sync.Mutex
}

// CS proves that its holder is inside the critical section
type CS struct {
	s *Section
}

// Enter starts a critical section. The caller must Exit it, normally with
// defer, and must not Enter again before that.
func (s *Section) Enter() CS {
	s.mu.Lock()
	return CS{s: s}
}

// Exit ends the critical section
func (cs CS) Exit() {
	cs.s.mu.Unlock()
}
