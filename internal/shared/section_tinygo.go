//go:build tinygo

package shared

import "runtime/interrupt"

// Section guards the shared state by masking every interrupt for the
// duration of the critical section.
type Section struct{}

// CS proves that its holder is inside the critical section
type CS struct {
	s     *Section
	state interrupt.State
}

// Enter starts a critical section. The caller must Exit it, normally with
// defer.
func (s *Section) Enter() CS {
	return CS{s: s, state: interrupt.Disable()}
}

// Exit ends the critical section, restoring the previous interrupt mask
func (cs CS) Exit() {
	interrupt.Restore(cs.state)
}
