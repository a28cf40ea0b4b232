// Package shared owns the objects both interrupt handlers touch. Each lives
// in a single-owner slot that can only be reached from inside a critical
// section.
package shared

import "errors"

// ErrOccupied is returned when putting into a slot that already holds a value
var ErrOccupied = errors.New("shared: slot already filled")

// Free runs fn inside a critical section. The section is left on every exit
// path, panics included.
func (s *Section) Free(fn func(cs CS)) {
	cs := s.Enter()
	defer cs.Exit()
	fn(cs)
}

func (cs CS) check() {
	if cs.s == nil {
		panic("shared: slot accessed outside a critical section")
	}
}

// Slot holds at most one value. It is filled once and never emptied.
type Slot[T any] struct {
	v  T
	ok bool
}

// Put fills the slot
func (s *Slot[T]) Put(cs CS, v T) error {
	cs.check()
	if s.ok {
		return ErrOccupied
	}
	s.v = v
	s.ok = true
	return nil
}

// Get returns the value and whether the slot is filled. The value must not
// be kept past the end of the critical section.
func (s *Slot[T]) Get(cs CS) (T, bool) {
	cs.check()
	return s.v, s.ok
}

// With calls fn with the value if the slot is filled and reports whether it
// did
func (s *Slot[T]) With(cs CS, fn func(T)) bool {
	cs.check()
	if !s.ok {
		return false
	}
	fn(s.v)
	return true
}

// Filled reports whether the slot holds a value
func (s *Slot[T]) Filled(cs CS) bool {
	cs.check()
	return s.ok
}
