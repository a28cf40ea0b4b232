package shared

import (
	"errors"

	"github.com/fcurrie/microbit-led-golang/internal/animation"
	"github.com/fcurrie/microbit-led-golang/internal/display"
	"github.com/fcurrie/microbit-led-golang/internal/periodic"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrAlreadyInstalled is returned by a second Install
var ErrAlreadyInstalled = errors.New("shared: state already installed")

// State holds the display, the animation tick source and the animator. The
// zero value is empty and ready for Install; until then both handlers do
// nothing.
type State struct {
	section Section
	display Slot[*display.Display]
	tick    Slot[periodic.Source]
	anim    Slot[animation.Animator]
	ticks   uint64
}

// Install fills all three slots in a single critical section
func (s *State) Install(d *display.Display, tick periodic.Source, a animation.Animator) error {
	if d == nil || tick == nil || a == nil {
		return errors.New("shared: nil component")
	}

	cs := s.section.Enter()
	defer cs.Exit()

	if s.display.Filled(cs) || s.tick.Filled(cs) || s.anim.Filled(cs) {
		return ErrAlreadyInstalled
	}
	_ = s.display.Put(cs, d)
	_ = s.tick.Put(cs, tick)
	_ = s.anim.Put(cs, a)
	return nil
}

// Installed reports whether Install has run
func (s *State) Installed() bool {
	cs := s.section.Enter()
	defer cs.Exit()
	return s.display.Filled(cs)
}

// HandleRefresh is the refresh interrupt handler: it multiplexes the next
// row of the current frame.
func (s *State) HandleRefresh() {
	cs := s.section.Enter()
	defer cs.Exit()

	if d, ok := s.display.Get(cs); ok {
		d.HandleEvent()
	}
}

// HandleTick is the animation tick handler. The tick event is acknowledged
// in its own short critical section before the frame transition, so a slow
// transition can never make the same event fire twice.
func (s *State) HandleTick() {
	s.clearTick()

	cs := s.section.Enter()
	defer cs.Exit()

	d, ok := s.display.Get(cs)
	if !ok {
		return
	}
	a, ok := s.anim.Get(cs)
	if !ok {
		return
	}
	animation.Step(d, a)
	s.ticks++
}

func (s *State) clearTick() {
	cs := s.section.Enter()
	defer cs.Exit()

	if src, ok := s.tick.Get(cs); ok {
		src.ClearEvent()
	}
}

// Snapshot returns the installed frame and whether the display exists
func (s *State) Snapshot() (types.Frame, bool) {
	cs := s.section.Enter()
	defer cs.Exit()

	d, ok := s.display.Get(cs)
	if !ok {
		return types.Frame{}, false
	}
	return d.Frame(), true
}

// Ticks returns the number of frame transitions performed
func (s *State) Ticks() uint64 {
	cs := s.section.Enter()
	defer cs.Exit()
	return s.ticks
}

// Faults returns the number of failed line writes seen by the display
func (s *State) Faults() uint32 {
	cs := s.section.Enter()
	defer cs.Exit()

	if d, ok := s.display.Get(cs); ok {
		return d.Faults()
	}
	return 0
}

// Off turns the matrix off. Call it once both interrupt sources have
// stopped.
func (s *State) Off() error {
	cs := s.section.Enter()
	defer cs.Exit()

	if d, ok := s.display.Get(cs); ok {
		return d.Off()
	}
	return nil
}
