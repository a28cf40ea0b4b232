// Package animation paces frame changes: once per tick it moves the
// installed animator forward by exactly one frame.
package animation

import "github.com/fcurrie/microbit-led-golang/internal/types"

// Animator is a finite, restartable sequence of frames
type Animator interface {
	// Next returns the next frame
	Next() types.Frame
	// Finished reports whether the sequence is exhausted
	Finished() bool
	// Reset rewinds the sequence to its first frame
	Reset()
}

// Sink receives the frame transitions
type Sink interface {
	Show(types.Frame)
	Clear()
}

// Step performs the frame transition of one tick: the next frame of a while
// it has one, otherwise a blank frame and a rewind so the sequence plays
// again from the start on the following tick.
func Step(sink Sink, a Animator) {
	if !a.Finished() {
		sink.Show(a.Next())
		return
	}
	sink.Clear()
	a.Reset()
}

// Static shows the same frame forever
type Static types.Frame

// Next returns the frame
func (s Static) Next() types.Frame { return types.Frame(s) }

// Finished is always false
func (s Static) Finished() bool { return false }

// Reset does nothing
func (s Static) Reset() {}

// Intro shows a frame for a number of ticks before handing over to the
// next animator. It plays once; rewinding only rewinds next.
type Intro struct {
	frame  types.Frame
	remain int
	next   Animator
}

// NewIntro shows f for ticks ticks, then plays next
func NewIntro(f types.Frame, ticks int, next Animator) *Intro {
	return &Intro{frame: f, remain: ticks, next: next}
}

// Next returns the intro frame until it has been shown long enough
func (i *Intro) Next() types.Frame {
	if i.remain > 0 {
		i.remain--
		return i.frame
	}
	return i.next.Next()
}

// Finished reports whether the intro is over and next is exhausted
func (i *Intro) Finished() bool {
	return i.remain == 0 && i.next.Finished()
}

// Reset rewinds next
func (i *Intro) Reset() {
	i.next.Reset()
}
