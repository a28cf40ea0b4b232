// Package display multiplexes a frame onto the LED matrix one row at a time.
//
// A Display is not safe for concurrent use on its own. Every method is meant
// to be called from inside the critical section that guards the shared
// state, from the refresh interrupt (HandleEvent) and the animation tick
// (Show, Clear) alike.
package display

import (
	"time"

	"github.com/fcurrie/microbit-led-golang/internal/periodic"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// SlotDuration returns how long each row stays lit so that all rows are
// refreshed refreshHz times per second
func SlotDuration(refreshHz int) time.Duration {
	if refreshHz <= 0 {
		return 0
	}
	return time.Second / time.Duration(types.Rows*refreshHz)
}

// Display owns the current frame and the row cursor
type Display struct {
	lines  types.Lines
	source periodic.Source
	frame  types.Frame
	shown  bool
	row    int
	faults uint32
}

// New creates a display driving lines, rescheduled by source
func New(lines types.Lines, source periodic.Source) *Display {
	return &Display{
		lines:  lines,
		source: source,
	}
}

// HandleEvent is the refresh interrupt: it acknowledges the event, lights
// the lit cells of the current row, advances to the next row and rearms the
// refresh source. A display that was never shown a frame drives blank rows.
func (d *Display) HandleEvent() {
	d.source.ClearEvent()

	var cells [types.Cols]bool
	if d.shown {
		cells = d.frame[d.row]
	}
	if err := d.lines.Drive(d.row, cells); err != nil {
		d.faults++
	}

	d.row++
	if d.row == types.Rows {
		d.row = 0
	}
	d.source.Rearm()
}

// Show installs f as the current frame
func (d *Display) Show(f types.Frame) {
	d.frame = f
	d.shown = true
}

// Clear installs the blank frame
func (d *Display) Clear() {
	d.frame = types.Frame{}
	d.shown = true
}

// Frame returns a copy of the current frame
func (d *Display) Frame() types.Frame {
	return d.frame
}

// Shown reports whether a frame has been installed yet
func (d *Display) Shown() bool {
	return d.shown
}

// Row returns the row the next refresh event drives
func (d *Display) Row() int {
	return d.row
}

// Faults returns the number of line writes that failed
func (d *Display) Faults() uint32 {
	return d.faults
}

// Off turns every LED off. It is meant for shutdown, after the refresh
// source has stopped.
func (d *Display) Off() error {
	return d.lines.Blank()
}
