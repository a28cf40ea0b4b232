package compass

import (
	"errors"

	"github.com/fcurrie/microbit-led-golang/internal/sensor"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// Animator shows the arrow for the latest magnetometer reading. It polls
// the sensor once per tick and keeps showing the last arrow until new data
// arrives. When the sensor times out the matrix goes blank.
type Animator struct {
	poller *sensor.Poller
	cal    Calibration
	arrows [NorthWest + 1]types.Frame

	frame types.Frame
	dir   Direction
	valid bool
	err   error
}

// NewAnimator creates a compass animator reading from p. The arrows are
// rendered up front so Next never rasterizes.
func NewAnimator(p *sensor.Poller, cal Calibration) *Animator {
	a := &Animator{poller: p, cal: cal}
	for d := North; d <= NorthWest; d++ {
		a.arrows[d] = Arrow(d)
	}
	return a
}

// Next polls the sensor once and returns the frame to show
func (a *Animator) Next() types.Frame {
	r, ok, err := a.poller.Poll()
	switch {
	case errors.Is(err, sensor.ErrTimeout):
		a.valid = false
		a.frame = types.Frame{}
	case err != nil:
		a.err = err
	case ok:
		a.dir = a.cal.Point(r)
		a.valid = true
		a.frame = a.arrows[a.dir]
	}
	return a.frame
}

// Finished is always false; the compass runs until power off
func (a *Animator) Finished() bool { return false }

// Reset does nothing
func (a *Animator) Reset() {}

// Direction returns the last direction shown and whether it is current
func (a *Animator) Direction() (Direction, bool) {
	return a.dir, a.valid
}

// Err returns the last sensor error other than a timeout
func (a *Animator) Err() error {
	return a.err
}
