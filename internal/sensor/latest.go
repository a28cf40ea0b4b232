package sensor

import (
	"errors"
	"sync/atomic"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrNoReading is returned by Latest.Read when nothing was published
var ErrNoReading = errors.New("sensor: no reading published")

type sample struct {
	r   types.Reading
	err error
}

// Latest is a Sensor fed from outside the tick path. A slow bus transfer
// runs in the idle loop and hands its result over with Publish; Ready and
// Read only swap a pointer, so they are safe inside an interrupt handler.
// Each published value is consumed at most once.
type Latest struct {
	next atomic.Pointer[sample]
}

// Publish hands over the result of one transfer, replacing any value not
// consumed yet
func (l *Latest) Publish(r types.Reading, err error) {
	l.next.Store(&sample{r: r, err: err})
}

// Ready reports whether a reading is waiting. A published error is
// consumed and returned here.
func (l *Latest) Ready() (bool, error) {
	s := l.next.Load()
	if s == nil {
		return false, nil
	}
	if s.err != nil {
		l.next.CompareAndSwap(s, nil)
		return false, s.err
	}
	return true, nil
}

// Read consumes the waiting reading
func (l *Latest) Read() (types.Reading, error) {
	s := l.next.Swap(nil)
	if s == nil {
		return types.Reading{}, ErrNoReading
	}
	return s.r, s.err
}
