package sensor

import (
	"errors"
	"testing"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

type stuck struct{ err error }

func (s stuck) Ready() (bool, error)         { return false, s.err }
func (s stuck) Read() (types.Reading, error) { return types.Reading{}, errors.New("not ready") }

func TestPollerTimeout(t *testing.T) {
	p, err := NewPoller(stuck{}, 3)
	if err != nil {
		t.Fatalf("NewPoller() error = %v", err)
	}

	// Two quiet polls, then the timeout, then counting starts over.
	want := []error{nil, nil, ErrTimeout, nil, nil, ErrTimeout}
	for i, w := range want {
		_, ok, err := p.Poll()
		if ok {
			t.Fatalf("poll %d reported data", i)
		}
		if !errors.Is(err, w) || (w == nil && err != nil) {
			t.Errorf("poll %d error = %v, want %v", i, err, w)
		}
	}
	if p.Timeouts() != 2 {
		t.Errorf("Timeouts() = %d, want 2", p.Timeouts())
	}
}

func TestPollerStatusError(t *testing.T) {
	boom := errors.New("bus fault")
	p, _ := NewPoller(stuck{err: boom}, 3)
	if _, _, err := p.Poll(); !errors.Is(err, boom) {
		t.Errorf("Poll() error = %v, want wrapped %v", err, boom)
	}
}

func TestPollerResetsWaitOnData(t *testing.T) {
	s := NewFixed(types.Reading{X: 1, Y: 2, Z: 3})
	s.NotReadyEvery = 2
	p, _ := NewPoller(s, 2)

	// Every other check has data, so the timeout of two is never reached.
	for i := 0; i < 10; i++ {
		r, ok, err := p.Poll()
		if err != nil {
			t.Fatalf("poll %d error = %v", i, err)
		}
		if ok && r != (types.Reading{X: 1, Y: 2, Z: 3}) {
			t.Errorf("poll %d reading = %v", i, r)
		}
	}
	if s.Reads() != 5 {
		t.Errorf("Reads() = %d, want 5", s.Reads())
	}
}

func TestNewPollerInvalid(t *testing.T) {
	if _, err := NewPoller(nil, 3); err == nil {
		t.Error("NewPoller(nil) did not return error")
	}
	if _, err := NewPoller(NewAccel(), 0); err == nil {
		t.Error("NewPoller() with zero timeout did not return error")
	}
}

func TestFieldRotates(t *testing.T) {
	s := NewField(4)
	want := []types.Reading{
		{X: 1000, Y: 0, Z: -400},
		{X: 0, Y: 1000, Z: -400},
		{X: -1000, Y: 0, Z: -400},
		{X: 0, Y: -1000, Z: -400},
		{X: 1000, Y: 0, Z: -400},
	}
	for i, w := range want {
		r, _ := s.Read()
		if r != w {
			t.Errorf("read %d = %v, want %v", i, r, w)
		}
	}
}

func TestSpike(t *testing.T) {
	s := NewAccel()
	s.Spike(1, 850)
	for i, want := range []int32{0, 850, 0} {
		r, _ := s.Read()
		if r.X != want {
			t.Errorf("read %d X = %d, want %d", i, r.X, want)
		}
	}
}

func TestPunches(t *testing.T) {
	s := NewPunches(5, 800)
	want := []int32{400, 800, 200, 0, 0, 400, 800}
	for i, w := range want {
		r, _ := s.Read()
		if r.X != w {
			t.Errorf("read %d X = %d, want %d", i, r.X, w)
		}
	}
}
