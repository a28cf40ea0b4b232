// Package punch measures the strongest acceleration along X after a punch
// and shows it as a bar graph.
package punch

import (
	"errors"

	"github.com/fcurrie/microbit-led-golang/internal/sensor"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// FullScale is the acceleration in milli-g that lights the whole bar
const FullScale = 8000

// State is the meter state
type State int

const (
	Idle State = iota
	Measuring
	Report
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Measuring:
		return "measuring"
	case Report:
		return "report"
	default:
		return "unknown"
	}
}

// Config holds the meter parameters
type Config struct {
	// Threshold is the X acceleration that starts a measurement
	Threshold int32
	// WindowTicks is the length of a measurement in ticks
	WindowTicks int
	// HoldTicks is how long the result stays on the matrix
	HoldTicks int
	// Ready is shown while waiting for a punch
	Ready types.Frame
	// OnReport receives each measured maximum. It runs on the tick path
	// and must not block.
	OnReport func(peak int32)
}

// Meter is an animation driven by accelerometer readings
type Meter struct {
	cfg    Config
	poller *sensor.Poller

	state  State
	max    int32
	remain int
	frame  types.Frame
	err    error
}

type sample struct {
	r  types.Reading
	ok bool
}

// transitions holds one step function per state. Each runs once per tick
// with the result of that tick's poll and returns the next state.
var transitions = [...]func(m *Meter, s sample) State{
	Idle:      (*Meter).idle,
	Measuring: (*Meter).measuring,
	Report:    (*Meter).report,
}

// New creates a meter reading from p
func New(p *sensor.Poller, cfg Config) (*Meter, error) {
	if p == nil {
		return nil, errors.New("punch: nil poller")
	}
	if cfg.Threshold <= 0 || cfg.WindowTicks <= 0 || cfg.HoldTicks <= 0 {
		return nil, errors.New("punch: threshold, window and hold must be positive")
	}
	m := &Meter{cfg: cfg, poller: p}
	m.Reset()
	return m, nil
}

// Next polls once, advances the state machine and returns the frame. A
// sensor timeout abandons a measurement in progress without reporting it.
func (m *Meter) Next() types.Frame {
	r, ok, err := m.poller.Poll()
	switch {
	case errors.Is(err, sensor.ErrTimeout):
		if m.state == Measuring {
			m.state = Idle
			m.frame = m.cfg.Ready
			return m.frame
		}
	case err != nil:
		m.err = err
	}
	m.state = transitions[m.state](m, sample{r: r, ok: ok})
	return m.frame
}

func (m *Meter) idle(s sample) State {
	if !s.ok || s.r.X <= m.cfg.Threshold {
		return Idle
	}
	m.max = s.r.X
	m.remain = m.cfg.WindowTicks
	m.frame = types.Frame{}
	return Measuring
}

func (m *Meter) measuring(s sample) State {
	if s.ok && s.r.X > m.max {
		m.max = s.r.X
	}
	m.remain--
	if m.remain > 0 {
		return Measuring
	}

	if m.cfg.OnReport != nil {
		m.cfg.OnReport(m.max)
	}
	m.frame = Bar(m.max)
	m.remain = m.cfg.HoldTicks
	return Report
}

func (m *Meter) report(sample) State {
	m.remain--
	if m.remain > 0 {
		return Report
	}
	m.frame = m.cfg.Ready
	return Idle
}

// Finished is always false
func (m *Meter) Finished() bool { return false }

// Reset returns to Idle showing the ready frame
func (m *Meter) Reset() {
	m.state = Idle
	m.max = 0
	m.remain = 0
	m.frame = m.cfg.Ready
}

// State returns the current state
func (m *Meter) State() State {
	return m.state
}

// Err returns the last sensor error other than a timeout
func (m *Meter) Err() error {
	return m.err
}

// Max returns the maximum of the last or current measurement
func (m *Meter) Max() int32 {
	return m.max
}

// Bar renders v as a bar filling the matrix from the bottom row up, left to
// right. Any positive value lights at least one cell.
func Bar(v int32) types.Frame {
	const cells = types.Rows * types.Cols

	var f types.Frame
	if v <= 0 {
		return f
	}
	n := int(int64(v) * cells / FullScale)
	if n < 1 {
		n = 1
	}
	if n > cells {
		n = cells
	}
	for i := 0; i < n; i++ {
		f.Set(i%types.Cols, types.Rows-1-i/types.Cols, true)
	}
	return f
}
