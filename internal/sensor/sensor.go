// Package sensor is the narrow boundary to the 3-axis sensor collaborator.
// The sensor answers discrete requests; nothing here waits for it.
package sensor

import (
	"errors"
	"fmt"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrTimeout is reported by a Poller when the sensor has not had data ready
// for the configured number of ticks
var ErrTimeout = errors.New("sensor: no data before timeout")

// Sensor delivers readings on request
type Sensor interface {
	// Ready reports whether a new reading is available
	Ready() (bool, error)
	// Read returns the latest reading
	Read() (types.Reading, error)
}

// Poller performs one readiness check per call instead of spinning until
// the sensor has data. After timeoutTicks consecutive checks without data it
// returns ErrTimeout once and starts counting again.
type Poller struct {
	sensor       Sensor
	timeoutTicks int
	waited       int
	timeouts     int
}

// NewPoller creates a poller for s
func NewPoller(s Sensor, timeoutTicks int) (*Poller, error) {
	if s == nil {
		return nil, errors.New("sensor: nil sensor")
	}
	if timeoutTicks <= 0 {
		return nil, fmt.Errorf("sensor: invalid timeout of %d ticks", timeoutTicks)
	}
	return &Poller{sensor: s, timeoutTicks: timeoutTicks}, nil
}

// Poll checks the sensor once. It returns the reading and true when data
// was ready, false when it was not (yet), and an error when the sensor
// failed or the timeout elapsed.
func (p *Poller) Poll() (types.Reading, bool, error) {
	ready, err := p.sensor.Ready()
	if err != nil {
		return types.Reading{}, false, fmt.Errorf("sensor: status: %w", err)
	}
	if !ready {
		p.waited++
		if p.waited >= p.timeoutTicks {
			p.waited = 0
			p.timeouts++
			return types.Reading{}, false, ErrTimeout
		}
		return types.Reading{}, false, nil
	}

	p.waited = 0
	r, err := p.sensor.Read()
	if err != nil {
		return types.Reading{}, false, fmt.Errorf("sensor: read: %w", err)
	}
	return r, true, nil
}

// Timeouts returns how many times the timeout elapsed
func (p *Poller) Timeouts() int {
	return p.timeouts
}
