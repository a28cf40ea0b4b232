package sensor

import (
	"math"
	"sync"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// Sim is a host stand-in for the accelerometer or magnetometer. Readings
// come from a generator indexed by read number; Spike overrides the X axis
// of single reads.
type Sim struct {
	mu     sync.Mutex
	gen    func(n int) types.Reading
	n      int
	checks int
	spikes map[int]int32

	// NotReadyEvery makes every n-th readiness check report no data, 0
	// disables
	NotReadyEvery int
}

// NewField creates a simulated magnetometer whose field turns a full circle
// every steps reads
func NewField(steps int) *Sim {
	if steps <= 0 {
		steps = 64
	}
	return newSim(func(n int) types.Reading {
		theta := 2 * math.Pi * float64(n%steps) / float64(steps)
		return types.Reading{
			X: int32(math.Round(1000 * math.Cos(theta))),
			Y: int32(math.Round(1000 * math.Sin(theta))),
			Z: -400,
		}
	})
}

// NewAccel creates a simulated accelerometer at rest, 1g on Z
func NewAccel() *Sim {
	return newSim(func(int) types.Reading {
		return types.Reading{Z: 1000}
	})
}

// NewPunches creates a simulated accelerometer that registers a punch along
// X every reads, rising to peak over three reads
func NewPunches(every int, peak int32) *Sim {
	if every < 4 {
		every = 4
	}
	pulse := [...]int32{peak / 2, peak, peak / 4}
	return newSim(func(n int) types.Reading {
		r := types.Reading{Z: 1000}
		if i := n % every; i < len(pulse) {
			r.X = pulse[i]
		}
		return r
	})
}

// NewFixed creates a simulated sensor that always reports r
func NewFixed(r types.Reading) *Sim {
	return newSim(func(int) types.Reading { return r })
}

func newSim(gen func(int) types.Reading) *Sim {
	return &Sim{gen: gen, spikes: make(map[int]int32)}
}

// Spike makes read number n (0-based) report x on the X axis
func (s *Sim) Spike(n int, x int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spikes[n] = x
}

// Ready reports whether a reading is available
func (s *Sim) Ready() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checks++
	if s.NotReadyEvery > 0 && s.checks%s.NotReadyEvery == 0 {
		return false, nil
	}
	return true, nil
}

// Read returns the next reading
func (s *Sim) Read() (types.Reading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.gen(s.n)
	if x, ok := s.spikes[s.n]; ok {
		r.X = x
	}
	s.n++
	return r, nil
}

// Reads returns the number of completed reads
func (s *Sim) Reads() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}
