// Package periodic abstracts the countdown and tick peripherals that pace
// the matrix: a source raises a single pending bit per period and carries no
// other payload.
package periodic

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

const (
	// LFClockHz is the low-frequency clock feeding the tick counter
	LFClockHz = 32768
	// MaxPrescaler is the 12-bit counter ceiling of the reference hardware
	MaxPrescaler = 4095
)

// ErrPrescalerRange is returned when a tick rate cannot be reached by the
// 12-bit prescaler
var ErrPrescalerRange = errors.New("prescaler out of range")

// Source is a periodic interrupt source
type Source interface {
	// Pending reports whether an event is waiting to be handled
	Pending() bool
	// ClearEvent acknowledges the pending event
	ClearEvent()
	// Rearm schedules the next event of a one-shot source
	Rearm()
}

// Prescaler returns the divisor of the low-frequency clock that produces
// ticks at hz: hz = 32768 / (prescaler + 1).
func Prescaler(hz int) (uint32, error) {
	if hz <= 0 || hz > LFClockHz {
		return 0, fmt.Errorf("%w: %d Hz", ErrPrescalerRange, hz)
	}
	p := LFClockHz/hz - 1
	if p > MaxPrescaler {
		return 0, fmt.Errorf("%w: %d Hz needs %d, ceiling is %d", ErrPrescalerRange, hz, p, MaxPrescaler)
	}
	return uint32(p), nil
}

// TickPeriod converts a prescaler back into the tick period
func TickPeriod(prescaler uint32) time.Duration {
	return time.Duration(prescaler+1) * time.Second / LFClockHz
}

// Mode selects how a Timer re-fires
type Mode int

const (
	// Periodic sources fire every period, like an RTC tick
	Periodic Mode = iota
	// OneShot sources fire once and wait for Rearm, like a timer compare
	OneShot
)

// Timer emulates a hardware timer on the host. Run is its interrupt line.
type Timer struct {
	period  time.Duration
	mode    Mode
	pending atomic.Bool
	fired   atomic.Uint64
	rearm   chan struct{}
}

// NewTimer creates a timer firing after period
func NewTimer(period time.Duration, mode Mode) (*Timer, error) {
	if period <= 0 {
		return nil, fmt.Errorf("invalid timer period %v", period)
	}
	return &Timer{
		period: period,
		mode:   mode,
		rearm:  make(chan struct{}, 1),
	}, nil
}

// Period returns the timer period
func (t *Timer) Period() time.Duration {
	return t.period
}

// Pending reports whether an event is waiting to be handled
func (t *Timer) Pending() bool {
	return t.pending.Load()
}

// ClearEvent acknowledges the pending event
func (t *Timer) ClearEvent() {
	t.pending.Store(false)
}

// Rearm schedules the next event of a one-shot timer. It never blocks: a
// rearm already waiting absorbs this one.
func (t *Timer) Rearm() {
	select {
	case t.rearm <- struct{}{}:
	default:
	}
}

// Fired returns the number of events raised so far
func (t *Timer) Fired() uint64 {
	return t.fired.Load()
}

// Run raises an event every period and calls isr for it on the calling
// goroutine, until ctx is done. Events raised while isr still runs are
// coalesced into the single pending bit.
func (t *Timer) Run(ctx context.Context, isr func()) error {
	timer := time.NewTimer(t.period)
	defer timer.Stop()

	armed := true
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.rearm:
			if t.mode == OneShot && !armed {
				timer.Reset(t.period)
				armed = true
			}
		case <-timer.C:
			armed = false
			t.pending.Store(true)
			t.fired.Add(1)
			isr()
			if t.mode == Periodic {
				timer.Reset(t.period)
				armed = true
			}
		}
	}
}

// Manual is a source fired by hand, for tests and simulations
type Manual struct {
	pending atomic.Bool
	clears  atomic.Uint64
	rearms  atomic.Uint64
}

// Fire raises the pending bit
func (m *Manual) Fire() {
	m.pending.Store(true)
}

// Pending reports whether an event is waiting to be handled
func (m *Manual) Pending() bool {
	return m.pending.Load()
}

// ClearEvent acknowledges the pending event
func (m *Manual) ClearEvent() {
	m.pending.Store(false)
	m.clears.Add(1)
}

// Rearm records a rearm request
func (m *Manual) Rearm() {
	m.rearms.Add(1)
}

// Clears returns how many times the event was acknowledged
func (m *Manual) Clears() uint64 {
	return m.clears.Load()
}

// Rearms returns how many times a rearm was requested
func (m *Manual) Rearms() uint64 {
	return m.rearms.Load()
}
