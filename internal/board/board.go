//go:build !tinygo

// Package board wires the matrix together: it picks the line driver and the
// animation, creates both periodic sources, installs everything into the
// shared state and runs the two interrupt paths.
package board

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/fcurrie/microbit-led-golang/internal/animation"
	"github.com/fcurrie/microbit-led-golang/internal/compass"
	"github.com/fcurrie/microbit-led-golang/internal/config"
	"github.com/fcurrie/microbit-led-golang/internal/display"
	"github.com/fcurrie/microbit-led-golang/internal/icon"
	"github.com/fcurrie/microbit-led-golang/internal/periodic"
	"github.com/fcurrie/microbit-led-golang/internal/punch"
	"github.com/fcurrie/microbit-led-golang/internal/scroll"
	"github.com/fcurrie/microbit-led-golang/internal/sensor"
	"github.com/fcurrie/microbit-led-golang/internal/shared"
	"github.com/fcurrie/microbit-led-golang/internal/types"
	"github.com/fcurrie/microbit-led-golang/pkg/gpio"
	"github.com/fcurrie/microbit-led-golang/pkg/mmap"
	"github.com/fcurrie/microbit-led-golang/pkg/periphgpio"
	"github.com/fcurrie/microbit-led-golang/pkg/termmatrix"
)

// ErrHardwareUnavailable is returned when the line driver cannot be opened
var ErrHardwareUnavailable = errors.New("board: hardware unavailable")

const (
	// splashTicks is how long the splash icon stays up
	splashTicks = 16
	// fieldSteps is the number of reads per turn of the simulated field
	fieldSteps = 96
	// punchEvery is the number of reads between simulated punches
	punchEvery = 80
)

// Board is the host rendition of the device
type Board struct {
	State *shared.State

	lines    types.Lines
	latch    *termmatrix.Latch
	refresh  *periodic.Timer
	tick     *periodic.Timer
	renderer *display.Renderer
	reports  chan int32
}

// Setup builds the board described by cfg. Frames are painted onto preview
// when it is not nil.
func Setup(cfg *config.Config, preview io.Writer) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	lines, latch, err := OpenLines(cfg.Display)
	if err != nil {
		return nil, err
	}
	b, err := setup(cfg, lines, preview)
	if err != nil {
		lines.Close()
		return nil, err
	}
	b.latch = latch
	return b, nil
}

func setup(cfg *config.Config, lines types.Lines, preview io.Writer) (*Board, error) {
	refresh, err := periodic.NewTimer(display.SlotDuration(cfg.Display.RefreshHz), periodic.OneShot)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh timer: %w", err)
	}
	prescaler, err := periodic.Prescaler(cfg.Animation.TickHz)
	if err != nil {
		return nil, fmt.Errorf("failed to create tick timer: %w", err)
	}
	tick, err := periodic.NewTimer(periodic.TickPeriod(prescaler), periodic.Periodic)
	if err != nil {
		return nil, fmt.Errorf("failed to create tick timer: %w", err)
	}

	b := &Board{
		State:   &shared.State{},
		lines:   lines,
		refresh: refresh,
		tick:    tick,
		reports: make(chan int32, 8),
	}

	a, err := NewAnimator(cfg, b.report)
	if err != nil {
		return nil, err
	}
	if name := cfg.Animation.Splash; name != "" {
		f, err := icon.Frame(name)
		if err != nil {
			return nil, fmt.Errorf("failed to load splash: %w", err)
		}
		a = animation.NewIntro(f, splashTicks, a)
	}

	if err := b.State.Install(display.New(lines, refresh), tick, a); err != nil {
		return nil, err
	}

	if preview != nil && (cfg.Display.Preview || cfg.Display.Backend == types.BackendSim) {
		b.renderer = display.NewRenderer(b.State, tick.Period())
		b.renderer.SetPainter(termmatrix.NewTerminal(preview))
	}
	return b, nil
}

// OpenLines opens the line driver named by cfg. The latch is only returned
// for the simulated backend.
func OpenLines(cfg types.DisplayConfig) (types.Lines, *termmatrix.Latch, error) {
	var (
		lines types.Lines
		err   error
	)
	switch cfg.Backend {
	case types.BackendSim:
		latch := termmatrix.New()
		return latch, latch, nil
	case types.BackendGPIOCDev:
		lines, err = gpio.Open(cfg.Chip, cfg.RowPins, cfg.ColPins, cfg.ColActiveLow)
	case types.BackendPeriph:
		lines, err = periphgpio.Open(cfg.RowNames, cfg.ColNames, cfg.ColActiveLow)
	case types.BackendMMap:
		lines, err = mmap.Open(mmap.DefaultDevice, cfg.RowPins, cfg.ColPins, cfg.ColActiveLow)
	default:
		return nil, nil, fmt.Errorf("%w: unknown backend %q", config.ErrInvalid, cfg.Backend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrHardwareUnavailable, cfg.Backend, err)
	}
	return lines, nil, nil
}

// NewAnimator creates the animation selected by cfg. On the host the
// sensor modes read from simulated sensors. report receives punch results.
func NewAnimator(cfg *config.Config, report func(int32)) (animation.Animator, error) {
	s := cfg.Sensor
	switch cfg.Animation.Mode {
	case types.ModeScroll:
		m := scroll.New(cfg.Animation.Message, cfg.Animation.Capacity)
		if m.Truncated() {
			log.Printf("Message truncated to %d bytes", m.Capacity())
		}
		return m, nil
	case types.ModeRoulette:
		return animation.NewRoulette(), nil
	case types.ModeCompass:
		p, err := sensor.NewPoller(sensor.NewField(fieldSteps), s.PollTimeoutTicks)
		if err != nil {
			return nil, err
		}
		return compass.NewAnimator(p, compass.Calibration{OffsetX: s.OffsetX, OffsetY: s.OffsetY}), nil
	case types.ModePunch:
		p, err := sensor.NewPoller(sensor.NewPunches(punchEvery, 2400), s.PollTimeoutTicks)
		if err != nil {
			return nil, err
		}
		ready, err := icon.Frame(icon.ArrowUp)
		if err != nil {
			return nil, err
		}
		m, err := punch.New(p, punch.Config{
			Threshold:   s.PunchThreshold,
			WindowTicks: s.PunchWindowTicks,
			HoldTicks:   s.PunchHoldTicks,
			Ready:       ready,
			OnReport:    report,
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", config.ErrInvalid, cfg.Animation.Mode)
	}
}

// report hands a punch result to Run without blocking the tick path.
// Results arriving while the queue is full are dropped.
func (b *Board) report(peak int32) {
	select {
	case b.reports <- peak:
	default:
	}
}

// Latch returns the simulated lines, or nil on hardware
func (b *Board) Latch() *termmatrix.Latch {
	return b.latch
}

// Run enables both periodic sources and blocks until ctx is done. The
// matrix is turned off and the lines released before it returns.
func (b *Board) Run(ctx context.Context) error {
	log.Printf("Refresh slot %v, tick period %v", b.refresh.Period(), b.tick.Period())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.refresh.Run(gctx, b.State.HandleRefresh) })
	g.Go(func() error { return b.tick.Run(gctx, b.State.HandleTick) })
	if b.renderer != nil {
		g.Go(func() error { return b.renderer.Start(gctx) })
	}
	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case peak := <-b.reports:
				log.Printf("Max acceleration: (x) = (%d)", peak)
			}
		}
	})

	err := g.Wait()
	if ctx.Err() != nil {
		err = nil
	}
	if faults := b.State.Faults(); faults > 0 {
		log.Printf("Warning: %d line writes failed", faults)
	}
	return errors.Join(err, b.State.Off(), b.lines.Close())
}

// Stats returns the number of ticks handled and refresh events raised
func (b *Board) Stats() (ticks, refreshes uint64) {
	return b.State.Ticks(), b.refresh.Fired()
}
