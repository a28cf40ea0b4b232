package display

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// Painter shows a whole frame somewhere other than the LEDs, e.g. a terminal
type Painter interface {
	Paint(f types.Frame) error
}

// FrameSource returns the frame currently installed for the multiplexer
type FrameSource interface {
	Snapshot() (types.Frame, bool)
}

// Renderer periodically copies the installed frame to a Painter. It runs
// outside both interrupt paths and only ever takes snapshots.
type Renderer struct {
	interval time.Duration
	source   FrameSource
	mu       sync.RWMutex
	painter  Painter
	last     types.Frame
	painted  bool
	paints   int
}

// NewRenderer creates a new renderer instance
func NewRenderer(source FrameSource, interval time.Duration) *Renderer {
	return &Renderer{
		interval: interval,
		source:   source,
	}
}

// SetPainter sets the painter to render to
func (r *Renderer) SetPainter(p Painter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.painter = p
	r.painted = false
}

// Start renders until ctx is done
func (r *Renderer) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.render(); err != nil {
				log.Printf("Failed to render: %v", err)
			}
		}
	}
}

// render paints the installed frame if it changed since the last paint
func (r *Renderer) render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.painter == nil {
		return nil
	}
	f, ok := r.source.Snapshot()
	if !ok {
		return nil
	}
	if r.painted && f == r.last {
		return nil
	}
	if err := r.painter.Paint(f); err != nil {
		return err
	}
	r.last = f
	r.painted = true
	r.paints++
	return nil
}

// Paints returns how many frames were painted
func (r *Renderer) Paints() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.paints
}
