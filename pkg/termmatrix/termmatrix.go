// Package termmatrix simulates the LED matrix lines in memory and paints
// what they show onto a terminal.
package termmatrix

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrClosed is returned when driving lines after Close
var ErrClosed = errors.New("termmatrix: lines closed")

// Latch implements types.Lines in memory. Each row keeps the cells it was
// last driven with, the way the eye keeps a multiplexed row lit.
type Latch struct {
	mu     sync.Mutex
	rows   types.Frame
	active int
	drives uint64
	closed bool
}

// New creates a latch with every LED off
func New() *Latch {
	return &Latch{active: -1}
}

// Drive asserts row with cells lit
func (l *Latch) Drive(row int, cells [types.Cols]bool) error {
	if row < 0 || row >= types.Rows {
		return fmt.Errorf("termmatrix: row %d out of range", row)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return ErrClosed
	}
	l.rows[row] = cells
	l.active = row
	l.drives++
	return nil
}

// Blank turns every LED off
func (l *Latch) Blank() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows = types.Frame{}
	l.active = -1
	return nil
}

// Close blanks the latch and rejects further writes
func (l *Latch) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows = types.Frame{}
	l.active = -1
	l.closed = true
	return nil
}

// Snapshot returns every row as it was last driven
func (l *Latch) Snapshot() types.Frame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows
}

// Active returns the row asserted by the last Drive, or -1
func (l *Latch) Active() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Drives returns the number of successful Drive calls
func (l *Latch) Drives() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.drives
}

// Terminal paints frames onto a writer. On a real terminal the frame is
// redrawn in place with colored cells; otherwise each frame is printed as
// plain rows of '#' and '.'.
type Terminal struct {
	out     io.Writer
	ansi    bool
	painted bool
}

// NewTerminal creates a painter for out
func NewTerminal(out io.Writer) *Terminal {
	ansi := false
	if f, ok := out.(*os.File); ok {
		ansi = term.IsTerminal(int(f.Fd()))
	}
	return &Terminal{out: out, ansi: ansi}
}

// Paint draws f
func (t *Terminal) Paint(f types.Frame) error {
	var b strings.Builder
	if t.ansi && t.painted {
		// Move back up over the previous frame.
		fmt.Fprintf(&b, "\x1b[%dA", types.Rows)
	}
	for y := 0; y < types.Rows; y++ {
		for x := 0; x < types.Cols; x++ {
			switch {
			case !t.ansi && f.Lit(x, y):
				b.WriteByte('#')
			case !t.ansi:
				b.WriteByte('.')
			case f.Lit(x, y):
				b.WriteString("\x1b[31m●\x1b[0m ")
			default:
				b.WriteString("\x1b[2m·\x1b[0m ")
			}
		}
		b.WriteByte('\n')
	}
	if !t.ansi {
		b.WriteByte('\n')
	}
	t.painted = true

	_, err := io.WriteString(t.out, b.String())
	return err
}
