// Package gpio drives the LED matrix row and column lines through the Linux
// GPIO character device.
package gpio

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrClosed is returned when driving lines after Close
var ErrClosed = errors.New("gpio: lines closed")

const consumer = "ledscroll"

// outputs is a group of output lines set together
type outputs interface {
	SetValues(values []int) error
	Close() error
}

// Matrix implements types.Lines on two groups of GPIO lines. Row lines are
// active high. Column lines are logically "lit" when 1; with colActiveLow
// the kernel inverts them so a lit LED pulls its column low.
type Matrix struct {
	mu      sync.Mutex
	rows    outputs
	cols    outputs
	rowVals []int
	colVals []int
	closed  bool
}

// Open requests the row and column lines on chip as outputs, all off
func Open(chip string, rowPins, colPins []int, colActiveLow bool) (*Matrix, error) {
	if len(rowPins) != types.Rows || len(colPins) != types.Cols {
		return nil, fmt.Errorf("gpio: need %d row and %d column pins, got %d and %d",
			types.Rows, types.Cols, len(rowPins), len(colPins))
	}

	log.Printf("Requesting GPIO lines on %s: rows %v, cols %v", chip, rowPins, colPins)
	rows, err := gpiocdev.RequestLines(chip, rowPins,
		gpiocdev.AsOutput(make([]int, types.Rows)...),
		gpiocdev.WithConsumer(consumer))
	if err != nil {
		return nil, fmt.Errorf("failed to request row lines: %w", err)
	}

	colOpts := []gpiocdev.LineReqOption{
		gpiocdev.AsOutput(make([]int, types.Cols)...),
		gpiocdev.WithConsumer(consumer),
	}
	if colActiveLow {
		colOpts = append(colOpts, gpiocdev.AsActiveLow)
	}
	cols, err := gpiocdev.RequestLines(chip, colPins, colOpts...)
	if err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to request column lines: %w", err)
	}

	return newMatrix(rows, cols), nil
}

func newMatrix(rows, cols outputs) *Matrix {
	return &Matrix{
		rows:    rows,
		cols:    cols,
		rowVals: make([]int, types.Rows),
		colVals: make([]int, types.Cols),
	}
}

// Drive deasserts every row, sets the columns for cells and asserts row.
// Rows go low first so the new column pattern never shows on the old row.
func (m *Matrix) Drive(row int, cells [types.Cols]bool) error {
	if row < 0 || row >= types.Rows {
		return fmt.Errorf("gpio: row %d out of range", row)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if err := m.setRows(-1); err != nil {
		return err
	}
	for i, on := range cells {
		m.colVals[i] = 0
		if on {
			m.colVals[i] = 1
		}
	}
	if err := m.cols.SetValues(m.colVals); err != nil {
		return fmt.Errorf("gpio: set columns: %w", err)
	}
	return m.setRows(row)
}

// setRows asserts only row, or none when row is -1
func (m *Matrix) setRows(row int) error {
	for i := range m.rowVals {
		m.rowVals[i] = 0
	}
	if row >= 0 {
		m.rowVals[row] = 1
	}
	if err := m.rows.SetValues(m.rowVals); err != nil {
		return fmt.Errorf("gpio: set rows: %w", err)
	}
	return nil
}

// Blank turns every LED off
func (m *Matrix) Blank() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if err := m.setRows(-1); err != nil {
		return err
	}
	for i := range m.colVals {
		m.colVals[i] = 0
	}
	if err := m.cols.SetValues(m.colVals); err != nil {
		return fmt.Errorf("gpio: set columns: %w", err)
	}
	return nil
}

// Close blanks the matrix and releases the lines
func (m *Matrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true

	log.Printf("Releasing GPIO lines")
	_ = m.rows.SetValues(make([]int, types.Rows))
	_ = m.cols.SetValues(make([]int, types.Cols))
	return errors.Join(m.rows.Close(), m.cols.Close())
}
