// Package periphgpio drives the LED matrix through periph.io, addressing the
// row and column lines by their board names.
package periphgpio

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// ErrClosed is returned when driving lines after Close
var ErrClosed = errors.New("periphgpio: lines closed")

// Matrix implements types.Lines with one periph.io pin per line
type Matrix struct {
	mu           sync.Mutex
	rows         []gpio.PinOut
	cols         []gpio.PinOut
	colActiveLow bool
	closed       bool
}

// Open initializes the host drivers and looks up every named pin
func Open(rowNames, colNames []string, colActiveLow bool) (*Matrix, error) {
	if len(rowNames) != types.Rows || len(colNames) != types.Cols {
		return nil, fmt.Errorf("periphgpio: need %d row and %d column names, got %d and %d",
			types.Rows, types.Cols, len(rowNames), len(colNames))
	}
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize periph.io: %w", err)
	}

	lookup := func(names []string) ([]gpio.PinOut, error) {
		pins := make([]gpio.PinOut, 0, len(names))
		for _, name := range names {
			p := gpioreg.ByName(name)
			if p == nil {
				return nil, fmt.Errorf("periphgpio: no pin named %q", name)
			}
			pins = append(pins, p)
		}
		return pins, nil
	}
	rows, err := lookup(rowNames)
	if err != nil {
		return nil, err
	}
	cols, err := lookup(colNames)
	if err != nil {
		return nil, err
	}

	log.Printf("Using periph.io pins: rows %v, cols %v", rowNames, colNames)
	return New(rows, cols, colActiveLow)
}

// New creates a matrix on already resolved pins and turns every LED off
func New(rows, cols []gpio.PinOut, colActiveLow bool) (*Matrix, error) {
	if len(rows) != types.Rows || len(cols) != types.Cols {
		return nil, fmt.Errorf("periphgpio: need %d row and %d column pins", types.Rows, types.Cols)
	}
	m := &Matrix{rows: rows, cols: cols, colActiveLow: colActiveLow}
	if err := m.blank(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) colLevel(on bool) gpio.Level {
	return gpio.Level(on != m.colActiveLow)
}

// Drive deasserts every row, sets the columns for cells and asserts row
func (m *Matrix) Drive(row int, cells [types.Cols]bool) error {
	if row < 0 || row >= types.Rows {
		return fmt.Errorf("periphgpio: row %d out of range", row)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	for _, p := range m.rows {
		if err := p.Out(gpio.Low); err != nil {
			return fmt.Errorf("periphgpio: %s: %w", p, err)
		}
	}
	for i, p := range m.cols {
		if err := p.Out(m.colLevel(cells[i])); err != nil {
			return fmt.Errorf("periphgpio: %s: %w", p, err)
		}
	}
	if err := m.rows[row].Out(gpio.High); err != nil {
		return fmt.Errorf("periphgpio: %s: %w", m.rows[row], err)
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
	return m.blank()
}

func (m *Matrix) blank() error {
	for _, p := range m.rows {
		if err := p.Out(gpio.Low); err != nil {
			return fmt.Errorf("periphgpio: %s: %w", p, err)
		}
	}
	for _, p := range m.cols {
		if err := p.Out(m.colLevel(false)); err != nil {
			return fmt.Errorf("periphgpio: %s: %w", p, err)
		}
	}
	return nil
}

// Close blanks the matrix. periph.io pins stay owned by the host driver.
func (m *Matrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	return m.blank()
}
