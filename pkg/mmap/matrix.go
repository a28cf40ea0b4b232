package mmap

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// BCM283x GPIO register offsets
const (
	regFSel0 = 0x00
	regSet0  = 0x1c
	regClr0  = 0x28

	fselOutput = 0b001
	maxPin     = 31
)

// ErrClosed is returned when driving lines after Close
var ErrClosed = errors.New("mmap: lines closed")

// Registers is 32-bit register access to the GPIO block
type Registers interface {
	Read32(offset uintptr) uint32
	Write32(offset uintptr, value uint32)
}

// Matrix implements types.Lines on the first GPIO bank. Every write is a
// single store to the set or clear register, so Drive never blocks in the
// kernel.
type Matrix struct {
	mu           sync.Mutex
	regs         Registers
	closer       func() error
	rowMask      uint32
	colMask      uint32
	rowBits      [types.Rows]uint32
	colBits      [types.Cols]uint32
	colActiveLow bool
	closed       bool
}

// Open maps the GPIO block from device and configures the pins as outputs
func Open(device string, rowPins, colPins []int, colActiveLow bool) (*Matrix, error) {
	if device == "" {
		device = DefaultDevice
	}
	mem, err := NewMemoryMap(device, 0, BlockSize)
	if err != nil {
		return nil, err
	}
	m, err := New(mem, rowPins, colPins, colActiveLow)
	if err != nil {
		mem.Close()
		return nil, err
	}
	m.closer = mem.Close
	log.Printf("Mapped GPIO registers from %s", device)
	return m, nil
}

// New drives the matrix through regs. The pins are switched to outputs and
// every LED is turned off.
func New(regs Registers, rowPins, colPins []int, colActiveLow bool) (*Matrix, error) {
	if len(rowPins) != types.Rows || len(colPins) != types.Cols {
		return nil, fmt.Errorf("mmap: need %d row and %d column pins, got %d and %d",
			types.Rows, types.Cols, len(rowPins), len(colPins))
	}

	m := &Matrix{regs: regs, colActiveLow: colActiveLow}
	for i, p := range rowPins {
		if p < 0 || p > maxPin {
			return nil, fmt.Errorf("mmap: pin %d outside bank 0", p)
		}
		m.rowBits[i] = 1 << uint(p)
		m.rowMask |= m.rowBits[i]
	}
	for i, p := range colPins {
		if p < 0 || p > maxPin {
			return nil, fmt.Errorf("mmap: pin %d outside bank 0", p)
		}
		m.colBits[i] = 1 << uint(p)
		m.colMask |= m.colBits[i]
	}
	if m.rowMask&m.colMask != 0 {
		return nil, errors.New("mmap: pin used as both row and column")
	}

	m.blank()
	for _, p := range append(append([]int(nil), rowPins...), colPins...) {
		setOutput(regs, p)
	}
	return m, nil
}

// setOutput writes the 3-bit function select field of pin
func setOutput(regs Registers, pin int) {
	off := uintptr(regFSel0 + 4*(pin/10))
	shift := uint(3 * (pin % 10))
	v := regs.Read32(off)
	v &^= 0b111 << shift
	v |= fselOutput << shift
	regs.Write32(off, v)
}

// Drive deasserts every row, sets the columns for cells and asserts row
func (m *Matrix) Drive(row int, cells [types.Cols]bool) error {
	if row < 0 || row >= types.Rows {
		return fmt.Errorf("mmap: row %d out of range", row)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.regs.Write32(regClr0, m.rowMask)

	var lit uint32
	for i, on := range cells {
		if on {
			lit |= m.colBits[i]
		}
	}
	high, low := lit, m.colMask&^lit
	if m.colActiveLow {
		high, low = low, high
	}
	if high != 0 {
		m.regs.Write32(regSet0, high)
	}
	if low != 0 {
		m.regs.Write32(regClr0, low)
	}

	m.regs.Write32(regSet0, m.rowBits[row])
	return nil
}

// Blank turns every LED off
func (m *Matrix) Blank() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.blank()
	return nil
}

func (m *Matrix) blank() {
	m.regs.Write32(regClr0, m.rowMask)
	if m.colActiveLow {
		m.regs.Write32(regSet0, m.colMask)
	} else {
		m.regs.Write32(regClr0, m.colMask)
	}
}

// Close blanks the matrix and unmaps the registers
func (m *Matrix) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil
	}
	m.closed = true
	m.blank()
	if m.closer != nil {
		return m.closer()
	}
	return nil
}
