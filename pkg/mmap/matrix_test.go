package mmap

import (
	"errors"
	"testing"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// fakeRegs models the GPIO block: set and clear registers act on a level
// register instead of being stored
type fakeRegs struct {
	fsel  [6]uint32
	level uint32
}

func (f *fakeRegs) Read32(off uintptr) uint32 {
	if off < 0x18 {
		return f.fsel[off/4]
	}
	return 0
}

func (f *fakeRegs) Write32(off uintptr, v uint32) {
	switch {
	case off < 0x18:
		f.fsel[off/4] = v
	case off == regSet0:
		f.level |= v
	case off == regClr0:
		f.level &^= v
	}
}

func (f *fakeRegs) high(pin int) bool {
	return f.level&(1<<uint(pin)) != 0
}

var (
	rowPins = []int{2, 3, 4, 17, 27}
	colPins = []int{5, 6, 13, 19, 26}
)

func TestNewConfiguresOutputs(t *testing.T) {
	regs := &fakeRegs{fsel: [6]uint32{0xffffffff, 0xffffffff, 0xffffffff}}
	if _, err := New(regs, rowPins, colPins, true); err != nil {
		t.Fatalf("New() error = %v", err)
	}

	for _, p := range append(append([]int(nil), rowPins...), colPins...) {
		field := (regs.fsel[p/10] >> uint(3*(p%10))) & 0b111
		if field != fselOutput {
			t.Errorf("pin %d function = %03b, want output", p, field)
		}
	}
	for _, p := range colPins {
		if !regs.high(p) {
			t.Errorf("active low column pin %d is low after New()", p)
		}
	}
}

func TestDrive(t *testing.T) {
	tests := []struct {
		name      string
		activeLow bool
	}{
		{"active low columns", true},
		{"active high columns", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			regs := &fakeRegs{}
			m, err := New(regs, rowPins, colPins, tt.activeLow)
			if err != nil {
				t.Fatal(err)
			}

			cells := [types.Cols]bool{false, true, true, false, false}
			if err := m.Drive(1, cells); err != nil {
				t.Fatalf("Drive() error = %v", err)
			}
			m.Drive(4, cells)

			for i, p := range rowPins {
				if want := i == 4; regs.high(p) != want {
					t.Errorf("row pin %d high = %v, want %v", p, regs.high(p), want)
				}
			}
			for i, p := range colPins {
				if want := cells[i] != tt.activeLow; regs.high(p) != want {
					t.Errorf("column pin %d high = %v, want %v", p, regs.high(p), want)
				}
			}
		})
	}
}

func TestNewInvalid(t *testing.T) {
	tests := []struct {
		name string
		rows []int
		cols []int
	}{
		{"too few rows", []int{1, 2}, colPins},
		{"pin outside bank", []int{2, 3, 4, 17, 40}, colPins},
		{"shared pin", rowPins, []int{2, 6, 13, 19, 26}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(&fakeRegs{}, tt.rows, tt.cols, true); err == nil {
				t.Error("New() did not return error")
			}
		})
	}
}

func TestClose(t *testing.T) {
	regs := &fakeRegs{}
	m, _ := New(regs, rowPins, colPins, true)
	m.Drive(0, [types.Cols]bool{true, true, true, true, true})

	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	for _, p := range rowPins {
		if regs.high(p) {
			t.Errorf("row pin %d still high after Close()", p)
		}
	}
	if err := m.Drive(0, [types.Cols]bool{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Drive() after Close() error = %v, want ErrClosed", err)
	}
}
