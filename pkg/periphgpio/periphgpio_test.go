package periphgpio

import (
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

func pins(prefix string, n int, l gpio.Level) ([]gpio.PinOut, []*gpiotest.Pin) {
	outs := make([]gpio.PinOut, n)
	raw := make([]*gpiotest.Pin, n)
	for i := range raw {
		raw[i] = &gpiotest.Pin{N: prefix + string(rune('1'+i)), Num: i, L: l}
		outs[i] = raw[i]
	}
	return outs, raw
}

func levels(ps []*gpiotest.Pin) []gpio.Level {
	out := make([]gpio.Level, len(ps))
	for i, p := range ps {
		out[i] = p.Read()
	}
	return out
}

func TestNewBlanks(t *testing.T) {
	rows, rawRows := pins("ROW", types.Rows, gpio.High)
	cols, rawCols := pins("COL", types.Cols, gpio.Low)
	if _, err := New(rows, cols, true); err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for i, l := range levels(rawRows) {
		if l != gpio.Low {
			t.Errorf("row %d = %v after New(), want Low", i, l)
		}
	}
	for i, l := range levels(rawCols) {
		if l != gpio.High {
			t.Errorf("active low column %d = %v after New(), want High", i, l)
		}
	}
}

func TestDrive(t *testing.T) {
	tests := []struct {
		name      string
		activeLow bool
		cells     [types.Cols]bool
		want      []gpio.Level
	}{
		{
			name:      "active low columns",
			activeLow: true,
			cells:     [types.Cols]bool{true, false, false, false, true},
			want:      []gpio.Level{gpio.Low, gpio.High, gpio.High, gpio.High, gpio.Low},
		},
		{
			name:  "active high columns",
			cells: [types.Cols]bool{true, false, false, false, true},
			want:  []gpio.Level{gpio.High, gpio.Low, gpio.Low, gpio.Low, gpio.High},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows, rawRows := pins("ROW", types.Rows, gpio.Low)
			cols, rawCols := pins("COL", types.Cols, gpio.Low)
			m, err := New(rows, cols, tt.activeLow)
			if err != nil {
				t.Fatal(err)
			}
			if err := m.Drive(3, tt.cells); err != nil {
				t.Fatalf("Drive() error = %v", err)
			}
			for i, l := range levels(rawRows) {
				if want := gpio.Level(i == 3); l != want {
					t.Errorf("row %d = %v, want %v", i, l, want)
				}
			}
			got := levels(rawCols)
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("column %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestClose(t *testing.T) {
	rows, _ := pins("ROW", types.Rows, gpio.Low)
	cols, _ := pins("COL", types.Cols, gpio.Low)
	m, _ := New(rows, cols, true)

	if err := m.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := m.Drive(0, [types.Cols]bool{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Drive() after Close() error = %v, want ErrClosed", err)
	}
	if err := m.Drive(types.Rows, [types.Cols]bool{}); err == nil {
		t.Error("Drive() with row out of range did not return error")
	}
}

func TestNewPinCount(t *testing.T) {
	rows, _ := pins("ROW", 2, gpio.Low)
	cols, _ := pins("COL", types.Cols, gpio.Low)
	if _, err := New(rows, cols, false); err == nil {
		t.Error("New() with two rows did not return error")
	}
}
