package types

import "strings"

const (
	// Rows is the number of matrix rows driven by the multiplexer
	Rows = 5
	// Cols is the number of LEDs on each row
	Cols = 5
)

// Lines is the physical boundary of the LED matrix: the row and column
// lines a multiplexer toggles.
type Lines interface {
	// Drive asserts row and lights exactly the cells marked on, with every
	// other row deasserted.
	Drive(row int, cells [Cols]bool) error
	// Blank turns every LED off
	Blank() error
	// Close releases the lines
	Close() error
}

// Frame is one complete on/off snapshot of the matrix. It is a value type:
// handing a Frame to someone else hands over a copy.
type Frame [Rows][Cols]bool

// Set lights (or darkens) the cell at row y, column x. Out of range
// coordinates are ignored.
func (f *Frame) Set(x, y int, on bool) {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return
	}
	f[y][x] = on
}

// Lit reports whether the cell at row y, column x is on
func (f Frame) Lit(x, y int) bool {
	if x < 0 || x >= Cols || y < 0 || y >= Rows {
		return false
	}
	return f[y][x]
}

// Row returns the cells of row y
func (f Frame) Row(y int) [Cols]bool {
	return f[y]
}

// IsBlank reports whether no cell is lit
func (f Frame) IsBlank() bool {
	return f == Frame{}
}

// Count returns the number of lit cells
func (f Frame) Count() int {
	n := 0
	for y := range f {
		for x := range f[y] {
			if f[y][x] {
				n++
			}
		}
	}
	return n
}

// String renders the frame as rows of '#' (lit) and '.' (dark)
func (f Frame) String() string {
	var b strings.Builder
	for y := range f {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := range f[y] {
			if f[y][x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}

// ParseFrame builds a frame from rows of '#' and '.' separated by newlines.
// Any other rune counts as dark; missing rows and columns stay dark.
func ParseFrame(s string) Frame {
	var f Frame
	for y, line := range strings.Split(strings.TrimSpace(s), "\n") {
		for x, r := range strings.TrimSpace(line) {
			f.Set(x, y, r == '#')
		}
	}
	return f
}
