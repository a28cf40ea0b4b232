package animation

import "github.com/fcurrie/microbit-led-golang/internal/types"

// rouletteLED is a (row, column) pair
type rouletteLED struct {
	row, col int
}

// roulettePath spirals in from the top left corner and back out again
var roulettePath = [48]rouletteLED{
	{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4},
	{1, 4}, {2, 4}, {3, 4}, {4, 4},
	{4, 3}, {4, 2}, {4, 1}, {4, 0},
	{3, 0}, {2, 0}, {1, 0},
	{1, 1}, {1, 2}, {1, 3},
	{2, 3}, {3, 3},
	{3, 2}, {3, 1},
	{2, 1},
	{2, 2},
	{2, 1},
	{3, 1}, {3, 2},
	{3, 3}, {2, 3},
	{1, 3}, {1, 2}, {1, 1},
	{1, 0}, {2, 0}, {3, 0},
	{4, 0}, {4, 1}, {4, 2}, {4, 3},
	{4, 4}, {3, 4}, {2, 4}, {1, 4},
	{0, 4}, {0, 3}, {0, 2}, {0, 1},
}

// Roulette walks a single lit LED along the spiral path, one step per frame
type Roulette struct {
	step int
}

// NewRoulette creates a roulette at the start of its path
func NewRoulette() *Roulette {
	return &Roulette{}
}

// Next returns the frame with the LED at the current step lit
func (r *Roulette) Next() types.Frame {
	var f types.Frame
	if r.Finished() {
		return f
	}
	led := roulettePath[r.step]
	f.Set(led.col, led.row, true)
	r.step++
	return f
}

// Finished reports whether the whole path has been walked
func (r *Roulette) Finished() bool {
	return r.step >= len(roulettePath)
}

// Reset returns to the start of the path
func (r *Roulette) Reset() {
	r.step = 0
}

// Len returns the number of steps in the path
func (r *Roulette) Len() int {
	return len(roulettePath)
}
