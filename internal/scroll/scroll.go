// Package scroll produces the frames of a message scrolling leftward across
// the matrix, one column per frame.
package scroll

import (
	"sort"

	"github.com/fcurrie/microbit-led-golang/internal/glyph"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

const (
	// DefaultCapacity is the message capacity of the small firmware variant
	DefaultCapacity = 64
	// LargeCapacity is the message capacity of the large firmware variant
	LargeCapacity = 104
	// Gap is the number of blank columns between consecutive characters
	Gap = 1
	// Trailing is the blank region after the message, one matrix wide, so
	// the last character leaves the matrix before the message repeats
	Trailing = types.Cols
)

// Message is a restartable, finite sequence of scroll frames. The stored
// text never changes after New; only the offset moves.
type Message struct {
	buf       []byte
	n         int
	starts    []int
	content   int
	width     int
	offset    int
	finished  bool
	truncated bool
}

// New creates a message holding at most capacity bytes of text. Longer
// text is truncated to capacity; it is never rejected. A non-positive
// capacity selects DefaultCapacity.
func New(text string, capacity int) *Message {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	m := &Message{
		buf:    make([]byte, capacity),
		starts: make([]int, capacity),
	}
	m.n = copy(m.buf, text)
	m.truncated = len(text) > capacity

	col := 0
	for i := 0; i < m.n; i++ {
		if i > 0 {
			col += Gap
		}
		m.starts[i] = col
		col += glyph.Lookup(m.buf[i]).Width()
	}
	m.content = col
	m.width = col + Trailing
	return m
}

// Next returns the next frame and advances by one column. Once the message
// is finished it returns a blank frame and stays put until Reset.
func (m *Message) Next() types.Frame {
	var f types.Frame
	if m.finished {
		return f
	}

	// Stream column m.offset lands on the rightmost matrix column.
	left := m.offset - (types.Cols - 1)
	for x := 0; x < types.Cols; x++ {
		bits := m.Column(left + x)
		for y := 0; y < types.Rows; y++ {
			f[y][x] = bits&(1<<y) != 0
		}
	}

	m.offset++
	if m.offset >= m.width {
		m.finished = true
	}
	return f
}

// Finished reports whether all Width frames have been produced
func (m *Message) Finished() bool {
	return m.finished
}

// Reset rewinds to the first frame
func (m *Message) Reset() {
	m.offset = 0
	m.finished = false
}

// Column returns the bits of stream column c. Columns outside the text,
// including gaps and the trailing region, are blank.
func (m *Message) Column(c int) byte {
	if c < 0 || c >= m.content {
		return 0
	}
	i := sort.Search(m.n, func(i int) bool { return m.starts[i] > c }) - 1
	g := glyph.Lookup(m.buf[i])
	col := c - m.starts[i]
	if col >= g.Width() {
		return 0
	}
	return g[col]
}

// Width returns the number of frames in one pass of the message
func (m *Message) Width() int {
	return m.width
}

// Offset returns the index of the next frame
func (m *Message) Offset() int {
	return m.offset
}

// Text returns the retained text
func (m *Message) Text() string {
	return string(m.buf[:m.n])
}

// Capacity returns the fixed capacity chosen at construction
func (m *Message) Capacity() int {
	return len(m.buf)
}

// Truncated reports whether the text given to New exceeded the capacity
func (m *Message) Truncated() bool {
	return m.truncated
}

// Columns returns the full column stream of text, trailing region included
func Columns(text string) []byte {
	m := New(text, len(text))
	cols := make([]byte, m.width)
	for c := range cols {
		cols[c] = m.Column(c)
	}
	return cols
}
