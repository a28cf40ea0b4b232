// Package glyph holds the 5-row bitmap font used to build scroll frames.
//
// Each glyph is stored column-major, one byte per column, where bit r of a
// column byte lights row r (row 0 is the top row). Glyphs are as narrow as
// their drawing, so widths vary from one to five columns.
package glyph

// Height is the number of rows in every glyph
const Height = 5

// Glyph is the column bitmap of one character. Glyphs returned by Lookup
// are shared and must not be modified.
type Glyph []byte

// Width returns the number of columns
func (g Glyph) Width() int {
	return len(g)
}

// Lit reports whether the cell at column col, row row is on
func (g Glyph) Lit(col, row int) bool {
	if col < 0 || col >= len(g) || row < 0 || row >= Height {
		return false
	}
	return g[col]&(1<<row) != 0
}

// Fallback is drawn for every character outside the table: a hollow box
var Fallback = Glyph{0x1F, 0x11, 0x11, 0x1F}

// font5x5 maps printable ASCII to glyph columns
var font5x5 = map[byte]Glyph{
	'A':  {0x1E, 0x05, 0x05, 0x1E},
	'B':  {0x1F, 0x15, 0x15, 0x0A},
	'C':  {0x0E, 0x11, 0x11, 0x11},
	'D':  {0x1F, 0x11, 0x11, 0x0E},
	'E':  {0x1F, 0x15, 0x15, 0x11},
	'F':  {0x1F, 0x05, 0x05, 0x01},
	'G':  {0x0E, 0x11, 0x15, 0x0D},
	'H':  {0x1F, 0x04, 0x04, 0x1F},
	'I':  {0x11, 0x1F, 0x11},
	'J':  {0x09, 0x11, 0x11, 0x0F},
	'K':  {0x1F, 0x04, 0x0A, 0x11},
	'L':  {0x1F, 0x10, 0x10, 0x10},
	'M':  {0x1F, 0x02, 0x04, 0x02, 0x1F},
	'N':  {0x1F, 0x02, 0x04, 0x08, 0x1F},
	'O':  {0x0E, 0x11, 0x11, 0x0E},
	'P':  {0x1F, 0x05, 0x05, 0x02},
	'Q':  {0x06, 0x09, 0x09, 0x16},
	'R':  {0x1F, 0x05, 0x0D, 0x12},
	'S':  {0x12, 0x15, 0x15, 0x09},
	'T':  {0x01, 0x01, 0x1F, 0x01, 0x01},
	'U':  {0x0F, 0x10, 0x10, 0x0F},
	'V':  {0x07, 0x08, 0x10, 0x08, 0x07},
	'W':  {0x1F, 0x08, 0x04, 0x08, 0x1F},
	'X':  {0x1B, 0x04, 0x04, 0x1B},
	'Y':  {0x01, 0x02, 0x1C, 0x02, 0x01},
	'Z':  {0x19, 0x15, 0x13, 0x11},
	'0':  {0x0E, 0x11, 0x11, 0x0E},
	'1':  {0x12, 0x1F, 0x10},
	'2':  {0x19, 0x15, 0x15, 0x12},
	'3':  {0x11, 0x15, 0x15, 0x0A},
	'4':  {0x0C, 0x0A, 0x1F, 0x08},
	'5':  {0x17, 0x15, 0x15, 0x09},
	'6':  {0x0E, 0x15, 0x15, 0x08},
	'7':  {0x01, 0x19, 0x05, 0x03},
	'8':  {0x0A, 0x15, 0x15, 0x0A},
	'9':  {0x02, 0x15, 0x15, 0x0E},
	' ':  {0x00, 0x00, 0x00},
	'!':  {0x17},
	'.':  {0x10},
	',':  {0x10, 0x08},
	':':  {0x0A},
	'-':  {0x04, 0x04, 0x04},
	'+':  {0x04, 0x0E, 0x04},
	'?':  {0x01, 0x15, 0x05, 0x02},
	'\'': {0x03},
	'/':  {0x08, 0x04, 0x02, 0x01},
	'=':  {0x0A, 0x0A, 0x0A},
	'(':  {0x0E, 0x11},
	')':  {0x11, 0x0E},
	'#':  {0x0A, 0x1F, 0x0A, 0x1F, 0x0A},
	'*':  {0x05, 0x02, 0x05},
	'<':  {0x04, 0x0A, 0x11},
	'>':  {0x11, 0x0A, 0x04},
	'_':  {0x10, 0x10, 0x10},
	'%':  {0x19, 0x04, 0x02, 0x11},
}

var table [128]Glyph

func init() {
	for c, g := range font5x5 {
		table[c] = g
	}
}

// Lookup returns the glyph for c. Lowercase letters share the uppercase
// drawing; anything else outside the table resolves to Fallback.
func Lookup(c byte) Glyph {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	if c < 128 && table[c] != nil {
		return table[c]
	}
	return Fallback
}

// Known reports whether c has its own glyph
func Known(c byte) bool {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return c < 128 && table[c] != nil
}
