package glyph

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		c     byte
		width int
		known bool
	}{
		{name: "uppercase", c: 'A', width: 4, known: true},
		{name: "lowercase folds", c: 'b', width: 4, known: true},
		{name: "wide letter", c: 'M', width: 5, known: true},
		{name: "narrow punctuation", c: '.', width: 1, known: true},
		{name: "space", c: ' ', width: 3, known: true},
		{name: "digit", c: '7', width: 4, known: true},
		{name: "control byte", c: 0x07, width: Fallback.Width(), known: false},
		{name: "unmapped printable", c: '~', width: Fallback.Width(), known: false},
		{name: "non-ascii byte", c: 0xC3, width: Fallback.Width(), known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Lookup(tt.c)
			if g.Width() != tt.width {
				t.Errorf("Lookup(%q).Width() = %d, want %d", tt.c, g.Width(), tt.width)
			}
			if Known(tt.c) != tt.known {
				t.Errorf("Known(%q) = %v, want %v", tt.c, Known(tt.c), tt.known)
			}
		})
	}
}

func TestLookupFallbackIsBox(t *testing.T) {
	g := Lookup('~')
	for row := 0; row < Height; row++ {
		if !g.Lit(0, row) || !g.Lit(g.Width()-1, row) {
			t.Errorf("fallback side column dark at row %d", row)
		}
	}
	if g.Lit(1, 2) {
		t.Error("fallback box is not hollow")
	}
}

func TestGlyphA(t *testing.T) {
	want := []string{
		".##.",
		"#..#",
		"####",
		"#..#",
		"#..#",
	}
	g := Lookup('A')
	for row, line := range want {
		for col, r := range line {
			if got := g.Lit(col, row); got != (r == '#') {
				t.Errorf("A(%d,%d) = %v, want %v", col, row, got, r == '#')
			}
		}
	}
}

func TestGlyphsFitHeight(t *testing.T) {
	for c, g := range font5x5 {
		if g.Width() == 0 || g.Width() > 5 {
			t.Errorf("glyph %q has width %d", c, g.Width())
		}
		for _, col := range g {
			if col>>Height != 0 {
				t.Errorf("glyph %q lights rows below the matrix: %#x", c, col)
			}
		}
	}
}

func TestLitOutOfRange(t *testing.T) {
	g := Lookup('H')
	if g.Lit(-1, 0) || g.Lit(g.Width(), 0) || g.Lit(0, -1) || g.Lit(0, Height) {
		t.Error("Lit() reported an out of range cell as on")
	}
}
