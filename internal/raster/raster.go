// Package raster draws vector shapes onto an oversampled canvas and reduces
// the result to an LED frame.
package raster

import (
	"image"

	"github.com/srwiley/rasterx"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// Scale is the number of canvas pixels per LED along each axis
const Scale = 16

// DefaultCoverage is the fraction of a cell that must be painted to light it
const DefaultCoverage = 0.4

// Width and Height of a canvas in pixels
const (
	Width  = types.Cols * Scale
	Height = types.Rows * Scale
)

// Canvas is an oversampled drawing surface the size of the matrix
type Canvas struct {
	Img     *image.RGBA
	Scanner *rasterx.ScannerGV
}

// NewCanvas creates an empty canvas
func NewCanvas() *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	return &Canvas{
		Img:     img,
		Scanner: rasterx.NewScannerGV(Width, Height, img, img.Bounds()),
	}
}

// Coverage returns the painted fraction of the cell at col, row
func (c *Canvas) Coverage(col, row int) float64 {
	var sum int
	for y := row * Scale; y < (row+1)*Scale; y++ {
		for x := col * Scale; x < (col+1)*Scale; x++ {
			sum += int(c.Img.RGBAAt(x, y).A)
		}
	}
	return float64(sum) / float64(255*Scale*Scale)
}

// Frame lights every cell whose coverage is at least min
func (c *Canvas) Frame(min float64) types.Frame {
	var f types.Frame
	for row := 0; row < types.Rows; row++ {
		for col := 0; col < types.Cols; col++ {
			f.Set(col, row, c.Coverage(col, row) >= min)
		}
	}
	return f
}
