package compass

import (
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/fcurrie/microbit-led-golang/internal/raster"
	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// arrowUp is the outline of an upward arrow in LED cell units: a triangular
// head over a one cell wide shaft
var arrowUp = [][2]float64{
	{2.5, 0},
	{5, 3},
	{3, 3},
	{3, 5},
	{2, 5},
	{2, 3},
	{0, 3},
}

// Arrow renders the arrow pointing at d
func Arrow(d Direction) types.Frame {
	return render(arrowUp, float64(d)*math.Pi/4)
}

// render fills the outline rotated clockwise by angle around the centre of
// the matrix
func render(outline [][2]float64, angle float64) types.Frame {
	c := raster.NewCanvas()
	filler := rasterx.NewFiller(raster.Width, raster.Height, c.Scanner)
	filler.SetColor(color.White)

	sin, cos := math.Sincos(angle)
	for i, p := range outline {
		dx, dy := p[0]-2.5, p[1]-2.5
		x := 2.5 + dx*cos - dy*sin
		y := 2.5 + dx*sin + dy*cos
		pt := fixed.Point26_6{X: toFixed(x * raster.Scale), Y: toFixed(y * raster.Scale)}
		if i == 0 {
			filler.Start(pt)
		} else {
			filler.Line(pt)
		}
	}
	filler.Stop(true)
	filler.Draw()

	return c.Frame(raster.DefaultCoverage)
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
