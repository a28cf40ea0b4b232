// Package compass turns magnetometer readings into one of eight arrows on
// the matrix.
package compass

import (
	"math"

	"github.com/fcurrie/microbit-led-golang/internal/types"
)

// Direction is a compass point
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) String() string {
	if d < North || d > NorthWest {
		return "?"
	}
	return directionNames[d]
}

// Heading returns the angle of the horizontal field in radians, (-π, π]
func Heading(x, y int32) float64 {
	return math.Atan2(float64(y), float64(x))
}

// Classify maps a heading to a direction. The sectors are not equal: east
// spans 0.6π around zero and west wraps around ±π.
func Classify(theta float64) Direction {
	switch {
	case theta < -0.9*math.Pi:
		return West
	case theta < -0.7*math.Pi:
		return SouthWest
	case theta < -0.5*math.Pi:
		return South
	case theta < -0.3*math.Pi:
		return SouthEast
	case theta < 0.3*math.Pi:
		return East
	case theta < 0.5*math.Pi:
		return NorthEast
	case theta < 0.7*math.Pi:
		return North
	case theta < 0.9*math.Pi:
		return NorthWest
	default:
		return West
	}
}

// Calibration is a constant hard-iron offset subtracted from every reading
type Calibration struct {
	OffsetX int32
	OffsetY int32
}

// Apply returns r with the offset removed
func (c Calibration) Apply(r types.Reading) types.Reading {
	r.X -= c.OffsetX
	r.Y -= c.OffsetY
	return r
}

// Point returns the direction of the calibrated reading
func (c Calibration) Point(r types.Reading) Direction {
	r = c.Apply(r)
	return Classify(Heading(r.X, r.Y))
}
