package vector

import (
	"fmt"
	"math"
)

// Fill is how the interior of a shape is painted. Implementations are
// restricted to this package.
type Fill interface {
	fill() // marker method
}

// Colour is a non-premultiplied RGBA colour with components in [0,1].
type Colour struct {
	R float64 `cty:"r" json:"r"`
	G float64 `cty:"g" json:"g"`
	B float64 `cty:"b" json:"b"`
	A float64 `cty:"a" json:"a"`
}

func (Colour) fill() {}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Colour {
	return Colour{R: r, G: g, B: b, A: 1}
}

// Hex returns the #rrggbbaa form.
func (c Colour) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B), channel(c.A))
}

func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// Stop is one colour stop of a gradient, Offset in [0,1].
type Stop struct {
	Offset float64 `cty:"offset" json:"offset"`
	Colour Colour  `cty:"colour" json:"colour"`
}

// Gradient is a linear gradient between Start and End.
type Gradient struct {
	Start Point  `cty:"start" json:"start"`
	End   Point  `cty:"end" json:"end"`
	Stops []Stop `cty:"stops" json:"stops"`
}

func (Gradient) fill() {}
