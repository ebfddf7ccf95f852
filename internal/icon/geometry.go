package icon

import "image"

// The logo is authored on a 287×274 canvas; the scale transform is anchored
// at (Origin, Origin).
const (
	DesignWidth  = 287
	DesignHeight = 274
	Origin       = 128.5
)

// Point is a coordinate in design space.
type Point struct {
	X, Y float64
}

// Transform maps design space to device pixels for one output size.
type Transform struct {
	Center int     // device pixel the design origin lands on (both axes)
	Scale  float64 // device pixels per design unit
}

// Apply maps p to device pixels, truncating toward zero.
func (t Transform) Apply(p Point) image.Point {
	return image.Point{
		X: int((p.X-Origin)*t.Scale + float64(t.Center)),
		Y: int((p.Y-Origin)*t.Scale + float64(t.Center)),
	}
}

// Length scales a design-space length, truncating toward zero.
func (t Transform) Length(v float64) int {
	return int(v * t.Scale)
}

// StrokeWidth returns the device width for a design-space stroke width,
// never thinner than one pixel.
func (t Transform) StrokeWidth(base float64) int {
	if w := t.Length(base); w > 1 {
		return w
	}
	return 1
}
