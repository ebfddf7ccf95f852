package icon

import "image/color"

// Shape selects how an Instruction is drawn.
type Shape int

const (
	ShapeCircle Shape = iota
	ShapeLine
	ShapePolygon
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	case ShapePolygon:
		return "polygon"
	}
	return "unknown"
}

var (
	black = color.RGBA{0, 0, 0, 255}
	white = color.RGBA{255, 255, 255, 255}
)

// Instruction is one drawing step in design space. Circles are centered on
// the transform center; Points is unused for them.
type Instruction struct {
	Shape   Shape
	Points  []Point
	Radius  float64 // circle radius
	Width   float64 // stroke width: outline for circles, line width for lines
	Fill    color.RGBA
	Outline color.RGBA // circles only
}

// Base stroke widths in design units.
const (
	circleRadius   = 123.5
	circleOutline  = 10
	lineWidth      = 4
	highlightWidth = 3
)

func line(x1, y1, x2, y2 float64) Instruction {
	return Instruction{Shape: ShapeLine, Points: []Point{{x1, y1}, {x2, y2}}, Width: lineWidth, Fill: black}
}

func triangle(pts ...Point) Instruction {
	return Instruction{Shape: ShapePolygon, Points: pts, Fill: black}
}

// Logo returns the coin logo as an ordered instruction list: the ring, the
// nine cube edges, the three shaded faces, and the white highlight that is
// drawn last so it cuts across the shading.
func Logo() []Instruction {
	return []Instruction{
		{Shape: ShapeCircle, Radius: circleRadius, Width: circleOutline, Fill: white, Outline: black},

		line(130.5, 11, 130.5, 128),            // center spine
		line(130.5, 11, 28.5, 66),              // apex to upper left
		line(130.5, 11, 228, 70),               // apex to upper right
		line(130.5, 129.5, 31, 190),            // center to lower left
		line(28.0625, 63.9995, 32.4998, 192.5), // left edge
		line(30.0019, 190.991, 134.5, 246),     // bottom left
		line(133.001, 244.999, 234, 185.5),     // bottom right
		line(232, 186.5, 228, 68.5),            // right edge
		line(131.5, 130, 232.5, 186.5),         // center to right

		triangle(Point{27.75, 64}, Point{229, 70}, Point{130.5, 129.5}),
		triangle(Point{134.014, 127}, Point{229, 70}, Point{194.665, 92}),
		triangle(Point{130.5, 129}, Point{228.5, 71}, Point{133, 246.5}),

		{Shape: ShapeLine, Points: []Point{{225.5, 71.5}, {130.5, 129}}, Width: highlightWidth, Fill: white},
	}
}
