package icon

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"
)

// kappa places the control points of a cubic quarter-circle arc.
var kappa = float32(4 * (math.Sqrt2 - 1) / 3)

// Rasterize draws the logo on a transparent size×size canvas.
func Rasterize(size int, t Transform) *image.RGBA {
	return RasterizeInstructions(Logo(), size, t)
}

// RasterizeInstructions draws ins in order onto a transparent canvas.
// Integer device coordinates address pixel centers.
func RasterizeInstructions(ins []Instruction, size int, t Transform) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	z := vector.NewRasterizer(size, size)

	for _, in := range ins {
		switch in.Shape {
		case ShapeCircle:
			drawRing(z, dst, in, t)
		case ShapeLine:
			if len(in.Points) != 2 {
				continue
			}
			a, b := t.Apply(in.Points[0]), t.Apply(in.Points[1])
			z.Reset(size, size)
			strokePath(z, a, b, float32(t.StrokeWidth(in.Width)))
			fill(z, dst, in.Fill)
		case ShapePolygon:
			if len(in.Points) < 3 {
				continue
			}
			z.Reset(size, size)
			for i, p := range in.Points {
				x, y := pixelCenter(t.Apply(p))
				if i == 0 {
					z.MoveTo(x, y)
				} else {
					z.LineTo(x, y)
				}
			}
			z.ClosePath()
			fill(z, dst, in.Fill)
		}
	}
	return dst
}

// drawRing paints the outline color as a full disc, then the fill color as
// an inner disc, leaving an outline ring of the stroke width.
func drawRing(z *vector.Rasterizer, dst *image.RGBA, in Instruction, t Transform) {
	size := dst.Bounds().Dx()
	cx, cy := float32(t.Center)+0.5, float32(t.Center)+0.5
	r := float32(t.Length(in.Radius)) + 0.5
	w := float32(t.StrokeWidth(in.Width))

	z.Reset(size, size)
	circlePath(z, cx, cy, r)
	fill(z, dst, in.Outline)

	if inner := r - w; inner > 0 {
		z.Reset(size, size)
		circlePath(z, cx, cy, inner)
		fill(z, dst, in.Fill)
	}
}

func circlePath(z *vector.Rasterizer, cx, cy, r float32) {
	k := kappa * r
	z.MoveTo(cx+r, cy)
	z.CubeTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r)
	z.CubeTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy)
	z.CubeTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r)
	z.CubeTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy)
	z.ClosePath()
}

// strokePath adds a w-wide quad along a→b. A zero-length segment becomes a
// w×w square so it still leaves a mark.
func strokePath(z *vector.Rasterizer, a, b image.Point, w float32) {
	ax, ay := pixelCenter(a)
	bx, by := pixelCenter(b)
	h := w / 2

	dx, dy := bx-ax, by-ay
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		z.MoveTo(ax-h, ay-h)
		z.LineTo(ax+h, ay-h)
		z.LineTo(ax+h, ay+h)
		z.LineTo(ax-h, ay+h)
		z.ClosePath()
		return
	}
	nx, ny := -dy/l*h, dx/l*h
	z.MoveTo(ax+nx, ay+ny)
	z.LineTo(bx+nx, by+ny)
	z.LineTo(bx-nx, by-ny)
	z.LineTo(ax-nx, ay-ny)
	z.ClosePath()
}

func fill(z *vector.Rasterizer, dst *image.RGBA, c color.RGBA) {
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

func pixelCenter(p image.Point) (float32, float32) {
	return float32(p.X) + 0.5, float32(p.Y) + 0.5
}
