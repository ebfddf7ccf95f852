package qrcode

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
)

// Options fixes how a symbol is drawn.
type Options struct {
	ModuleSize int // pixels per module
	Border     int // quiet zone width in modules
}

// DefaultOptions draws 10 px modules with the standard 4-module quiet zone.
func DefaultOptions() Options {
	return Options{ModuleSize: 10, Border: 4}
}

// ImageSize returns the pixel width of a symbol with n modules per side.
func (o Options) ImageSize(n int) int {
	return (n + 2*o.Border) * o.ModuleSize
}

var palette = color.Palette{color.White, color.Black}

// Render paints m black on white.
func Render(m Matrix, o Options) *image.Paletted {
	size := o.ImageSize(m.Size())
	img := image.NewPaletted(image.Rect(0, 0, size, size), palette)

	for y, row := range m {
		for x, dark := range row {
			if !dark {
				continue
			}
			x0 := (x + o.Border) * o.ModuleSize
			y0 := (y + o.Border) * o.ModuleSize
			for py := y0; py < y0+o.ModuleSize; py++ {
				off := img.PixOffset(x0, py)
				for i := 0; i < o.ModuleSize; i++ {
					img.Pix[off+i] = 1
				}
			}
		}
	}
	return img
}

// EncodePNG renders m and returns the PNG bytes.
func EncodePNG(m Matrix, o Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, Render(m, o)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
