// Package qrcode turns URLs into QR code PNGs, one file per mapping entry.
package qrcode

import (
	"fmt"
	"image"
	"image/color"

	"github.com/boombuler/barcode/qr"
	skip2 "github.com/skip2/go-qrcode"
)

// Encoder names accepted by NewEncoder.
const (
	EncoderSkip2   = "skip2"
	EncoderBarcode = "barcode"
)

// Matrix is a square QR symbol without quiet zone; m[y][x] is true for a
// dark module.
type Matrix [][]bool

// Size returns the number of modules per side.
func (m Matrix) Size() int { return len(m) }

// Encoder builds the module matrix for content using the smallest version
// that fits at low error correction.
type Encoder interface {
	Name() string
	Encode(content string) (Matrix, error)
}

// NewEncoder returns the encoder registered under name.
func NewEncoder(name string) (Encoder, error) {
	switch name {
	case EncoderSkip2, "":
		return Skip2Encoder{}, nil
	case EncoderBarcode:
		return BarcodeEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown encoder %q (want %s or %s)", name, EncoderSkip2, EncoderBarcode)
}

// Skip2Encoder uses github.com/skip2/go-qrcode.
type Skip2Encoder struct{}

func (Skip2Encoder) Name() string { return EncoderSkip2 }

func (Skip2Encoder) Encode(content string) (Matrix, error) {
	q, err := skip2.New(content, skip2.Low)
	if err != nil {
		return nil, err
	}
	q.DisableBorder = true
	return Matrix(q.Bitmap()), nil
}

// BarcodeEncoder uses github.com/boombuler/barcode/qr. The returned barcode
// is an image with one pixel per module.
type BarcodeEncoder struct{}

func (BarcodeEncoder) Name() string { return EncoderBarcode }

func (BarcodeEncoder) Encode(content string) (Matrix, error) {
	bc, err := qr.Encode(content, qr.L, qr.Auto)
	if err != nil {
		return nil, err
	}
	return matrixFromImage(bc), nil
}

func matrixFromImage(img image.Image) Matrix {
	b := img.Bounds()
	m := make(Matrix, b.Dy())
	for y := range m {
		m[y] = make([]bool, b.Dx())
		for x := range m[y] {
			m[y][x] = isDark(img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return m
}

func isDark(c color.Color) bool {
	g := color.GrayModel.Convert(c).(color.Gray)
	return g.Y < 0x80
}
