package qrcode

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encoders(t *testing.T) []Encoder {
	t.Helper()
	var out []Encoder
	for _, name := range []string{EncoderSkip2, EncoderBarcode} {
		enc, err := NewEncoder(name)
		require.NoError(t, err)
		require.Equal(t, name, enc.Name())
		out = append(out, enc)
	}
	return out
}

func TestEncodersChooseSmallestVersion(t *testing.T) {
	for _, enc := range encoders(t) {
		m, err := enc.Encode("A1")
		require.NoError(t, err, enc.Name())
		assert.Equal(t, 21, m.Size(), "%s: version 1 fits two characters", enc.Name())
	}
}

func TestEncodersGrowToFit(t *testing.T) {
	long := "https://cursor.gkirito.com/?key=" + string(bytes.Repeat([]byte("k"), 120))
	for _, enc := range encoders(t) {
		m, err := enc.Encode(long)
		require.NoError(t, err, enc.Name())
		assert.Greater(t, m.Size(), 21, enc.Name())
		assert.Zero(t, (m.Size()-17)%4, "%s: %d is not a QR symbol size", enc.Name(), m.Size())
	}
}

func TestEncodersDrawFinderPatterns(t *testing.T) {
	for _, enc := range encoders(t) {
		m, err := enc.Encode("https://x/?key=secret1")
		require.NoError(t, err, enc.Name())
		n := m.Size()
		require.Len(t, m[0], n, enc.Name())

		// Outer ring of each 7×7 finder is dark, the ring inside it light.
		for _, c := range [][2]int{{0, 0}, {0, n - 7}, {n - 7, 0}} {
			y, x := c[0], c[1]
			assert.True(t, m[y][x], "%s finder corner %v", enc.Name(), c)
			assert.True(t, m[y+6][x+6], "%s finder corner %v", enc.Name(), c)
			assert.False(t, m[y+1][x+1], "%s finder gap %v", enc.Name(), c)
			assert.True(t, m[y+3][x+3], "%s finder center %v", enc.Name(), c)
		}
	}
}

func TestEncoderRejectsOversizedContent(t *testing.T) {
	huge := string(bytes.Repeat([]byte("x"), 4000))
	for _, enc := range encoders(t) {
		_, err := enc.Encode(huge)
		assert.Error(t, err, enc.Name())
	}
}

func TestNewEncoderUnknown(t *testing.T) {
	_, err := NewEncoder("zxing")
	assert.Error(t, err)
}

func TestRenderGeometry(t *testing.T) {
	m := Matrix{
		{true, false},
		{false, true},
	}
	o := DefaultOptions()

	img := Render(m, o)
	require.Equal(t, 100, img.Bounds().Dx()) // (2 + 2*4) * 10

	assert.Equal(t, uint8(0), img.ColorIndexAt(0, 0), "quiet zone is white")
	assert.Equal(t, uint8(1), img.ColorIndexAt(40, 40), "first module starts after the border")
	assert.Equal(t, uint8(1), img.ColorIndexAt(49, 49))
	assert.Equal(t, uint8(0), img.ColorIndexAt(50, 40))
	assert.Equal(t, uint8(1), img.ColorIndexAt(55, 55))
	assert.Equal(t, uint8(0), img.ColorIndexAt(60, 60), "trailing border is white")
}

func TestEncodePNGSize(t *testing.T) {
	for _, enc := range encoders(t) {
		m, err := enc.Encode("https://x/?key=secret1")
		require.NoError(t, err)

		data, err := EncodePNG(m, DefaultOptions())
		require.NoError(t, err)

		cfg, err := png.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, (m.Size()+8)*10, cfg.Width, enc.Name())
		assert.Equal(t, cfg.Width, cfg.Height)
	}
}
