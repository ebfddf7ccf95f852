package icon

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	ico "github.com/sergeymakinen/go-ico"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRasterizeCenterAndCorners(t *testing.T) {
	img := Rasterize(512, Transform{Center: 256, Scale: 1.8})

	// Corners lie outside the ring and stay transparent.
	for _, p := range []image.Point{{0, 0}, {511, 0}, {0, 511}, {511, 511}} {
		assert.Zero(t, img.RGBAAt(p.X, p.Y).A, "corner %v", p)
	}

	// The ring's outer edge at the top (radius 222, outline 18) is black.
	top := img.RGBAAt(256, 256-222+9)
	assert.Equal(t, uint8(255), top.A)
	assert.Less(t, top.R, uint8(16))

	// Just inside the ring, away from any edge, the fill is white.
	inner := img.RGBAAt(256-150, 256+40)
	assert.Equal(t, uint8(255), inner.A)
	assert.Greater(t, inner.R, uint8(240))
}

func TestEncodeDeterministic(t *testing.T) {
	for _, tg := range Targets() {
		a, err := Encode(tg)
		require.NoError(t, err)
		b, err := Encode(tg)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(a, b), "%s differs between runs", tg.Name)
	}
}

func TestVectorRendererWritesAllFiles(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(RendererVector)
	require.NoError(t, err)

	written, err := r.Render(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, FaviconName),
		filepath.Join(dir, Logo192Name),
		filepath.Join(dir, Logo512Name),
	}, written)

	for name, size := range map[string]int{Logo192Name: 192, Logo512Name: 512} {
		f, err := os.Open(filepath.Join(dir, name))
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		f.Close()
		require.NoError(t, err)
		assert.Equal(t, size, cfg.Width, name)
		assert.Equal(t, size, cfg.Height, name)
	}

	f, err := os.Open(filepath.Join(dir, FaviconName))
	require.NoError(t, err)
	defer f.Close()
	imgs, err := ico.DecodeAll(f)
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.Equal(t, 16, imgs[0].Bounds().Dx())
	assert.Equal(t, 32, imgs[1].Bounds().Dx())
}

func TestVectorRendererRerunIsIdentical(t *testing.T) {
	dir := t.TempDir()
	r := VectorRenderer{Targets: Targets()}

	_, err := r.Render(dir)
	require.NoError(t, err)
	first := readAll(t, dir)

	_, err = r.Render(dir)
	require.NoError(t, err)
	assert.Equal(t, first, readAll(t, dir))
}

func TestVectorRendererMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")

	_, err := VectorRenderer{Targets: Targets()}.Render(dir)
	require.Error(t, err)
	assert.NoDirExists(t, dir)
}

func TestPlaceholderRenderer(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(RendererPlaceholder)
	require.NoError(t, err)

	written, err := r.Render(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, FaviconName)}, written)

	data, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Len(t, data, 1406)
	assert.Equal(t, []byte{0, 0, 1, 0, 1, 0, 16, 16}, data[:8])
	assert.Equal(t, make([]byte, 1384), data[22:])

	assert.NoFileExists(t, filepath.Join(dir, Logo192Name))
	assert.NoFileExists(t, filepath.Join(dir, Logo512Name))
}

func TestNewRendererUnknown(t *testing.T) {
	_, err := NewRenderer("cairo")
	assert.Error(t, err)
}

func readAll(t *testing.T, dir string) map[string][]byte {
	t.Helper()
	out := map[string][]byte{}
	for _, name := range []string{FaviconName, Logo192Name, Logo512Name} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		out[name] = data
	}
	return out
}
