package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"

	ico "github.com/sergeymakinen/go-ico"
	xdraw "golang.org/x/image/draw"

	"github.com/gkirito/coinassets/internal/paths"
)

const (
	FaviconName = "favicon.ico"
	Logo192Name = "logo192.png"
	Logo512Name = "logo512.png"
)

// Format is the container a Target is written in.
type Format int

const (
	FormatPNG Format = iota
	FormatICO
)

// Target is one output file.
type Target struct {
	Name      string
	Size      int
	Transform Transform
	Format    Format
}

// faviconSizes are the images embedded in favicon.ico; the largest is the
// rendered size and smaller ones are downscaled from it.
var faviconSizes = []int{16, 32}

// Targets lists the three files the web app ships. The center/scale pairs
// are tuned per size rather than derived from it.
func Targets() []Target {
	return []Target{
		{Name: FaviconName, Size: 32, Transform: Transform{Center: 16, Scale: 0.12}, Format: FormatICO},
		{Name: Logo192Name, Size: 192, Transform: Transform{Center: 96, Scale: 0.7}, Format: FormatPNG},
		{Name: Logo512Name, Size: 512, Transform: Transform{Center: 256, Scale: 1.8}, Format: FormatPNG},
	}
}

// Renderer writes the icon set into a directory and returns the written
// paths in order.
type Renderer interface {
	Name() string
	Render(outDir string) ([]string, error)
}

// Renderer names accepted by NewRenderer.
const (
	RendererVector      = "vector"
	RendererPlaceholder = "placeholder"
)

// NewRenderer returns the renderer registered under name.
func NewRenderer(name string) (Renderer, error) {
	switch name {
	case RendererVector, "":
		return VectorRenderer{Targets: Targets()}, nil
	case RendererPlaceholder:
		return PlaceholderRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown renderer %q (want %s or %s)", name, RendererVector, RendererPlaceholder)
}

// VectorRenderer rasterizes the logo for every target.
type VectorRenderer struct {
	Targets []Target
}

func (VectorRenderer) Name() string { return RendererVector }

func (r VectorRenderer) Render(outDir string) ([]string, error) {
	var written []string
	for _, t := range r.Targets {
		data, err := Encode(t)
		if err != nil {
			return written, fmt.Errorf("%s: %w", t.Name, err)
		}
		p := filepath.Join(outDir, t.Name)
		if err := paths.AtomicWrite(p, data); err != nil {
			return written, err
		}
		written = append(written, p)
	}
	return written, nil
}

// Encode renders t and returns the encoded file contents.
func Encode(t Target) ([]byte, error) {
	img := Rasterize(t.Size, t.Transform)

	var buf bytes.Buffer
	switch t.Format {
	case FormatICO:
		if err := ico.EncodeAll(&buf, iconSet(img)); err != nil {
			return nil, err
		}
	default:
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// iconSet returns img at every favicon size, smallest first.
func iconSet(img image.Image) []image.Image {
	src := img.Bounds()
	set := make([]image.Image, 0, len(faviconSizes))
	for _, s := range faviconSizes {
		if s == src.Dx() {
			set = append(set, img)
			continue
		}
		dst := image.NewRGBA(image.Rect(0, 0, s, s))
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, src, xdraw.Over, nil)
		set = append(set, dst)
	}
	return set
}

// PlaceholderRenderer writes a fixed minimal favicon.ico and leaves the PNG
// logos untouched.
type PlaceholderRenderer struct{}

func (PlaceholderRenderer) Name() string { return RendererPlaceholder }

func (PlaceholderRenderer) Render(outDir string) ([]string, error) {
	p := filepath.Join(outDir, FaviconName)
	if err := paths.AtomicWrite(p, Placeholder()); err != nil {
		return nil, err
	}
	return []string{p}, nil
}

// placeholderHeader is an ICONDIR for one 16×16 8-bit entry of 0x568 bytes
// at offset 22.
var placeholderHeader = []byte{
	0x00, 0x00, 0x01, 0x00, 0x01, 0x00,
	0x10, 0x10, 0x00, 0x00, 0x01, 0x00, 0x08, 0x00,
	0x68, 0x05, 0x00, 0x00, 0x16, 0x00, 0x00, 0x00,
}

const placeholderPadding = 0x568

// Placeholder returns the placeholder favicon bytes.
func Placeholder() []byte {
	out := make([]byte, len(placeholderHeader)+placeholderPadding)
	copy(out, placeholderHeader)
	return out
}
