package qrcode

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gkirito/coinassets/internal/paths"
)

// ErrBadFilename rejects names that would escape the output directory.
var ErrBadFilename = errors.New("filename must be a plain name")

// Generator writes one QR PNG per call.
type Generator struct {
	Encoder Encoder
	Options Options
}

// NewGenerator returns a Generator with DefaultOptions.
func NewGenerator(enc Encoder) Generator {
	return Generator{Encoder: enc, Options: DefaultOptions()}
}

// Generate encodes url and writes it to outputDir/filename.png, creating
// outputDir if needed. It returns the written path.
func (g Generator) Generate(url, filename, outputDir string) (string, error) {
	if err := checkFilename(filename); err != nil {
		return "", err
	}
	if err := paths.EnsureDir(outputDir); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	m, err := g.Encoder.Encode(url)
	if err != nil {
		return "", fmt.Errorf("encoding: %w", err)
	}
	data, err := EncodePNG(m, g.Options)
	if err != nil {
		return "", fmt.Errorf("rendering: %w", err)
	}

	p := filepath.Join(outputDir, filename+".png")
	if err := paths.AtomicWrite(p, data); err != nil {
		return "", err
	}
	return p, nil
}

func checkFilename(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadFilename, name)
	}
	return nil
}
