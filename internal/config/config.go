package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gkirito/coinassets/internal/paths"
)

// Defaults mirror the paths the web app's build expects.
const (
	DefaultIconOutDir   = "public"
	DefaultRenderer     = "vector"
	DefaultMappingPath  = "src/data/encryption-map-001-500.json"
	DefaultBaseURL      = "https://cursor.gkirito.com/?key="
	DefaultQROutDir     = "output"
	DefaultEncoder      = "skip2"
	DefaultModuleSize   = 10
	DefaultBorder       = 4
	DefaultProgressStep = 50
	DefaultMapStart     = 1
	DefaultMapEnd       = 500
)

var (
	renderers = []string{"vector", "placeholder"}
	encoders  = []string{"skip2", "barcode"}
)

// Icon holds settings for mkicon.
type Icon struct {
	OutDir   string `yaml:"out_dir"`
	Renderer string `yaml:"renderer"`
}

// QR holds settings for mkqr.
type QR struct {
	MappingPath  string `yaml:"mapping"`
	BaseURL      string `yaml:"base_url"`
	OutDir       string `yaml:"out_dir"`
	Encoder      string `yaml:"encoder"`
	ModuleSize   int    `yaml:"module_size"`
	Border       int    `yaml:"border"`
	ProgressStep int    `yaml:"progress_every"`
	History      string `yaml:"history,omitempty"`
}

// KeyMap holds settings for mkmap.
type KeyMap struct {
	Start int    `yaml:"start"`
	End   int    `yaml:"end"`
	Out   string `yaml:"out"`
}

// Log holds logging settings shared by every command.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"`
}

// Config is the top-level coinassets.yaml document.
type Config struct {
	Icon   Icon   `yaml:"icon"`
	QR     QR     `yaml:"qr"`
	KeyMap KeyMap `yaml:"keymap"`
	Log    Log    `yaml:"log"`
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Icon: Icon{OutDir: DefaultIconOutDir, Renderer: DefaultRenderer},
		QR: QR{
			MappingPath:  DefaultMappingPath,
			BaseURL:      DefaultBaseURL,
			OutDir:       DefaultQROutDir,
			Encoder:      DefaultEncoder,
			ModuleSize:   DefaultModuleSize,
			Border:       DefaultBorder,
			ProgressStep: DefaultProgressStep,
		},
		KeyMap: KeyMap{Start: DefaultMapStart, End: DefaultMapEnd, Out: DefaultMappingPath},
		Log:    Log{Level: "info"},
	}
}

// Load reads and parses a config file. It tries, in order:
//  1. explicitPath (if non-empty; a missing file is an error)
//  2. coinassets.yaml next to the running binary
//  3. coinassets.yaml in the working directory
//  4. ~/.config/coinassets/coinassets.yaml
//
// When none of the implicit locations exist, Default() is returned with an
// empty source path.
func Load(explicitPath string) (Config, string, error) {
	if explicitPath != "" {
		cfg, err := readConfig(explicitPath)
		return cfg, explicitPath, err
	}

	for _, p := range candidates() {
		if _, err := os.Stat(p); err == nil {
			cfg, err := readConfig(p)
			return cfg, p, err
		}
	}
	return Default(), "", nil
}

func candidates() []string {
	var out []string
	if exe, err := os.Executable(); err == nil {
		out = append(out, filepath.Join(filepath.Dir(exe), paths.ConfigFileName))
	}
	out = append(out, paths.ConfigFileName)
	out = append(out, filepath.Join(paths.DataDir(), paths.ConfigFileName))
	return out
}

// Parse decodes YAML on top of Default(). yaml.v3 only touches fields that
// are present in the document, so omitted keys keep their defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if !contains(renderers, c.Icon.Renderer) {
		return fmt.Errorf("icon.renderer %q: must be one of %s", c.Icon.Renderer, strings.Join(renderers, ", "))
	}
	if !contains(encoders, c.QR.Encoder) {
		return fmt.Errorf("qr.encoder %q: must be one of %s", c.QR.Encoder, strings.Join(encoders, ", "))
	}
	if c.QR.ModuleSize <= 0 {
		return fmt.Errorf("qr.module_size must be positive, got %d", c.QR.ModuleSize)
	}
	if c.QR.Border < 0 {
		return fmt.Errorf("qr.border must not be negative, got %d", c.QR.Border)
	}
	if c.QR.ProgressStep <= 0 {
		return fmt.Errorf("qr.progress_every must be positive, got %d", c.QR.ProgressStep)
	}
	if c.KeyMap.Start < 1 || c.KeyMap.End > 999999 || c.KeyMap.Start > c.KeyMap.End {
		return fmt.Errorf("keymap range %d..%d: must satisfy 1 <= start <= end <= 999999", c.KeyMap.Start, c.KeyMap.End)
	}
	return nil
}

func readConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
