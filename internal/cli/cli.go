// Package cli holds the flags and bootstrap shared by the coinassets
// commands.
package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/gkirito/coinassets/internal/config"
	"github.com/gkirito/coinassets/internal/logging"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// Globals are the persistent flags every command accepts.
type Globals struct {
	ConfigPath string
	LogLevel   string
	LogFile    string
}

// Bind registers the persistent flags on root.
func (g *Globals) Bind(root *cobra.Command) {
	pf := root.PersistentFlags()
	pf.StringVarP(&g.ConfigPath, "config", "c", "", "path to coinassets.yaml")
	pf.StringVar(&g.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&g.LogFile, "log-file", "", "also write JSON logs to this rotating file")
}

// Load resolves the config, applies the logging flags, initializes logging
// and validates the result.
func (g *Globals) Load() (config.Config, error) {
	cfg, src, err := config.Load(g.ConfigPath)
	if err != nil {
		return config.Config{}, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if g.LogFile != "" {
		cfg.Log.File = g.LogFile
	}
	logging.Init(cfg.Log.Level, logging.FileOptions{Path: cfg.Log.File})

	if src != "" {
		logging.Debug("config loaded", "path", src)
	} else {
		logging.Debug("no config file found, using defaults")
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// VersionCommand prints name, version and build date.
func VersionCommand(name string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and build date",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), VersionString(name))
		},
	}
}

// VersionString formats the version line.
func VersionString(name string) string {
	return fmt.Sprintf("%s %s (%s) %s/%s", name, version, buildDate, runtime.GOOS, runtime.GOARCH)
}
