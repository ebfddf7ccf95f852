// mkqr generates one QR code PNG per entry of the key mapping file.
// Usage: go run ./cmd/mkqr [--map PATH] [--base-url URL] [--out DIR]
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gkirito/coinassets/internal/cli"
	"github.com/gkirito/coinassets/internal/config"
	"github.com/gkirito/coinassets/internal/logging"
	"github.com/gkirito/coinassets/internal/mapping"
	"github.com/gkirito/coinassets/internal/qrcode"
	"github.com/gkirito/coinassets/internal/runlog"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type batchFlags struct {
	mapPath string
	baseURL string
	outDir  string
	encoder string
	history string
}

func newRootCmd() *cobra.Command {
	var (
		g cli.Globals
		f batchFlags
	)

	root := &cobra.Command{
		Use:           "mkqr",
		Short:         "Generate QR codes for every entry of the key mapping file",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.Load()
			if err != nil {
				return err
			}
			applyBatchFlags(cmd, &cfg, f)
			return runBatch(cmd, cfg)
		},
	}
	g.Bind(root)

	fl := root.Flags()
	fl.StringVarP(&f.mapPath, "map", "m", "", "mapping file (default: config qr.mapping or "+config.DefaultMappingPath+")")
	fl.StringVar(&f.baseURL, "base-url", "", "URL prefix the key is appended to (default: "+config.DefaultBaseURL+")")
	fl.StringVarP(&f.outDir, "out", "o", "", "output directory (default: config qr.out_dir or "+config.DefaultQROutDir+")")
	fl.StringVar(&f.encoder, "encoder", "", "QR encoder: skip2 or barcode")
	fl.StringVar(&f.history, "history", "", "record the batch in this history file (.db for SQLite)")

	root.AddCommand(newHistoryCmd(&g))
	root.AddCommand(cli.VersionCommand("mkqr"))
	return root
}

func applyBatchFlags(cmd *cobra.Command, cfg *config.Config, f batchFlags) {
	fl := cmd.Flags()
	if fl.Changed("map") {
		cfg.QR.MappingPath = f.mapPath
	}
	if fl.Changed("base-url") {
		cfg.QR.BaseURL = f.baseURL
	}
	if fl.Changed("out") {
		cfg.QR.OutDir = f.outDir
	}
	if fl.Changed("encoder") {
		cfg.QR.Encoder = f.encoder
	}
	if fl.Changed("history") {
		cfg.QR.History = f.history
	}
}

func runBatch(cmd *cobra.Command, cfg config.Config) error {
	enc, err := qrcode.NewEncoder(cfg.QR.Encoder)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	b := &qrcode.Batch{
		Gen: qrcode.Generator{
			Encoder: enc,
			Options: qrcode.Options{ModuleSize: cfg.QR.ModuleSize, Border: cfg.QR.Border},
		},
		Out:           out,
		ProgressEvery: cfg.QR.ProgressStep,
		Progress:      progressFunc(out),
	}

	if cfg.QR.History != "" {
		store, err := runlog.Open(cfg.QR.History)
		if err != nil {
			logging.Warn("history disabled", "path", cfg.QR.History, "err", err)
		} else {
			defer store.Close()
			b.Recorder = store
		}
	}

	_, err = b.Run(cfg.QR.MappingPath, cfg.QR.BaseURL, cfg.QR.OutDir)
	if isInputError(err) {
		// Already reported; an unusable mapping file ends the run quietly.
		return nil
	}
	return err
}

func isInputError(err error) bool {
	return errors.Is(err, mapping.ErrNotFound) ||
		errors.Is(err, mapping.ErrParse) ||
		errors.Is(err, mapping.ErrNoMappings)
}
