// mkicon draws the coin logo and writes the web app's favicon.ico,
// logo192.png and logo512.png.
// Usage: go run ./cmd/mkicon [--out public] [--renderer vector|placeholder]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gkirito/coinassets/internal/cli"
	"github.com/gkirito/coinassets/internal/icon"
	"github.com/gkirito/coinassets/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		g        cli.Globals
		outDir   string
		renderer string
	)

	root := &cobra.Command{
		Use:           "mkicon",
		Short:         "Generate favicon.ico, logo192.png and logo512.png from the coin logo",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("out") {
				cfg.Icon.OutDir = outDir
			}
			if cmd.Flags().Changed("renderer") {
				cfg.Icon.Renderer = renderer
			}

			r, err := icon.NewRenderer(cfg.Icon.Renderer)
			if err != nil {
				return err
			}
			logging.Debug("rendering icons", "renderer", r.Name(), "out", cfg.Icon.OutDir)

			written, err := r.Render(cfg.Icon.OutDir)
			if err != nil {
				return fmt.Errorf("writing icons: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, p := range written {
				fmt.Fprintf(out, "  wrote %s\n", p)
			}
			if r.Name() == icon.RendererPlaceholder {
				fmt.Fprintln(out, "Created placeholder favicon.ico")
				fmt.Fprintln(out, "Run with --renderer vector to draw the logo and the PNG logos.")
				return nil
			}
			fmt.Fprintln(out, "Icon files created from the coin logo.")
			return nil
		},
	}
	g.Bind(root)
	root.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: config icon.out_dir or public)")
	root.Flags().StringVar(&renderer, "renderer", "", "vector or placeholder (default: config icon.renderer or vector)")
	root.AddCommand(cli.VersionCommand("mkicon"))
	return root
}
