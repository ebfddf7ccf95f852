// mkmap writes the key mapping file mkqr consumes and converts single
// coin numbers to and from their key codes.
// Usage: go run ./cmd/mkmap generate [--start 1] [--end 500] [--out PATH]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gkirito/coinassets/internal/cli"
	"github.com/gkirito/coinassets/internal/coinkey"
	"github.com/gkirito/coinassets/internal/logging"
	"github.com/gkirito/coinassets/internal/mapping"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var g cli.Globals

	root := &cobra.Command{
		Use:           "mkmap",
		Short:         "Generate the coin key mapping file",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	g.Bind(root)
	root.AddCommand(newGenerateCmd(&g), newEncodeCmd(), newDecodeCmd(), cli.VersionCommand("mkmap"))
	return root
}

func newGenerateCmd(g *cli.Globals) *cobra.Command {
	var (
		start, end int
		out        string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write {\"mappings\": {number: code}} for a range of coin numbers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.Load()
			if err != nil {
				return err
			}
			fl := cmd.Flags()
			if fl.Changed("start") {
				cfg.KeyMap.Start = start
			}
			if fl.Changed("end") {
				cfg.KeyMap.End = end
			}
			if fl.Changed("out") {
				cfg.KeyMap.Out = out
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			entries := GenerateMap(cfg.KeyMap.Start, cfg.KeyMap.End)
			if err := mapping.Save(cfg.KeyMap.Out, entries); err != nil {
				return fmt.Errorf("writing mapping: %w", err)
			}
			logging.Info("mapping written", "path", cfg.KeyMap.Out, "count", len(entries))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d mappings (%s-%s) to %s\n",
				len(entries), coinkey.Number(cfg.KeyMap.Start), coinkey.Number(cfg.KeyMap.End), cfg.KeyMap.Out)
			return nil
		},
	}
	cmd.Flags().IntVar(&start, "start", 0, "first coin number (default: config keymap.start or 1)")
	cmd.Flags().IntVar(&end, "end", 0, "last coin number (default: config keymap.end or 500)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: config keymap.out)")
	return cmd
}

// GenerateMap maps every number in start..end to its key code, ascending.
func GenerateMap(start, end int) []mapping.Entry {
	entries := make([]mapping.Entry, 0, end-start+1)
	for n := start; n <= end; n++ {
		entries = append(entries, mapping.Entry{ID: coinkey.Number(n), Secret: coinkey.MustEncrypt(n)})
	}
	return entries
}

func newEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode <number>",
		Short: "Print the key code for a six-digit coin number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := coinkey.Encrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), code)
			return nil
		},
	}
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <code>",
		Short: "Print the coin number for a four-symbol key code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := coinkey.Decrypt(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}
