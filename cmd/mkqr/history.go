package main

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gkirito/coinassets/internal/cli"
	"github.com/gkirito/coinassets/internal/paths"
	"github.com/gkirito/coinassets/internal/runlog"
)

func newHistoryCmd(g *cli.Globals) *cobra.Command {
	var (
		path    string
		limit   int
		batchID string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded batches, or the jobs of one batch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := g.Load()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.QR.History
			}
			if path == "" {
				path = filepath.Join(paths.DataDir(), paths.HistoryDBName)
			}

			store, err := runlog.Open(path)
			if err != nil {
				return fmt.Errorf("opening history: %w", err)
			}
			defer store.Close()

			if batchID != "" {
				return printJobs(cmd, store, batchID)
			}
			return printBatches(cmd, store, limit)
		},
	}
	cmd.Flags().StringVar(&path, "history", "", "history file (default: config qr.history or "+paths.HistoryDBName+" in the data dir)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of batches to show, 0 for all")
	cmd.Flags().StringVar(&batchID, "batch", "", "show the jobs of this batch")
	return cmd
}

func printBatches(cmd *cobra.Command, store runlog.Store, limit int) error {
	batches, err := store.Batches(limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(batches) == 0 {
		fmt.Fprintf(out, "No batches recorded in %s\n", store.Path())
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "BATCH\tFINISHED\tTOTAL\tOK\tFAILED\tENCODER\tOUTPUT")
	for _, b := range batches {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\t%s\n",
			b.ID, b.Finished.Local().Format(time.DateTime), b.Total, b.Succeeded, b.Failed, b.Encoder, b.OutputDir)
	}
	return tw.Flush()
}

func printJobs(cmd *cobra.Command, store runlog.Store, batchID string) error {
	jobs, err := store.Jobs(batchID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(jobs) == 0 {
		fmt.Fprintf(out, "No jobs recorded for batch %s\n", batchID)
		return nil
	}
	for _, j := range jobs {
		if j.OK() {
			fmt.Fprintf(out, "ok     %s  %s\n", j.ID, j.Path)
		} else {
			fmt.Fprintf(out, "error  %s  %s\n", j.ID, j.Error)
		}
	}
	return nil
}
