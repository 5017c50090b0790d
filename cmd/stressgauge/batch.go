package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/stressgauge/stressgauge/internal/batch"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		workers int
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "batch FILE.csv",
		Short: "Evaluate every row of a CSV file",
		Long: `Evaluate every row of a CSV file and print one JSON object per line.

The header must name sleep, workload, screentime and extracurricular (any
order); an id column is optional. Rows that fail to parse are reported with
an "error" field and do not stop the batch.

Example: stressgauge batch students.csv --workers 8 --summary`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open batch file: %w", err)
			}
			defer f.Close()

			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Batch.Workers
			}
			outcomes, err := batch.EvaluateCSV(cmd.Context(), f, workers)
			if outcomes == nil && err != nil {
				return err
			}
			highlight(outcomes, a.cfg.Engine.ActiveThreshold)

			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, o := range outcomes {
				if encErr := enc.Encode(o); encErr != nil {
					return encErr
				}
			}

			stats := batch.Aggregate(outcomes)
			slog.Info("batch complete",
				"file", args[0], "total", stats.Total,
				"evaluated", stats.Evaluated, "failed", stats.Failed)
			if summary {
				if encErr := enc.Encode(map[string]batch.Stats{"summary": stats}); encErr != nil {
					return encErr
				}
			}
			return err
		},
	}

	cmd.Flags().IntVar(&workers, "workers", batch.DefaultWorkers, "concurrent evaluations (default from config)")
	cmd.Flags().BoolVar(&summary, "summary", false, "print aggregate statistics after the rows")
	return cmd
}

// highlight applies the configured display threshold to every evaluated row.
func highlight(outcomes []batch.Outcome, threshold float64) {
	for _, o := range outcomes {
		if o.OK() {
			o.Result.Highlight(threshold)
		}
	}
}
