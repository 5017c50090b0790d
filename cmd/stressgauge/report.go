package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/stressgauge/stressgauge/internal/advice"
	"github.com/stressgauge/stressgauge/internal/batch"
	"github.com/stressgauge/stressgauge/internal/fuzzy"
	"github.com/stressgauge/stressgauge/internal/history"
	"github.com/stressgauge/stressgauge/internal/report"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "report FILE.csv",
		Short: "Build a report from a series of readings",
		Long: `Evaluate a CSV series oldest-first into the rolling history, then export a
report for the newest reading: stress analysis, membership degrees, rule
activations, recommendations and the history window with its trend.

Formats: json (default from config), xlsx, prom. --out - writes to stdout;
without --out the file is named stress-report-<unix ms>.<format>.

Example: stressgauge report week.csv --format xlsx --out week.xlsx`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Report.Format
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return usageError{err}
			}

			src, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open series: %w", err)
			}
			defer src.Close()

			outcomes, err := batch.EvaluateCSV(cmd.Context(), src, a.cfg.Batch.Workers)
			if err != nil {
				return err
			}
			highlight(outcomes, a.cfg.Engine.ActiveThreshold)

			tr := history.NewTracker(a.cfg.History.Window, a.cfg.History.StableBand)
			var last *fuzzy.Result
			for _, o := range outcomes {
				if !o.OK() {
					slog.Warn("report: skipping row", "line", o.Line, "id", o.ID, "err", o.Err)
					continue
				}
				tr.Record(o.Result)
				last = o.Result
			}
			if last == nil {
				return errors.New("report: no valid readings in series")
			}

			now := time.Now()
			rep := report.Build(last, tr, advice.ForResult(last), now)

			switch out {
			case "-":
				return report.Write(cmd.OutOrStdout(), rep, f)
			case "":
				out = report.DefaultFilename(f, now)
			}
			if err := report.WriteFile(out, rep, f); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", string(report.FormatJSON), "json | xlsx | prom (default from config)")
	cmd.Flags().StringVar(&out, "out", "", "output path, - for stdout")
	return cmd
}
