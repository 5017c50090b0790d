package main

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stressgauge/stressgauge/internal/config"
	"github.com/stressgauge/stressgauge/internal/fuzzy"
	"github.com/stressgauge/stressgauge/internal/history"
)

func newWatchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch FILE.yaml",
		Short: "Re-evaluate an inputs file whenever it changes",
		Long: `Evaluate the inputs file, then re-evaluate it every time it is saved.
Each result is printed as one JSON line, pushed into the rolling history and
logged together with the current trend. Runs until interrupted.

When --config is set, the config file is watched too; log level changes
apply immediately.`,
		Args: usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]

			tr := history.NewTracker(a.cfg.History.Window, a.cfg.History.StableBand)
			enc := json.NewEncoder(cmd.OutOrStdout())

			handle := func(in fuzzy.Inputs) {
				res, err := fuzzy.EvaluateWith(in, a.cfg.Engine.ActiveThreshold)
				if err != nil {
					slog.Error("watch: evaluate failed", "path", path, "err", err)
					return
				}
				e := tr.Record(res)
				sum := tr.Summary()
				slog.Info("watch: evaluated",
					"id", e.ID,
					"stress", res.StressPercentage,
					"label", res.StressLabel,
					"trend", sum.Trend.Direction,
					"trend_pct", sum.Trend.Percentage,
					"entries", sum.Count,
				)
				if err := enc.Encode(e); err != nil {
					slog.Error("watch: write failed", "err", err)
				}
			}

			in, err := config.LoadInputs(path)
			if err != nil {
				return err
			}
			handle(in)

			if a.configPath != "" {
				go func() {
					if err := config.Watch(ctx, a.configPath, func(updated *config.Config) {
						a.level.Set(updated.Log.SlogLevel())
						slog.Info("config hot-reloaded", "log_level", updated.Log.Level)
					}); err != nil {
						slog.Error("config watcher stopped", "err", err)
					}
				}()
			}

			if err := config.WatchInputs(ctx, path, handle); err != nil {
				return err
			}
			slog.Info("watch: stopped", "path", path, "entries", tr.Len())
			return nil
		},
	}
	return cmd
}
