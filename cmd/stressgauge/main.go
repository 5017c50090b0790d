package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stressgauge/stressgauge/internal/config"
)

// app carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type app struct {
	configPath string
	envFile    string

	cfg   *config.Config
	level slog.LevelVar
}

// usageError marks errors caused by bad flags or arguments.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	a := &app{}
	root := newRootCmd(a)

	err := root.ExecuteContext(ctx)
	cancel()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a command error to the process status: 2 for usage errors
// (bad flags, bad arguments, unknown subcommand), 1 for everything else.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	// cobra resolves subcommands before any validator of ours runs and
	// reports a miss only by message.
	if strings.HasPrefix(err.Error(), "unknown command ") {
		return 2
	}
	return 1
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "stressgauge",
		Short: "Fuzzy-logic student stress estimator",
		Long: `stressgauge estimates a student's stress level (0-100) from sleep hours,
academic workload, daily screen time and extracurricular load using a
21-rule Mamdani fuzzy inference system.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file (defaults apply when empty)")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file loaded before the config")

	root.AddCommand(
		newEvalCmd(a),
		newRulesCmd(a),
		newBatchCmd(a),
		newReportCmd(a),
		newWatchCmd(a),
	)
	return root
}

// setup loads the env file and config, then installs the default logger.
func (a *app) setup() error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.setupLogging()

	slog.Debug("config loaded",
		"config", a.configPath,
		"active_threshold", cfg.Engine.ActiveThreshold,
		"history_window", cfg.History.Window,
		"workers", cfg.Batch.Workers,
	)
	return nil
}

// setupLogging writes structured logs to stderr so stdout stays clean for
// command output.
func (a *app) setupLogging() {
	a.level.Set(a.cfg.Log.SlogLevel())
	opts := &slog.HandlerOptions{Level: &a.level}

	var h slog.Handler
	if a.cfg.Log.Format == "text" {
		h = slog.NewTextHandler(os.Stderr, opts)
	} else {
		h = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

// usageArgs wraps a cobra argument validator so its failures exit with 2.
func usageArgs(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}
