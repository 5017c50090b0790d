package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

func newRulesCmd(a *app) *cobra.Command {
	var (
		inputs inputFlags
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Show rule activations for a set of inputs",
		Long: `Show each rule's activation strength for the given inputs.

A rule is marked active when any of its conditions has a degree above
engine.active_threshold (0.3 by default). Only active rules are listed
unless --all is given.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := inputs.resolve(cmd, a.cfg.Defaults)
			if err != nil {
				return err
			}
			res, err := fuzzy.EvaluateWith(in, a.cfg.Engine.ActiveThreshold)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tACTIVE\tACTIVATION\tPRIORITY\tOUTPUT\tCONDITIONS")
			for i, r := range fuzzy.Rules() {
				active := res.Rules[i].Active
				if !active && !all {
					continue
				}
				mark := ""
				if active {
					mark = "*"
				}
				fmt.Fprintf(tw, "%d\t%s\t%.3f\t%s\t%s\t%s\n",
					r.ID, mark, res.Rules[i].Activation, r.Priority, r.Output(), r.Description())
			}
			fmt.Fprintf(tw, "\nstress %.2f%% (%s)\n", res.StressPercentage, res.StressLabel)
			return tw.Flush()
		},
	}

	inputs.register(cmd)
	cmd.Flags().BoolVar(&all, "all", false, "list inactive rules too")
	return cmd
}
