package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stressgauge/stressgauge/internal/advice"
	"github.com/stressgauge/stressgauge/internal/config"
	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// inputFlags binds the four input values plus --input to a command.
type inputFlags struct {
	in   fuzzy.Inputs
	file string
}

func (f *inputFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.in.Sleep, "sleep", config.DefaultSleep, "sleep hours per night (0-12)")
	cmd.Flags().Float64Var(&f.in.Workload, "workload", config.DefaultWorkload, "academic workload (0-10)")
	cmd.Flags().Float64Var(&f.in.Screentime, "screentime", config.DefaultScreentime, "screen time hours per day (0-16)")
	cmd.Flags().Float64Var(&f.in.Extracurricular, "extracurricular", config.DefaultExtracurricular, "extracurricular load (0-10)")
	cmd.Flags().StringVar(&f.file, "input", "", "YAML file with all four inputs (overrides the value flags)")
}

// resolve returns the inputs to evaluate: the --input file if given,
// otherwise each flag the user set, falling back to the configured defaults.
func (f *inputFlags) resolve(cmd *cobra.Command, defaults fuzzy.Inputs) (fuzzy.Inputs, error) {
	if f.file != "" {
		return config.LoadInputs(f.file)
	}
	in := defaults
	flags := cmd.Flags()
	if flags.Changed("sleep") {
		in.Sleep = f.in.Sleep
	}
	if flags.Changed("workload") {
		in.Workload = f.in.Workload
	}
	if flags.Changed("screentime") {
		in.Screentime = f.in.Screentime
	}
	if flags.Changed("extracurricular") {
		in.Extracurricular = f.in.Extracurricular
	}
	return in, in.Validate()
}

func newEvalCmd(a *app) *cobra.Command {
	var (
		inputs     inputFlags
		table      bool
		withAdvice bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate one set of inputs",
		Long: `Evaluate one set of inputs and print the result as JSON.

Unset value flags take the configured defaults (7h sleep, workload 5,
6h screen time, extracurricular 5).

Example: stressgauge eval --sleep 5.5 --workload 6.5 --table`,
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

			var recs []advice.Recommendation
			if withAdvice {
				recs = advice.ForResult(res)
			}

			out := cmd.OutOrStdout()
			if table {
				return printResultTable(out, res, recs)
			}
			return printJSON(out, evalOutput{Result: res, Recommendations: recs})
		},
	}

	inputs.register(cmd)
	cmd.Flags().BoolVar(&table, "table", false, "print a human-readable table instead of JSON")
	cmd.Flags().BoolVar(&withAdvice, "advice", false, "include lifestyle recommendations")
	return cmd
}

// evalOutput is the JSON shape printed by eval.
type evalOutput struct {
	*fuzzy.Result
	Recommendations []advice.Recommendation `json:"recommendations,omitempty"`
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResultTable(w io.Writer, res *fuzzy.Result, recs []advice.Recommendation) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "Stress\t%.2f%%\t%s\n", res.StressPercentage, res.StressLabel)
	if res.Degenerate {
		fmt.Fprintln(tw, "Note\tno rule fired; neutral midpoint returned\t")
	}
	fmt.Fprintln(tw, "\t\t")

	fmt.Fprintln(tw, "VARIABLE\tINPUT\tDEGREES")
	for _, v := range fuzzy.InputVariables() {
		fmt.Fprintf(tw, "%s\t%g\t%s\n", v.Name, inputValue(res.InputValues, v.Name), formatSet(res.MembershipDegrees.Of(v.Name)))
	}
	fmt.Fprintf(tw, "%s\t%.2f\t%s\n", fuzzy.VarStress, res.StressPercentage, formatSet(res.MembershipDegrees.Stress))

	if len(recs) > 0 {
		fmt.Fprintln(tw, "\t\t")
		fmt.Fprintln(tw, "CATEGORY\tTYPE\tADVICE")
		for _, r := range recs {
			fmt.Fprintf(tw, "%s\t%s\t%s %s\n", r.Category, r.Type, r.Message, r.Action)
		}
	}
	return tw.Flush()
}

func formatSet(m fuzzy.MembershipSet) string {
	s := ""
	for i, d := range m {
		if i > 0 {
			s += "  "
		}
		s += fmt.Sprintf("%s=%.3f", d.Term, d.Value)
	}
	return s
}

func inputValue(in fuzzy.Inputs, variable string) float64 {
	switch variable {
	case fuzzy.VarSleep:
		return in.Sleep
	case fuzzy.VarWorkload:
		return in.Workload
	case fuzzy.VarScreentime:
		return in.Screentime
	case fuzzy.VarExtracurricular:
		return in.Extracurricular
	default:
		return 0
	}
}
