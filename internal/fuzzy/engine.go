package fuzzy

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned (wrapped) when an input is NaN, infinite or
// missing.
var ErrInvalidInput = errors.New("invalid input")

// Label strings, ordered from lowest to highest band.
const (
	LabelVeryLow  = "Very Low Stress"
	LabelLow      = "Low Stress"
	LabelModerate = "Moderate Stress"
	LabelHigh     = "High Stress"
	LabelVeryHigh = "Very High Stress"
)

// Lower bounds of the label bands above Very Low. Bands are half-open.
const (
	ThresholdLow      = 25.0
	ThresholdModerate = 45.0
	ThresholdHigh     = 65.0
	ThresholdVeryHigh = 85.0
)

// NeutralStress is returned when no rule fires.
const NeutralStress = 50.0

// Fixed descriptive metadata. "centroid" is the historical name of the
// weighted-average defuzzifier and is kept for output compatibility.
const (
	InferenceType   = "Mamdani"
	Defuzzification = "centroid"
)

// Inputs is the four-value input vector.
type Inputs struct {
	Sleep           float64 `json:"sleep" yaml:"sleep"`
	Workload        float64 `json:"workload" yaml:"workload"`
	Screentime      float64 `json:"screentime" yaml:"screentime"`
	Extracurricular float64 `json:"extracurricular" yaml:"extracurricular"`
}

// Validate rejects NaN and infinite values. Out-of-range values are accepted.
func (in Inputs) Validate() error {
	fields := [...]struct {
		name string
		v    float64
	}{
		{VarSleep, in.Sleep},
		{VarWorkload, in.Workload},
		{VarScreentime, in.Screentime},
		{VarExtracurricular, in.Extracurricular},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidInput, f.name, f.v)
		}
	}
	return nil
}

// Details is the fixed metadata block of a Result.
type Details struct {
	InferenceType   string `json:"inference_type"`
	Defuzzification string `json:"defuzzification"`
	TotalRules      int    `json:"total_rules"`
}

// RuleActivation is one rule's outcome for a single evaluation.
type RuleActivation struct {
	ID         int     `json:"id"`
	Activation float64 `json:"activation"`
	Stress     float64 `json:"stress"`
	Active     bool    `json:"active"`
}

// Result is the output of one Evaluate call. It is owned by the caller.
type Result struct {
	StressPercentage  float64          `json:"stress_percentage"`
	StressLabel       string           `json:"stress_label"`
	MembershipDegrees Degrees          `json:"membership_degrees"`
	InputValues       Inputs           `json:"input_values"`
	FuzzyDetails      Details          `json:"fuzzy_details"`
	Rules             []RuleActivation `json:"rule_activations"`

	// Degenerate is set when every activation was zero and the neutral
	// midpoint was returned.
	Degenerate bool `json:"degenerate,omitempty"`

	// Raw is the unrounded defuzzified value.
	Raw float64 `json:"-"`
}

// Evaluate runs the full inference for in, flagging rules active at
// DefaultActiveThreshold.
//
// It is a pure function: identical inputs give bit-identical results.
func Evaluate(in Inputs) (*Result, error) {
	return EvaluateWith(in, DefaultActiveThreshold)
}

// EvaluateWith is Evaluate with a caller-chosen display threshold for the
// per-rule active flag. The threshold never changes the score.
func EvaluateWith(in Inputs, threshold float64) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	deg := Fuzzify(in)

	acts := make([]RuleActivation, len(ruleBase))
	for i, r := range ruleBase {
		acts[i] = RuleActivation{
			ID:         r.ID,
			Activation: r.Activation(deg),
			Stress:     r.Stress,
			Active:     r.Active(deg, threshold),
		}
	}

	stress, ok := Defuzzify(acts)
	deg.Stress = stressVar.Fuzzify(stress)

	return &Result{
		StressPercentage:  round2(stress),
		StressLabel:       Label(stress),
		MembershipDegrees: deg,
		InputValues:       in,
		FuzzyDetails: Details{
			InferenceType:   InferenceType,
			Defuzzification: Defuzzification,
			TotalRules:      TotalRules,
		},
		Rules:      acts,
		Degenerate: !ok,
		Raw:        stress,
	}, nil
}

// Highlight recomputes every rule's active flag at threshold from the
// result's own membership degrees.
func (r *Result) Highlight(threshold float64) {
	for i := range r.Rules {
		if rule, ok := ruleByID(r.Rules[i].ID); ok {
			r.Rules[i].Active = rule.Active(r.MembershipDegrees, threshold)
		}
	}
}

func ruleByID(id int) (Rule, bool) {
	for _, r := range ruleBase {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Defuzzify collapses rule activations into a crisp stress value using the
// activation-weighted average of consequents. Rules with zero activation are
// skipped. If nothing fired it returns (NeutralStress, false).
func Defuzzify(acts []RuleActivation) (float64, bool) {
	var num, den float64
	for _, a := range acts {
		if a.Activation > 0 {
			num += a.Activation * a.Stress
			den += a.Activation
		}
	}
	if den == 0 {
		return NeutralStress, false
	}
	return clamp(num/den, 0, 100), true
}

// Label maps a stress value to its band label.
func Label(stress float64) string {
	switch {
	case stress < ThresholdLow:
		return LabelVeryLow
	case stress < ThresholdModerate:
		return LabelLow
	case stress < ThresholdHigh:
		return LabelModerate
	case stress < ThresholdVeryHigh:
		return LabelHigh
	default:
		return LabelVeryHigh
	}
}

// Labels returns the five labels from lowest to highest.
func Labels() []string {
	return []string{LabelVeryLow, LabelLow, LabelModerate, LabelHigh, LabelVeryHigh}
}

// round2 rounds half away from zero at two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
