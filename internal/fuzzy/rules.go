package fuzzy

import (
	"strings"
)

// Consequent stress values, one per output band.
const (
	StressVeryLow  = 12.5
	StressLow      = 30.0
	StressModerate = 50.0
	StressHigh     = 70.0
	StressVeryHigh = 90.0
)

// Priority is a display hint for a rule's severity.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// DefaultActiveThreshold is the degree a rule antecedent must exceed for the
// rule to be highlighted as active. It is a display convention only and has
// no effect on the stress value.
const DefaultActiveThreshold = 0.3

// Condition is one rule antecedent: "variable is term".
type Condition struct {
	Variable string `json:"variable"`
	Term     string `json:"term"`
}

// nouns used when rendering a condition for people.
var conditionNouns = map[string]string{
	VarSleep:           "sleep",
	VarWorkload:        "workload",
	VarScreentime:      "screentime",
	VarExtracurricular: "activities",
}

// String renders the condition as e.g. "Poor sleep".
func (c Condition) String() string {
	term := c.Term
	if term != "" {
		term = strings.ToUpper(term[:1]) + term[1:]
	}
	noun, ok := conditionNouns[c.Variable]
	if !ok {
		noun = c.Variable
	}
	return term + " " + noun
}

// Rule is one entry of the rule base. Rules are values and never mutated.
type Rule struct {
	ID       int         `json:"id"`
	When     []Condition `json:"when"`
	Stress   float64     `json:"stress"`
	Priority Priority    `json:"priority"`
}

// Activation is the min-conjunction of the rule's antecedent degrees.
func (r Rule) Activation(d Degrees) float64 {
	act := 1.0
	for _, c := range r.When {
		if v := d.Of(c.Variable).Get(c.Term); v < act {
			act = v
		}
	}
	return act
}

// Active reports whether any antecedent degree exceeds threshold. A rule can
// be active while its Activation is 0.
func (r Rule) Active(d Degrees, threshold float64) bool {
	for _, c := range r.When {
		if d.Of(c.Variable).Get(c.Term) > threshold {
			return true
		}
	}
	return false
}

// Description renders the antecedents, e.g. "Poor sleep + High workload".
func (r Rule) Description() string {
	parts := make([]string, len(r.When))
	for i, c := range r.When {
		parts[i] = c.String()
	}
	return strings.Join(parts, " + ")
}

// Output is the label of the rule's consequent band.
func (r Rule) Output() string { return Label(r.Stress) }

func when(pairs ...string) []Condition {
	out := make([]Condition, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, Condition{Variable: pairs[i], Term: pairs[i+1]})
	}
	return out
}

const (
	sl = VarSleep
	wl = VarWorkload
	sc = VarScreentime
	ex = VarExtracurricular
)

var ruleBase = []Rule{
	{1, when(sl, "good", wl, "low", sc, "low", ex, "balanced"), StressVeryLow, PriorityHigh},
	{2, when(sl, "good", wl, "low", sc, "moderate", ex, "balanced"), StressLow, PriorityHigh},
	{3, when(sl, "good", wl, "high", sc, "low"), StressModerate, PriorityMedium},
	{4, when(sl, "good", wl, "high", sc, "high"), StressHigh, PriorityMedium},
	{5, when(sl, "poor", wl, "low", sc, "low"), StressModerate, PriorityMedium},
	{6, when(sl, "poor", wl, "medium"), StressHigh, PriorityHigh},
	{7, when(sl, "poor", wl, "high"), StressVeryHigh, PriorityCritical},
	{8, when(sl, "poor", sc, "high"), StressVeryHigh, PriorityCritical},
	{9, when(sl, "moderate", wl, "low", sc, "low", ex, "balanced"), StressLow, PriorityMedium},
	{10, when(sl, "moderate", wl, "medium", sc, "moderate"), StressModerate, PriorityMedium},
	{11, when(sl, "moderate", wl, "high", sc, "high"), StressHigh, PriorityHigh},
	{12, when(sc, "high", wl, "high"), StressVeryHigh, PriorityCritical},
	{13, when(sc, "high", sl, "poor"), StressVeryHigh, PriorityCritical},
	{14, when(sc, "high", wl, "medium", sl, "moderate"), StressHigh, PriorityHigh},
	{15, when(ex, "excessive", wl, "high"), StressVeryHigh, PriorityCritical},
	{16, when(ex, "excessive", sl, "poor"), StressVeryHigh, PriorityCritical},
	{17, when(ex, "low", wl, "low", sl, "good"), StressLow, PriorityLow},
	{18, when(sl, "moderate", wl, "medium", sc, "low", ex, "balanced"), StressLow, PriorityMedium},
	{19, when(sl, "good", wl, "medium", sc, "moderate", ex, "balanced"), StressModerate, PriorityMedium},
	{20, when(wl, "low", sc, "low", ex, "low"), StressLow, PriorityLow},
	{21, when(wl, "high", sc, "moderate", sl, "moderate"), StressHigh, PriorityHigh},
}

// TotalRules is the size of the rule base.
const TotalRules = 21

// Rules returns a copy of the rule base in table order.
func Rules() []Rule {
	out := make([]Rule, len(ruleBase))
	for i, r := range ruleBase {
		r.When = append([]Condition(nil), r.When...)
		out[i] = r
	}
	return out
}

// ActiveRules returns the IDs of rules highlighted as active for the given
// degrees at threshold.
func ActiveRules(d Degrees, threshold float64) []int {
	var ids []int
	for _, r := range ruleBase {
		if r.Active(d, threshold) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
