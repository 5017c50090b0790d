package fuzzy

import (
	"reflect"
	"testing"
)

func TestRules_TableShape(t *testing.T) {
	rules := Rules()
	if len(rules) != TotalRules {
		t.Fatalf("len(Rules()) = %d, want %d", len(rules), TotalRules)
	}

	consequents := map[float64]bool{
		StressVeryLow: true, StressLow: true, StressModerate: true, StressHigh: true, StressVeryHigh: true,
	}
	terms := map[string]map[string]bool{}
	for _, v := range InputVariables() {
		terms[v.Name] = map[string]bool{}
		for _, tm := range v.Terms {
			terms[v.Name][tm.Name] = true
		}
	}

	for i, r := range rules {
		if r.ID != i+1 {
			t.Errorf("rule at %d has ID %d, want %d", i, r.ID, i+1)
		}
		if n := len(r.When); n < 2 || n > 4 {
			t.Errorf("rule %d has %d antecedents, want 2–4", r.ID, n)
		}
		if !consequents[r.Stress] {
			t.Errorf("rule %d consequent %v not in the allowed set", r.ID, r.Stress)
		}
		for _, c := range r.When {
			if !terms[c.Variable][c.Term] {
				t.Errorf("rule %d references unknown %s.%s", r.ID, c.Variable, c.Term)
			}
		}
	}
}

func TestRules_ReturnsCopy(t *testing.T) {
	rules := Rules()
	rules[0].When[0].Term = "poor"
	rules[0].Stress = 90

	fresh := Rules()
	if fresh[0].When[0].Term != "good" || fresh[0].Stress != StressVeryLow {
		t.Fatalf("mutating Rules() leaked into the rule base: %+v", fresh[0])
	}
}

func TestRule_Description(t *testing.T) {
	tests := []struct {
		id   int
		want string
	}{
		{1, "Good sleep + Low workload + Low screentime + Balanced activities"},
		{7, "Poor sleep + High workload"},
		{13, "High screentime + Poor sleep"},
		{17, "Low activities + Low workload + Good sleep"},
		{21, "High workload + Moderate screentime + Moderate sleep"},
	}
	rules := Rules()
	for _, tc := range tests {
		if got := rules[tc.id-1].Description(); got != tc.want {
			t.Errorf("rule %d Description = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestRule_Output(t *testing.T) {
	want := map[int]string{
		1: LabelVeryLow, 2: LabelLow, 3: LabelModerate, 4: LabelHigh, 7: LabelVeryHigh,
	}
	rules := Rules()
	for id, label := range want {
		if got := rules[id-1].Output(); got != label {
			t.Errorf("rule %d Output = %q, want %q", id, got, label)
		}
	}
}

func TestRule_ActivationIsMin(t *testing.T) {
	d := Degrees{
		Sleep:    MembershipSet{{"poor", 0.8}, {"moderate", 0.2}, {"good", 0}},
		Workload: MembershipSet{{"low", 0}, {"medium", 0.35}, {"high", 0.6}},
	}
	rules := Rules()
	if got := rules[5].Activation(d); got != 0.35 { // poor ∧ medium
		t.Errorf("rule 6 activation = %v, want 0.35", got)
	}
	if got := rules[6].Activation(d); got != 0.6 { // poor ∧ high
		t.Errorf("rule 7 activation = %v, want 0.6", got)
	}
	if got := rules[2].Activation(d); got != 0 { // good ∧ high ∧ screentime.low (missing)
		t.Errorf("rule 3 activation = %v, want 0", got)
	}
}

func TestRule_ActiveUsesAnyAntecedent(t *testing.T) {
	res := mustEvaluate(t, Inputs{Sleep: 7, Workload: 5, Screentime: 6, Extracurricular: 5})

	// Rule 1 has zero activation but balanced activities (1.0) highlights it.
	r1 := res.Rules[0]
	if r1.Activation != 0 || !r1.Active {
		t.Errorf("rule 1 = %+v, want zero activation and active", r1)
	}
	// Rule 7: poor sleep 0, high workload 0.
	if res.Rules[6].Active {
		t.Error("rule 7 should not be active")
	}
}

func TestActiveRules_Threshold(t *testing.T) {
	d := Fuzzify(Inputs{Sleep: 3, Workload: 9, Screentime: 14, Extracurricular: 5})

	got := ActiveRules(d, DefaultActiveThreshold)
	// Inactive: rules whose antecedents are all from good/moderate sleep,
	// low/medium workload, low/moderate screentime, low/excessive activities.
	for _, id := range got {
		if id == 17 {
			t.Errorf("rule 17 (low activities, low workload, good sleep) should not be active")
		}
	}

	if all := ActiveRules(d, -1); len(all) != TotalRules {
		t.Errorf("threshold -1 activated %d rules, want all %d", len(all), TotalRules)
	}
	if none := ActiveRules(d, 1); len(none) != 0 {
		t.Errorf("threshold 1 activated %v, want none", none)
	}

	res := mustEvaluate(t, Inputs{Sleep: 3, Workload: 9, Screentime: 14, Extracurricular: 5})
	var flagged []int
	for _, a := range res.Rules {
		if a.Active {
			flagged = append(flagged, a.ID)
		}
	}
	if !reflect.DeepEqual(flagged, got) {
		t.Errorf("Result active flags %v differ from ActiveRules %v", flagged, got)
	}
}

func TestCondition_String(t *testing.T) {
	c := Condition{Variable: VarExtracurricular, Term: "excessive"}
	if got := c.String(); got != "Excessive activities" {
		t.Errorf("String() = %q", got)
	}
	c = Condition{Variable: "mood", Term: "grim"}
	if got := c.String(); got != "Grim mood" {
		t.Errorf("String() unknown variable = %q", got)
	}
}
