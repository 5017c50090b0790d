package advice

import (
	"errors"
	"testing"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

func TestEvalCondition(t *testing.T) {
	s := Subject{
		Inputs: fuzzy.Inputs{Sleep: 5.5, Workload: 6.5, Screentime: 6, Extracurricular: 5},
		Stress: 70,
	}
	tests := []struct {
		cond    string
		want    bool
		wantVal float64
	}{
		{"sleep < 6", true, 5.5},
		{"sleep >= 6", false, 5.5},
		{"workload > 5", true, 6.5},
		{"screentime <= 6", true, 6},
		{"extracurricular == 5", true, 5},
		{"stress > 75", false, 70},
		{"stress > 50", true, 70},
		{"", true, 0},
		{"mood > 3", false, 0},
		{"sleep ~ 3", false, 0},
		{"sleep < abc", false, 0},
		{"sleep<6", false, 0},
	}
	for _, tc := range tests {
		t.Run(tc.cond, func(t *testing.T) {
			got, v := evalCondition(tc.cond, s)
			if got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
			if v != tc.wantVal {
				t.Errorf("value: got %v, want %v", v, tc.wantVal)
			}
		})
	}
}

func TestParseCondition(t *testing.T) {
	valid := []string{"", "  ", "sleep < 6", "stress >= 75.5", "workload == 0"}
	for _, c := range valid {
		if err := ParseCondition(c); err != nil {
			t.Errorf("ParseCondition(%q): unexpected error %v", c, err)
		}
	}
	invalid := []string{"sleep", "sleep <", "sleep < 6 hours", "mood > 3", "sleep != 3", "sleep > x"}
	for _, c := range invalid {
		if err := ParseCondition(c); !errors.Is(err, ErrBadCondition) {
			t.Errorf("ParseCondition(%q): expected ErrBadCondition, got %v", c, err)
		}
	}
}

func TestCompareFloat(t *testing.T) {
	tests := []struct {
		v, th float64
		op    string
		want  bool
	}{
		{5, 5, ">", false},
		{5, 5, ">=", true},
		{4, 5, "<", true},
		{5, 5, "<=", true},
		{5, 5, "==", true},
		{5, 5, "!=", false},
	}
	for _, tc := range tests {
		if got := compareFloat(tc.v, tc.op, tc.th); got != tc.want {
			t.Errorf("compareFloat(%v %s %v): got %v, want %v", tc.v, tc.op, tc.th, got, tc.want)
		}
	}
}
