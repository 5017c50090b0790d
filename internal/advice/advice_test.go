package advice

import (
	"errors"
	"testing"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

func TestRecommend_CategoryTypes(t *testing.T) {
	tests := []struct {
		name   string
		in     fuzzy.Inputs
		stress float64
		want   map[string]Type // category → type; absent means omitted
	}{
		{
			name:   "all healthy, low stress",
			in:     fuzzy.Inputs{Sleep: 8, Workload: 2, Screentime: 2, Extracurricular: 5},
			stress: 12.5,
			want: map[string]Type{
				"Sleep": TypeSuccess, "Workload": TypeSuccess,
				"Screen Time": TypeSuccess, "Activities": TypeSuccess,
			},
		},
		{
			name:   "everything critical",
			in:     fuzzy.Inputs{Sleep: 3, Workload: 9, Screentime: 14, Extracurricular: 5},
			stress: 90,
			want: map[string]Type{
				"Sleep": TypeCritical, "Workload": TypeCritical,
				"Screen Time": TypeCritical, "Activities": TypeSuccess,
				"Overall": TypeCritical,
			},
		},
		{
			name:   "warnings",
			in:     fuzzy.Inputs{Sleep: 6.5, Workload: 6.5, Screentime: 7, Extracurricular: 9},
			stress: 70,
			want: map[string]Type{
				"Sleep": TypeWarning, "Workload": TypeWarning,
				"Screen Time": TypeWarning, "Activities": TypeWarning,
				"Overall": TypeWarning,
			},
		},
		{
			name:   "boundaries are strict",
			in:     fuzzy.Inputs{Sleep: 7, Workload: 5, Screentime: 6, Extracurricular: 2},
			stress: 50,
			want: map[string]Type{
				"Sleep": TypeSuccess, "Workload": TypeSuccess,
				"Screen Time": TypeSuccess, "Activities": TypeSuccess,
			},
		},
		{
			name:   "too few activities",
			in:     fuzzy.Inputs{Sleep: 7, Workload: 5, Screentime: 6, Extracurricular: 1},
			stress: 75,
			want: map[string]Type{
				"Sleep": TypeSuccess, "Workload": TypeSuccess,
				"Screen Time": TypeSuccess, "Activities": TypeWarning,
				"Overall": TypeWarning,
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			recs := Recommend(tc.in, tc.stress)
			if len(recs) != len(tc.want) {
				t.Fatalf("got %d recommendations, want %d: %+v", len(recs), len(tc.want), recs)
			}
			for _, r := range recs {
				want, ok := tc.want[r.Category]
				if !ok {
					t.Errorf("unexpected category %q", r.Category)
					continue
				}
				if r.Type != want {
					t.Errorf("%s: got %q, want %q", r.Category, r.Type, want)
				}
				if r.Message == "" || r.Action == "" {
					t.Errorf("%s: empty message or action", r.Category)
				}
			}
		})
	}
}

func TestRecommend_Order(t *testing.T) {
	recs := Recommend(fuzzy.Inputs{Sleep: 3, Workload: 9, Screentime: 14, Extracurricular: 5}, 90)
	want := []string{"Sleep", "Workload", "Screen Time", "Activities", "Overall"}
	for i, r := range recs {
		if r.Category != want[i] {
			t.Errorf("recs[%d]: got %q, want %q", i, r.Category, want[i])
		}
	}
}

func TestForResult(t *testing.T) {
	res, err := fuzzy.Evaluate(fuzzy.Inputs{Sleep: 3, Workload: 9, Screentime: 14, Extracurricular: 5})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	recs := ForResult(res)
	last := recs[len(recs)-1]
	if last.Category != "Overall" || last.Type != TypeCritical {
		t.Errorf("overall: got %+v", last)
	}
}

func TestBuiltinCategoriesValid(t *testing.T) {
	if err := Validate(Categories()); err != nil {
		t.Fatalf("built-in table: %v", err)
	}
}

func TestCategories_IsCopy(t *testing.T) {
	c := Categories()
	c[0].Rules[0].Condition = "sleep > 100"
	if categories[0].Rules[0].Condition != "sleep < 6" {
		t.Error("mutating Categories() result changed the built-in table")
	}
}

func TestRecommendWith_Custom(t *testing.T) {
	cats := []Category{{
		Name:  "Late nights",
		Rules: []Rule{{Condition: "screentime >= 12", Type: TypeCritical, Message: "m", Action: "a"}},
	}}
	if got := RecommendWith(cats, fuzzy.Inputs{Screentime: 12}, 0); len(got) != 1 {
		t.Fatalf("got %d recommendations, want 1", len(got))
	}
	if got := RecommendWith(cats, fuzzy.Inputs{Screentime: 11}, 0); len(got) != 0 {
		t.Fatalf("got %d recommendations, want 0", len(got))
	}
}

func TestValidate_BadCondition(t *testing.T) {
	cats := []Category{{Name: "x", Rules: []Rule{{Condition: "mood > 3"}}}}
	if err := Validate(cats); !errors.Is(err, ErrBadCondition) {
		t.Fatalf("expected ErrBadCondition, got %v", err)
	}
}
