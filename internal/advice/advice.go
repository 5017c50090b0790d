package advice

import (
	"fmt"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// Type is the severity of a recommendation.
type Type string

const (
	TypeCritical Type = "critical"
	TypeWarning  Type = "warning"
	TypeSuccess  Type = "success"
)

// Recommendation is one piece of advice.
type Recommendation struct {
	Type     Type   `json:"type"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// Rule produces a recommendation when Condition holds.
type Rule struct {
	Condition string
	Type      Type
	Message   string
	Action    string
}

// Category is an ordered rule list; the first matching rule wins.
type Category struct {
	Name  string
	Rules []Rule
}

var categories = []Category{
	{
		Name: "Sleep",
		Rules: []Rule{
			{"sleep < 6", TypeCritical,
				"Critical: You need more sleep! Aim for 7-9 hours per night.",
				"Set a consistent bedtime and avoid screens 1 hour before sleep."},
			{"sleep < 7", TypeWarning,
				"Try to get at least 7 hours of sleep for optimal recovery.",
				"Establish a relaxing bedtime routine."},
			{"", TypeSuccess,
				"Great sleep habits! Keep it up.",
				"Maintain your current sleep schedule."},
		},
	},
	{
		Name: "Workload",
		Rules: []Rule{
			{"workload > 7", TypeCritical,
				"Your workload is very high. Consider prioritizing tasks.",
				"Use the Eisenhower Matrix to prioritize urgent vs important tasks."},
			{"workload > 5", TypeWarning,
				"Moderate workload detected. Stay organized.",
				"Break large tasks into smaller, manageable chunks."},
			{"", TypeSuccess,
				"Your workload is manageable.",
				"Good balance! Consider taking on new learning opportunities."},
		},
	},
	{
		Name: "Screen Time",
		Rules: []Rule{
			{"screentime > 10", TypeCritical,
				"Excessive screen time detected! Take regular breaks.",
				"Follow the 20-20-20 rule: Every 20 min, look 20 feet away for 20 seconds."},
			{"screentime > 6", TypeWarning,
				"Consider reducing screen time for better eye health.",
				"Use blue light filters and take hourly breaks."},
			{"", TypeSuccess,
				"Healthy screen time balance.",
				"Keep maintaining this healthy balance."},
		},
	},
	{
		Name: "Activities",
		Rules: []Rule{
			{"extracurricular > 7", TypeWarning,
				"You might be overcommitted with extracurriculars.",
				"Focus on quality over quantity. Choose activities you truly enjoy."},
			{"extracurricular < 2", TypeWarning,
				"Consider joining more activities for social engagement.",
				"Find 1-2 activities that align with your interests."},
			{"", TypeSuccess,
				"Well-balanced extracurricular involvement.",
				"Great balance between academics and activities!"},
		},
	},
	{
		Name: "Overall",
		Rules: []Rule{
			{"stress > 75", TypeCritical,
				"High stress detected! Consider seeking support.",
				"Talk to a counselor, practice meditation, or try deep breathing exercises."},
			{"stress > 50", TypeWarning,
				"Moderate stress levels. Practice self-care.",
				"Schedule regular breaks, exercise, and maintain social connections."},
		},
	},
}

// Categories returns the built-in category table.
func Categories() []Category {
	out := make([]Category, len(categories))
	for i, c := range categories {
		c.Rules = append([]Rule(nil), c.Rules...)
		out[i] = c
	}
	return out
}

// Validate checks that every condition in cats parses.
func Validate(cats []Category) error {
	for _, c := range cats {
		for i, r := range c.Rules {
			if err := ParseCondition(r.Condition); err != nil {
				return fmt.Errorf("advice: category %q rule %d: %w", c.Name, i, err)
			}
		}
	}
	return nil
}

// Recommend returns at most one recommendation per built-in category, in
// category order.
func Recommend(in fuzzy.Inputs, stress float64) []Recommendation {
	return RecommendWith(categories, in, stress)
}

// RecommendWith is Recommend over a caller-supplied category table.
func RecommendWith(cats []Category, in fuzzy.Inputs, stress float64) []Recommendation {
	s := Subject{Inputs: in, Stress: stress}
	out := make([]Recommendation, 0, len(cats))
	for _, c := range cats {
		for _, r := range c.Rules {
			if ok, _ := evalCondition(r.Condition, s); ok {
				out = append(out, Recommendation{
					Type:     r.Type,
					Category: c.Name,
					Message:  r.Message,
					Action:   r.Action,
				})
				break
			}
		}
	}
	return out
}

// ForResult is Recommend for an evaluated result.
func ForResult(res *fuzzy.Result) []Recommendation {
	return Recommend(res.InputValues, res.StressPercentage)
}
