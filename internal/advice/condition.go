package advice

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/stressgauge/stressgauge/internal/fuzzy"
)

// ErrBadCondition is returned by ParseCondition for malformed expressions.
var ErrBadCondition = errors.New("advice: bad condition")

// Subject is what a condition is evaluated against.
type Subject struct {
	Inputs fuzzy.Inputs
	Stress float64
}

// condition is a parsed "field op value" expression.
type condition struct {
	field     string
	op        string
	threshold float64
}

// ParseCondition validates cond. An empty string is valid and always true.
func ParseCondition(cond string) error {
	if strings.TrimSpace(cond) == "" {
		return nil
	}
	_, err := parseCondition(cond)
	return err
}

func parseCondition(cond string) (condition, error) {
	parts := strings.Fields(cond)
	if len(parts) != 3 {
		return condition{}, fmt.Errorf("%w: %q: want \"field op value\"", ErrBadCondition, cond)
	}
	field, op, rhs := parts[0], parts[1], parts[2]

	switch field {
	case fuzzy.VarSleep, fuzzy.VarWorkload, fuzzy.VarScreentime, fuzzy.VarExtracurricular, fuzzy.VarStress:
	default:
		return condition{}, fmt.Errorf("%w: %q: unknown field %q", ErrBadCondition, cond, field)
	}
	switch op {
	case ">", ">=", "<", "<=", "==":
	default:
		return condition{}, fmt.Errorf("%w: %q: unknown operator %q", ErrBadCondition, cond, op)
	}
	threshold, err := strconv.ParseFloat(rhs, 64)
	if err != nil {
		return condition{}, fmt.Errorf("%w: %q: %v", ErrBadCondition, cond, err)
	}
	return condition{field: field, op: op, threshold: threshold}, nil
}

// evalCondition reports whether cond holds for s, and the field value tested.
// Unparseable conditions never hold.
func evalCondition(cond string, s Subject) (bool, float64) {
	if strings.TrimSpace(cond) == "" {
		return true, 0
	}
	c, err := parseCondition(cond)
	if err != nil {
		return false, 0
	}
	v := numericField(c.field, s)
	return compareFloat(v, c.op, c.threshold), v
}

// numericField maps a field name to its value in the subject.
func numericField(field string, s Subject) float64 {
	switch field {
	case fuzzy.VarSleep:
		return s.Inputs.Sleep
	case fuzzy.VarWorkload:
		return s.Inputs.Workload
	case fuzzy.VarScreentime:
		return s.Inputs.Screentime
	case fuzzy.VarExtracurricular:
		return s.Inputs.Extracurricular
	case fuzzy.VarStress:
		return s.Stress
	default:
		return 0
	}
}

// compareFloat applies a comparison operator to two float64 values.
func compareFloat(v float64, op string, threshold float64) bool {
	switch op {
	case ">":
		return v > threshold
	case ">=":
		return v >= threshold
	case "<":
		return v < threshold
	case "<=":
		return v <= threshold
	case "==":
		return v == threshold
	default:
		return false
	}
}
