package fuzzy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Variable names. They double as JSON keys in Result.MembershipDegrees.
const (
	VarSleep           = "sleep"
	VarWorkload        = "workload"
	VarScreentime      = "screentime"
	VarExtracurricular = "extracurricular"
	VarStress          = "stress"
)

// Trapezoid returns the degree of x in the trapezoid (a, b, c, d), a≤b≤c≤d.
//
// Outside the open support (a, d) the degree is 0, including at a and d, so a
// shoulder term such as (0, 0, 4, 6) is 0 at x = 0. The plateau [b, c] inside
// the support is exactly 1.
func Trapezoid(x, a, b, c, d float64) float64 {
	switch {
	case x <= a || x >= d:
		return 0
	case x >= b && x <= c:
		return 1
	case x < b:
		return (x - a) / (b - a)
	default:
		return (d - x) / (d - c)
	}
}

// Triangle returns the degree of x in the triangle (a, b, c), a≤b≤c.
// The peak b is exactly 1.
func Triangle(x, a, b, c float64) float64 {
	switch {
	case x == b:
		return 1
	case x <= a || x >= c:
		return 0
	case x < b:
		return (x - a) / (b - a)
	default:
		return (c - x) / (c - b)
	}
}

// Shape is a membership function over one variable's universe.
type Shape interface {
	Degree(x float64) float64
}

// Trap is a trapezoidal Shape.
type Trap struct{ A, B, C, D float64 }

// Degree implements Shape.
func (t Trap) Degree(x float64) float64 { return Trapezoid(x, t.A, t.B, t.C, t.D) }

// Tri is a triangular Shape.
type Tri struct{ A, B, C float64 }

// Degree implements Shape.
func (t Tri) Degree(x float64) float64 { return Triangle(x, t.A, t.B, t.C) }

// Term is one linguistic term of a Variable.
type Term struct {
	Name  string
	Shape Shape
}

// Variable is a linguistic variable: a name, its nominal domain and its
// ordered terms.
type Variable struct {
	Name     string
	Min, Max float64
	Terms    []Term
}

// Fuzzify maps x to a MembershipSet in term order.
func (v Variable) Fuzzify(x float64) MembershipSet {
	out := make(MembershipSet, len(v.Terms))
	for i, t := range v.Terms {
		out[i] = Degree{Term: t.Name, Value: t.Shape.Degree(x)}
	}
	return out
}

var (
	sleepVar = Variable{
		Name: VarSleep, Min: 0, Max: 12,
		Terms: []Term{
			{"poor", Trap{0, 0, 4, 6}},
			{"moderate", Tri{5, 6.5, 8}},
			{"good", Trap{7, 8.5, 12, 12}},
		},
	}
	workloadVar = Variable{
		Name: VarWorkload, Min: 0, Max: 10,
		Terms: []Term{
			{"low", Trap{0, 0, 2, 4}},
			{"medium", Tri{3, 5, 7}},
			{"high", Trap{6, 8, 10, 10}},
		},
	}
	screentimeVar = Variable{
		Name: VarScreentime, Min: 0, Max: 16,
		Terms: []Term{
			{"low", Trap{0, 0, 2, 4}},
			{"moderate", Tri{3, 6, 9}},
			{"high", Trap{8, 12, 16, 16}},
		},
	}
	extracurricularVar = Variable{
		Name: VarExtracurricular, Min: 0, Max: 10,
		Terms: []Term{
			{"low", Trap{0, 0, 1, 3}},
			{"balanced", Tri{2, 5, 8}},
			{"excessive", Trap{7, 9, 10, 10}},
		},
	}
	stressVar = Variable{
		Name: VarStress, Min: 0, Max: 100,
		Terms: []Term{
			{"very_low", Trap{0, 0, 10, 25}},
			{"low", Tri{15, 30, 45}},
			{"moderate", Tri{35, 50, 65}},
			{"high", Tri{55, 70, 85}},
			{"very_high", Trap{75, 90, 100, 100}},
		},
	}
)

// InputVariables returns the four input variables in canonical order.
func InputVariables() []Variable {
	return []Variable{sleepVar, workloadVar, screentimeVar, extracurricularVar}
}

// StressVariable returns the output variable used for diagnostic degrees.
func StressVariable() Variable { return stressVar }

// Degree is one term's membership degree.
type Degree struct {
	Term  string
	Value float64
}

// MembershipSet is an ordered term→degree mapping for one variable.
// It encodes to JSON as an object whose keys keep the term order.
type MembershipSet []Degree

// Get returns the degree of term, or 0 if the term is not in the set.
func (m MembershipSet) Get(term string) float64 {
	for _, d := range m {
		if d.Term == term {
			return d.Value
		}
	}
	return 0
}

// Map returns the set as a plain map.
func (m MembershipSet) Map() map[string]float64 {
	out := make(map[string]float64, len(m))
	for _, d := range m {
		out[d.Term] = d.Value
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (m MembershipSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, d := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(d.Term)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(d.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Terms keep the object's key order.
func (m *MembershipSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*m = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("fuzzy: membership set: want object, got %v", tok)
	}

	var out MembershipSet
	for dec.More() {
		key, err := dec.Token()
		if err != nil {
			return err
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("fuzzy: membership set: term %v: %w", key, err)
		}
		out = append(out, Degree{Term: key.(string), Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = out
	return nil
}

// Degrees holds the membership sets of all five variables.
type Degrees struct {
	Sleep           MembershipSet `json:"sleep"`
	Workload        MembershipSet `json:"workload"`
	Screentime      MembershipSet `json:"screentime"`
	Extracurricular MembershipSet `json:"extracurricular"`
	Stress          MembershipSet `json:"stress"`
}

// Of returns the membership set for the named variable.
func (d Degrees) Of(variable string) MembershipSet {
	switch variable {
	case VarSleep:
		return d.Sleep
	case VarWorkload:
		return d.Workload
	case VarScreentime:
		return d.Screentime
	case VarExtracurricular:
		return d.Extracurricular
	case VarStress:
		return d.Stress
	default:
		return nil
	}
}

// Fuzzify computes the membership sets of the four inputs. Stress is left
// empty; it depends on the defuzzified value.
func Fuzzify(in Inputs) Degrees {
	return Degrees{
		Sleep:           sleepVar.Fuzzify(in.Sleep),
		Workload:        workloadVar.Fuzzify(in.Workload),
		Screentime:      screentimeVar.Fuzzify(in.Screentime),
		Extracurricular: extracurricularVar.Fuzzify(in.Extracurricular),
	}
}
