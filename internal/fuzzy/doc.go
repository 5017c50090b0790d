// Package fuzzy is the stress inference kernel.
//
// membership.go defines the two membership shapes (Trapezoid, Triangle), the
// linguistic variables with their fixed term tables, and MembershipSet, the
// ordered term→degree mapping produced by fuzzification.
//
// rules.go holds the fixed 21-rule base. Every Rule carries its antecedents as
// explicit (variable, term) pairs, so activation strength and the display
// "active" flag are both computed from the same degrees.
//
// engine.go provides the pure Evaluate(Inputs) function:
//
//	fuzzify → min-conjunction per rule → weighted-average defuzzification →
//	label band → stress membership diagnostics
//
// Evaluate is stateless and safe for concurrent use. It never blocks and
// takes no context. The only error it returns wraps ErrInvalidInput (NaN or
// infinite input). When no rule fires the neutral midpoint 50 is returned and
// Result.Degenerate is set. EvaluateWith takes the display threshold for the
// per-rule active flag; Result.Highlight recomputes it afterwards.
//
// Label bands: Very Low <25, Low <45, Moderate <65, High <85, Very High ≥85.
package fuzzy
