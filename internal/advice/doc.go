// Package advice turns an input vector and its stress score into lifestyle
// recommendations.
//
// Each category (Sleep, Workload, Screen Time, Activities, Overall) holds an
// ordered list of rules; the first rule whose condition holds produces the
// category's recommendation. A rule with an empty condition always matches
// and acts as the fallback. Overall has no fallback, so it is omitted when
// stress is 50 or lower.
//
// Conditions are "field operator value" strings, e.g.:
//
//	sleep < 6
//	workload > 7
//	stress > 75
//
// Fields: sleep, workload, screentime, extracurricular, stress.
// Operators: > >= < <= ==.
package advice
