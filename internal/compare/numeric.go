// Package compare provides the comparator primitives and the
// entity-name matching heuristic shared by every evaluator.
package compare

import "math"

// Numeric evaluates `a <op> b` over floating-point values. NaN on
// either side yields false for every operator, including "!=" — this
// departs from IEEE semantics (where NaN != x is true), per spec.md
// §4.3's explicit carve-out.
func Numeric(a float64, op string, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	default:
		return false
	}
}
