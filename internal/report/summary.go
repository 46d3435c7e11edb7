// Package report implements the human and machine-facing views over a
// verification run: a one-line-per-intent summary, a causal diagnosis
// dump, and a suggested-fixes classifier (spec.md §4.11).
package report

import (
	"fmt"
	"strings"

	"github.com/lox/nomai-verify/internal/verify"
)

// Summary produces a short human line-per-intent listing.
func Summary(r verify.VerificationReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d/%d passed (%d ticks, %dms)\n", r.SuiteName, r.Passed, r.Total, r.TicksExamined, r.WallTimeMs)
	for _, res := range r.Results {
		mark := "PASS"
		if !res.Passed {
			mark = "FAIL"
		}
		line := fmt.Sprintf("  [%s] %s (%s)", mark, res.IntentName, res.Kind)
		if !res.Passed && res.FailureReason != "" {
			line += ": " + res.FailureReason
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
