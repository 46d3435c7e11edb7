package report

import (
	"fmt"
	"strings"

	"github.com/lox/nomai-verify/internal/verify"
)

// maxDiagnosisEvidence and maxDiagnosisCausalSteps bound the dump per
// failure so diagnosis() stays readable on suites with many failures
// (spec.md §4.11: "first three evidence changes and first five causal
// steps per failure").
const (
	maxDiagnosisEvidence    = 3
	maxDiagnosisCausalSteps = 5
)

// Diagnosis produces an AI-readable dump of every failure: its reason,
// up to three evidence changes, and up to five causal steps.
func Diagnosis(r verify.VerificationReport) string {
	var b strings.Builder
	for _, res := range r.Results {
		if res.Passed {
			continue
		}
		fmt.Fprintf(&b, "intent %q (%s) failed: %s\n", res.IntentName, res.Kind, res.FailureReason)
		if res.TriggerTick != nil {
			fmt.Fprintf(&b, "  trigger tick: %d\n", *res.TriggerTick)
		}

		evidence := res.Evidence
		if len(evidence) > maxDiagnosisEvidence {
			evidence = evidence[:maxDiagnosisEvidence]
		}
		for _, c := range evidence {
			fmt.Fprintf(&b, "  evidence: entity %d, %s: %v -> %v\n", c.EntityId, c.Component, c.OldValue, c.NewValue)
		}

		if res.CausalChain != nil {
			steps := res.CausalChain.Steps
			if len(steps) > maxDiagnosisCausalSteps {
				steps = steps[:maxDiagnosisCausalSteps]
			}
			for _, s := range steps {
				fmt.Fprintf(&b, "  causal step: tick %d, system %d, %s\n", s.Tick, s.SystemId, s.Description)
			}
		}
	}
	return b.String()
}
