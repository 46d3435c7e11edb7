package report

import (
	"fmt"
	"strings"

	"github.com/lox/nomai-verify/internal/verify"
)

// FixType classifies a failure reason into a small, stable taxonomy.
type FixType string

const (
	FixEntityNotFound    FixType = "entity_not_found"
	FixTriggerNeverFired FixType = "trigger_never_fired"
	FixTimeout           FixType = "timeout"
	FixWrongValue        FixType = "wrong_value"
	FixUnknown           FixType = "unknown"
)

// SuggestedFix pairs a classified failure with an actionable nudge.
type SuggestedFix struct {
	IntentName  string
	Type        FixType
	Description string
	Priority    int
}

// classify is a stable pattern match against the fixed failure-reason
// phrases produced by the entity (§4.8), behavior (§4.6), and
// metric/invariant (§4.7) evaluators. It never inspects intent kind —
// only the text — since that text is the one contract those
// evaluators guarantee not to silently reword.
func classify(reason string) FixType {
	switch {
	case strings.Contains(reason, "no entity found with role"):
		return FixEntityNotFound
	case strings.Contains(reason, "trigger never fired"), strings.Contains(reason, "child trigger never fired"):
		return FixTriggerNeverFired
	case strings.Contains(reason, "expected not met within"), strings.Contains(reason, "delay exceeds available manifests"):
		return FixTimeout
	case strings.Contains(reason, "out of range"), strings.Contains(reason, "type does not match"),
		strings.Contains(reason, "violates"), strings.Contains(reason, "forbidden"):
		return FixWrongValue
	default:
		return FixUnknown
	}
}

func describeFix(t FixType, res verify.IntentResult) string {
	switch t {
	case FixEntityNotFound:
		return fmt.Sprintf("add a spawn command that sets the entity's role to match %q", res.IntentName)
	case FixTriggerNeverFired:
		return "check that the trigger's conditions are reachable in the manifest sequence under test"
	case FixTimeout:
		return "widen timeout_ticks or verify the expected outcome fires sooner"
	case FixWrongValue:
		return "compare the observed value in the failure's evidence against the intent's expected value"
	default:
		return "inspect the failure reason manually"
	}
}

func priorityFor(t FixType) int {
	switch t {
	case FixEntityNotFound:
		return 1
	case FixTriggerNeverFired:
		return 2
	case FixTimeout:
		return 3
	case FixWrongValue:
		return 3
	default:
		return 4
	}
}

// SuggestedFixes emits one SuggestedFix per failed result, in result
// order.
func SuggestedFixes(r verify.VerificationReport) []SuggestedFix {
	var fixes []SuggestedFix
	for _, res := range r.Results {
		if res.Passed {
			continue
		}
		t := classify(res.FailureReason)
		fixes = append(fixes, SuggestedFix{
			IntentName:  res.IntentName,
			Type:        t,
			Description: describeFix(t, res),
			Priority:    priorityFor(t),
		})
	}
	return fixes
}
