package verify

import (
	"strings"

	"github.com/lox/nomai-verify/internal/compare"
	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

// evalTrigger is the single-manifest predicate for a Trigger variant
// (spec.md §4.4). After returns false at this layer by design — only
// the Behavior Evaluator (F) knows how to resolve its two-phase
// semantics; this keeps single-tick dispatch pure.
func evalTrigger(t intent.Trigger, m manifest.TickManifest) bool {
	switch t.Kind {
	case intent.TriggerTickReached:
		return m.Tick >= t.Tick

	case intent.TriggerEventOccurred:
		for _, e := range m.EventsOfType(t.EventType) {
			if len(t.Involving) == 0 {
				return true
			}
			haystack := e.Description + " " + e.ReasonDetail()
			if allInvolved(haystack, t.Involving) {
				return true
			}
		}
		return false

	case intent.TriggerComponentCondition:
		for _, c := range m.ChangesForComponent(t.Component) {
			val := compare.Field(c.NewValue, t.Field)
			if ok := compareValue(val, t.Op, t.Value); ok {
				return true
			}
		}
		return false

	case intent.TriggerAggregateCondition:
		count := m.Aggregates.TypeCount(t.AggregateType)
		target, ok := compare.AsFloat64(t.Value)
		if !ok {
			return false
		}
		return compare.Numeric(count, t.Op, target)

	case intent.TriggerCollision:
		for _, e := range m.EventsOfType("collision") {
			detail := strings.ToLower(e.ReasonDetail())
			if strings.Contains(detail, strings.ToLower(t.EntityA)) &&
				strings.Contains(detail, strings.ToLower(t.EntityB)) {
				return true
			}
		}
		return false

	case intent.TriggerStateTransition:
		for _, c := range m.ComponentChanges {
			if !valuesEqual(c.OldValue, t.From) || !valuesEqual(c.NewValue, t.To) {
				continue
			}
			if strings.Contains(c.ReasonDetail(), t.Entity) {
				return true
			}
		}
		return false

	case intent.TriggerAnd:
		for _, child := range t.Children {
			if !evalTrigger(child, m) {
				return false
			}
		}
		return len(t.Children) > 0

	case intent.TriggerOr:
		for _, child := range t.Children {
			if evalTrigger(child, m) {
				return true
			}
		}
		return false

	case intent.TriggerAfter:
		return false

	default:
		return false
	}
}

func allInvolved(haystack string, names []string) bool {
	for _, n := range names {
		if !compare.ContainsFold(haystack, n) {
			return false
		}
	}
	return true
}

// compareValue dispatches to the numeric or string comparator
// depending on the runtime type of the extracted field; type-
// mismatched pairs are skipped (return false), per spec.md §4.4.
func compareValue(field any, op string, target any) bool {
	if fn, ok := compare.AsFloat64(field); ok {
		if tn, ok := compare.AsFloat64(target); ok {
			return compare.Numeric(fn, op, tn)
		}
		return false
	}
	if fs, ok := field.(string); ok {
		if ts, ok := target.(string); ok {
			return compare.String(fs, op, ts)
		}
		return false
	}
	return false
}

// valuesEqual compares an arbitrary stored value against a string
// literal (From/To in StateTransition are always strings in the DSL).
func valuesEqual(value any, literal string) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	return s == literal
}
