package intent

import "fmt"

// Validate returns non-fatal warnings for an intent. It never runs at
// evaluation time; suite authors invoke it explicitly.
func (s IntentSpec) Validate() []string {
	var warnings []string

	switch s.Kind {
	case KindBehavior:
		if s.Trigger.Kind == "" {
			warnings = append(warnings, fmt.Sprintf("%s: behavior intent is missing a trigger", s.Name))
		}
		if s.Expected.Kind == "" {
			warnings = append(warnings, fmt.Sprintf("%s: behavior intent is missing an expected outcome", s.Name))
		}
		warnings = append(warnings, validateTriggerTree(s.Name, s.Trigger)...)

	case KindMetric:
		if s.MetricRange == (Range{}) {
			warnings = append(warnings, fmt.Sprintf("%s: metric intent is missing a range", s.Name))
		} else if s.MetricRange.Min > s.MetricRange.Max {
			warnings = append(warnings, fmt.Sprintf("%s: metric range min (%v) > max (%v)", s.Name, s.MetricRange.Min, s.MetricRange.Max))
		}

	case KindEntity:
		if s.EntityRole == "" {
			warnings = append(warnings, fmt.Sprintf("%s: entity intent is missing a role", s.Name))
		}

	case KindInvariant:
		if s.Condition == "" {
			warnings = append(warnings, fmt.Sprintf("%s: invariant intent is missing a condition", s.Name))
		}
	}

	return warnings
}

func validateTriggerTree(name string, t Trigger) []string {
	var warnings []string
	switch t.Kind {
	case TriggerAfter:
		if t.DelayTicks <= 0 {
			warnings = append(warnings, fmt.Sprintf("%s: After trigger has non-positive delay (%d)", name, t.DelayTicks))
		}
	case TriggerAnd:
		if len(t.Children) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: And([]) trigger has no children", name))
		}
	case TriggerOr:
		if len(t.Children) == 0 {
			warnings = append(warnings, fmt.Sprintf("%s: Or([]) trigger has no children", name))
		}
	}
	for _, c := range t.Children {
		warnings = append(warnings, validateTriggerTree(name, c)...)
	}
	return warnings
}

// Validate validates every intent in the suite and returns all
// warnings in intent declaration order.
func (suite VerificationSuite) Validate() []string {
	var warnings []string
	for _, i := range suite.Intents {
		warnings = append(warnings, i.Validate()...)
	}
	return warnings
}
