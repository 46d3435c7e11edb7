package intent

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateBehaviorMissingTriggerAndExpected(t *testing.T) {
	spec := IntentSpec{Name: "incomplete", Kind: KindBehavior}
	warnings := spec.Validate()
	require.Len(t, warnings, 2)
}

func TestValidateAfterNonPositiveDelay(t *testing.T) {
	spec := IntentSpec{
		Name:     "bad_after",
		Kind:     KindBehavior,
		Trigger:  After(Collision("a", "b"), 0),
		Expected: EventEmitted("x"),
	}
	warnings := spec.Validate()
	require.Contains(t, warnings, "bad_after: After trigger has non-positive delay (0)")
}

func TestValidateEmptyAndOr(t *testing.T) {
	spec := IntentSpec{
		Name:     "empty_and",
		Kind:     KindBehavior,
		Trigger:  And(),
		Expected: EventEmitted("x"),
	}
	warnings := spec.Validate()
	require.Contains(t, warnings, "empty_and: And([]) trigger has no children")
}

func TestValidateMetricRange(t *testing.T) {
	require.Contains(t, (IntentSpec{Name: "m", Kind: KindMetric}).Validate(), "m: metric intent is missing a range")

	bad := IntentSpec{Name: "m2", Kind: KindMetric, MetricRange: Range{Min: 10, Max: 1}}
	require.Contains(t, bad.Validate(), "m2: metric range min (10) > max (1)")
}

func TestValidateEntityMissingRole(t *testing.T) {
	require.Contains(t, (IntentSpec{Name: "e", Kind: KindEntity}).Validate(), "e: entity intent is missing a role")
}

func TestValidateInvariantMissingCondition(t *testing.T) {
	require.Contains(t, (IntentSpec{Name: "i", Kind: KindInvariant}).Validate(), "i: invariant intent is missing a condition")
}

func TestValidateSuiteAggregatesAllWarnings(t *testing.T) {
	suite := VerificationSuite{
		Name: "s",
		Intents: []IntentSpec{
			{Name: "e", Kind: KindEntity},
			{Name: "i", Kind: KindInvariant},
		},
	}
	require.Len(t, suite.Validate(), 2)
}
