package verify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

func TestEvalMetricPassesWithinRange(t *testing.T) {
	spec := intent.IntentSpec{
		Name:            "speed bounded",
		Kind:            intent.KindMetric,
		MetricComponent: "velocity",
		MetricField:     "dx",
		MetricRange:     intent.Range{Min: -10, Max: 10},
	}
	manifests := []manifest.TickManifest{{
		ComponentChanges: []manifest.ComponentChange{
			{Component: "velocity", NewValue: map[string]any{"dx": 9.0}},
		},
	}}
	result := evalMetric(spec, manifests)
	require.True(t, result.Passed)
}

func TestEvalMetricBoundaryValuesPass(t *testing.T) {
	spec := intent.IntentSpec{
		Name:            "speed boundary",
		Kind:            intent.KindMetric,
		MetricComponent: "velocity",
		MetricField:     "dx",
		MetricRange:     intent.Range{Min: -10, Max: 10},
	}
	manifests := []manifest.TickManifest{{
		ComponentChanges: []manifest.ComponentChange{
			{Component: "velocity", NewValue: map[string]any{"dx": 10.0}},
		},
	}}
	result := evalMetric(spec, manifests)
	require.True(t, result.Passed)
}

func TestEvalMetricFailsOutOfRange(t *testing.T) {
	spec := intent.IntentSpec{
		Name:            "speed bounded",
		Kind:            intent.KindMetric,
		MetricComponent: "velocity",
		MetricField:     "dx",
		MetricRange:     intent.Range{Min: -10, Max: 10},
	}
	tick := manifest.Tick(4)
	manifests := []manifest.TickManifest{{
		Tick: tick,
		ComponentChanges: []manifest.ComponentChange{
			{Component: "velocity", NewValue: map[string]any{"dx": 99.0}},
		},
	}}
	result := evalMetric(spec, manifests)
	require.False(t, result.Passed)
	require.Contains(t, result.FailureReason, "out of range")
	require.Equal(t, &tick, result.TriggerTick)
	require.Len(t, result.Evidence, 1)
}

func TestEvalMetricFiltersByEntity(t *testing.T) {
	spec := intent.IntentSpec{
		Name:            "paddle speed bounded",
		Kind:            intent.KindMetric,
		MetricEntity:    "7",
		MetricComponent: "velocity",
		MetricField:     "dx",
		MetricRange:     intent.Range{Min: -10, Max: 10},
	}
	manifests := []manifest.TickManifest{{
		ComponentChanges: []manifest.ComponentChange{
			{EntityId: 9, Component: "velocity", NewValue: map[string]any{"dx": 999.0}},
			{EntityId: 7, Component: "velocity", NewValue: map[string]any{"dx": 1.0}},
		},
	}}
	result := evalMetric(spec, manifests)
	require.True(t, result.Passed, "change belonging to a different entity id must be skipped")
}

func TestEvalMetricInvalidRangeFails(t *testing.T) {
	spec := intent.IntentSpec{
		Name:            "bad range",
		Kind:            intent.KindMetric,
		MetricComponent: "velocity",
		MetricField:     "dx",
		MetricRange:     intent.Range{Min: 10, Max: -10},
	}
	result := evalMetric(spec, nil)
	require.False(t, result.Passed)
	require.Contains(t, result.FailureReason, "invalid metric range")
}
