package verify

import (
	"fmt"

	"github.com/lox/nomai-verify/internal/compare"
	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

// evalMetric scans every manifest for changes matching the metric's
// component and, for each, checks the extracted field against
// [Min, Max]. Boundary values pass (spec.md §8).
func evalMetric(spec intent.IntentSpec, manifests []manifest.TickManifest) IntentResult {
	if spec.MetricRange == (intent.Range{}) || spec.MetricRange.Min > spec.MetricRange.Max {
		return fail(spec.Name, string(intent.KindMetric), "invalid metric range")
	}

	for _, m := range manifests {
		for _, c := range m.ChangesForComponent(spec.MetricComponent) {
			if spec.MetricEntity != "" && !compare.MatchesEntity(c, spec.MetricEntity) {
				continue
			}
			raw := compare.Field(c.NewValue, spec.MetricField)
			val, ok := compare.AsFloat64(raw)
			if !ok {
				continue
			}
			if !spec.MetricRange.Contains(val) {
				result := fail(spec.Name, string(intent.KindMetric),
					fmt.Sprintf("%v out of range [%v,%v]", val, spec.MetricRange.Min, spec.MetricRange.Max))
				tick := m.Tick
				result.TriggerTick = &tick
				result.Evidence = []manifest.ComponentChange{c}
				return result
			}
		}
	}
	return pass(spec.Name, string(intent.KindMetric))
}
