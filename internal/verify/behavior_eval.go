package verify

import (
	"fmt"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
)

// evalBehavior implements the two-phase scan of spec.md §4.6: resolve
// the trigger index, then scan within the timeout window for the
// expected outcome. First-match semantics everywhere: earliest
// trigger, then earliest expected.
func evalBehavior(spec intent.IntentSpec, manifests []manifest.TickManifest) IntentResult {
	triggerIdx, reason := resolveTriggerIndex(spec.Trigger, manifests)
	if triggerIdx < 0 {
		return fail(spec.Name, string(intent.KindBehavior), reason)
	}

	triggerTick := manifests[triggerIdx].Tick
	timeout := spec.EffectiveTimeout()
	end := triggerIdx + timeout
	if end > len(manifests) {
		end = len(manifests)
	}

	for i := triggerIdx; i < end; i++ {
		if ok, evidence := evalExpected(spec.Expected, manifests[i]); ok {
			result := pass(spec.Name, string(intent.KindBehavior), evidence...)
			result.TriggerTick = &triggerTick
			return result
		}
	}

	result := fail(spec.Name, string(intent.KindBehavior),
		fmt.Sprintf("expected not met within %d ticks after trigger at tick %d", timeout, triggerTick))
	result.TriggerTick = &triggerTick
	return result
}

// resolveTriggerIndex returns the manifest index where the trigger
// first fires, or -1 with a failure reason if it never does. After
// triggers are two-phase: resolve the child's firing index, then add
// its delay.
func resolveTriggerIndex(t intent.Trigger, manifests []manifest.TickManifest) (int, string) {
	if t.Kind == intent.TriggerAfter {
		childIdx, _ := resolveTriggerIndex(t.Children[0], manifests)
		if childIdx < 0 {
			return -1, "child trigger never fired"
		}
		resolved := childIdx + t.DelayTicks
		if resolved >= len(manifests) {
			return -1, "delay exceeds available manifests"
		}
		return resolved, ""
	}

	for i, m := range manifests {
		if evalTrigger(t, m) {
			return i, ""
		}
	}
	return -1, fmt.Sprintf("trigger never fired across %d ticks", len(manifests))
}
