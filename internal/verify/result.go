// Package verify implements the verification engine: the trigger,
// expected, behavior, metric, invariant, and entity evaluators, driven
// by a single stateless, reentrant Engine.
package verify

import "github.com/lox/nomai-verify/internal/manifest"

// IntentResult is the outcome of evaluating one IntentSpec.
type IntentResult struct {
	IntentName  string
	Kind        string
	Passed      bool
	FailureReason string
	TriggerTick *manifest.Tick
	Evidence    []manifest.ComponentChange
	CausalChain *manifest.CausalChain
}

// fail builds a failed IntentResult with a diagnostic reason.
func fail(name, kind, reason string) IntentResult {
	return IntentResult{IntentName: name, Kind: kind, Passed: false, FailureReason: reason}
}

// pass builds a passed IntentResult, optionally carrying evidence.
func pass(name, kind string, evidence ...manifest.ComponentChange) IntentResult {
	return IntentResult{IntentName: name, Kind: kind, Passed: true, Evidence: evidence}
}
