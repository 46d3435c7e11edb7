package verify

import (
	"fmt"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
	"github.com/lox/nomai-verify/internal/physics"
)

// VerificationReport is the outcome of running a suite (spec.md §4.9).
type VerificationReport struct {
	SuiteName     string
	Total         int
	Passed        int
	Failed        int
	Results       []IntentResult
	WallTimeMs    int64
	TicksExamined int
}

// PhysicsOptions carries the optional physics registry and timestep
// consulted by the Verify call (spec.md §4.10). A nil Registry skips
// the physics scans entirely.
type PhysicsOptions struct {
	Registry physics.Registry
	DT       float64
}

// Engine is stateless and reentrant across calls (spec.md §5); the
// only field it carries is an injectable clock, consulted solely to
// stamp WallTimeMs, never to influence a result.
type Engine struct {
	clock quartz.Clock
}

// NewEngine returns a ready-to-use Engine backed by the real wall
// clock. Every call to Verify is otherwise self-contained.
func NewEngine() Engine { return Engine{clock: quartz.NewReal()} }

// NewEngineWithClock returns an Engine backed by clock, so determinism
// tests can assert an exact WallTimeMs via quartz.NewMock instead of
// sleeping (spec.md §8 "Determinism").
func NewEngineWithClock(clock quartz.Clock) Engine { return Engine{clock: clock} }

// Verify drives the whole verification pipeline for suite against
// manifests. index and physicsOpts are both optional: a nil index
// means every Entity intent falls back to the manifest scan; a nil
// physicsOpts.Registry skips physics sanity.
//
// Intent evaluation and the physics scan touch disjoint, read-only
// inputs and are assembled in a fixed order (intents, then physics),
// so running them concurrently does not affect the report's contents
// — only wall_time_ms, which is expected to vary run to run.
func (e Engine) Verify(suite intent.VerificationSuite, manifests []manifest.TickManifest, index manifest.EntityIndex, physicsOpts *PhysicsOptions) VerificationReport {
	clock := e.clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	start := clock.Now()

	var intentResults []IntentResult
	var physicsFindings []physics.Finding

	var g errgroup.Group
	g.Go(func() error {
		intentResults = evalAllIntents(suite, manifests, index)
		return nil
	})
	g.Go(func() error {
		if physicsOpts != nil && physicsOpts.Registry != nil {
			physicsFindings = physics.Scan(manifests, physicsOpts.Registry, physicsOpts.DT)
		}
		return nil
	})
	_ = g.Wait()

	results := make([]IntentResult, 0, len(intentResults)+len(physicsFindings))
	results = append(results, intentResults...)
	for _, f := range physicsFindings {
		tick := f.Tick
		results = append(results, IntentResult{
			IntentName:  f.Name,
			Kind:        "physics",
			Passed:      false,
			FailureReason: f.Reason,
			TriggerTick: &tick,
			Evidence:    f.Evidence,
		})
	}

	report := VerificationReport{
		SuiteName:     suite.Name,
		Total:         len(results),
		Results:       results,
		WallTimeMs:    clock.Now().Sub(start).Milliseconds(),
		TicksExamined: len(manifests),
	}
	for _, r := range results {
		if r.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
	}
	return report
}

// evalAllIntents dispatches each intent in declaration order (spec.md
// §5) to its kind-specific evaluator.
func evalAllIntents(suite intent.VerificationSuite, manifests []manifest.TickManifest, index manifest.EntityIndex) []IntentResult {
	results := make([]IntentResult, 0, len(suite.Intents))
	for _, spec := range suite.Intents {
		results = append(results, evalIntent(spec, manifests, index))
	}
	return results
}

func evalIntent(spec intent.IntentSpec, manifests []manifest.TickManifest, index manifest.EntityIndex) IntentResult {
	switch spec.Kind {
	case intent.KindEntity:
		return evalEntity(spec, manifests, index)
	case intent.KindBehavior:
		return evalBehavior(spec, manifests)
	case intent.KindMetric:
		return evalMetric(spec, manifests)
	case intent.KindInvariant:
		return evalInvariant(spec, manifests)
	default:
		return fail(spec.Name, string(spec.Kind), fmt.Sprintf("Unknown intent kind %q", spec.Kind))
	}
}
