package regression

import (
	"fmt"

	"github.com/lox/nomai-verify/internal/manifest"
	"github.com/lox/nomai-verify/internal/verify"
)

// ReplayResult is the outcome of re-running a pinned fixture (spec.md
// §4.12). Passed holds iff both counts still match; any drift is
// named explicitly in Reason.
type ReplayResult struct {
	Passed         bool
	Reason         string
	ExpectedPassed int
	ExpectedFailed int
	ActualPassed   int
	ActualFailed   int
}

// Replay re-runs verification for rt's suite against either rt's own
// pinned manifests or manifestsOverride (for testing a suite against a
// different run without re-pinning), and reports drift against the
// fixture's recorded counts.
func (rt RegressionTest) Replay(engine verify.Engine, manifestsOverride []manifest.TickManifest) ReplayResult {
	manifests := rt.Manifests
	if manifestsOverride != nil {
		manifests = manifestsOverride
	}

	report := engine.Verify(rt.Suite, manifests, nil, nil)

	result := ReplayResult{
		ExpectedPassed: rt.ExpectedPassCount,
		ExpectedFailed: rt.ExpectedFailCount,
		ActualPassed:   report.Passed,
		ActualFailed:   report.Failed,
	}
	result.Passed = result.ExpectedPassed == result.ActualPassed && result.ExpectedFailed == result.ActualFailed
	if !result.Passed {
		result.Reason = fmt.Sprintf(
			"drift: expected %d passed/%d failed, got %d passed/%d failed",
			result.ExpectedPassed, result.ExpectedFailed, result.ActualPassed, result.ActualFailed,
		)
	}
	return result
}
