// Package regression persists verification runs as fixtures and
// detects drift when replaying them against the current engine,
// suite, and (optionally) a substituted manifest sequence
// (spec.md §4.12).
package regression

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
	"github.com/lox/nomai-verify/internal/verify"
)

// RegressionTest is a pinned fixture: the suite and manifest sequence
// that produced a known-good report, plus the pass/fail counts to
// check future runs against.
type RegressionTest struct {
	Name              string                     `json:"name"`
	Suite             intent.VerificationSuite   `json:"suite"`
	Manifests         []manifest.TickManifest    `json:"manifests"`
	ExpectedPassCount int                        `json:"expected_pass_count"`
	ExpectedFailCount int                        `json:"expected_fail_count"`
}

// Create captures expected_pass_count/expected_fail_count from report.
func Create(name string, suite intent.VerificationSuite, manifests []manifest.TickManifest, report verify.VerificationReport) RegressionTest {
	return RegressionTest{
		Name:              name,
		Suite:             suite,
		Manifests:         manifests,
		ExpectedPassCount: report.Passed,
		ExpectedFailCount: report.Failed,
	}
}

// Save persists the fixture as JSON, creating parent directories as
// needed.
func (rt RegressionTest) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create regression fixture dir: %w", err)
	}
	data, err := json.MarshalIndent(rt, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal regression fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write regression fixture: %w", err)
	}
	log.Debug().Str("path", path).Str("name", rt.Name).Msg("regression fixture saved")
	return nil
}

// Load reads a fixture previously written by Save.
func Load(path string) (RegressionTest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RegressionTest{}, fmt.Errorf("read regression fixture: %w", err)
	}
	var rt RegressionTest
	if err := json.Unmarshal(data, &rt); err != nil {
		return RegressionTest{}, fmt.Errorf("parse regression fixture: %w", err)
	}
	return rt, nil
}

// Logger returns a zerolog.Logger scoped to this fixture's name, for
// callers that want structured replay diagnostics (spec.md's AMBIENT
// STACK expansion).
func (rt RegressionTest) Logger() zerolog.Logger {
	return log.With().Str("regression_test", rt.Name).Logger()
}
