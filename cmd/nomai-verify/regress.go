package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
	"github.com/lox/nomai-verify/internal/regression"
	"github.com/lox/nomai-verify/internal/verify"
)

// RegressCmd groups the regression-fixture subcommands.
type RegressCmd struct {
	Create RegressCreateCmd `cmd:"" help:"verify a suite and pin the resulting pass/fail counts"`
	Replay RegressReplayCmd `cmd:"" help:"re-run a pinned fixture and report any drift"`
}

type RegressCreateCmd struct {
	Suite     string `help:"path to a VerificationSuite JSON file" required:""`
	Manifests string `help:"path to a []TickManifest JSON file" required:""`
	Out       string `help:"path to write the regression fixture" required:""`
	Name      string `help:"fixture name" required:""`
}

func (cmd *RegressCreateCmd) Run(logger *log.Logger) error {
	suite, err := loadSuite(cmd.Suite)
	if err != nil {
		return err
	}
	manifests, err := loadManifestFile(cmd.Manifests)
	if err != nil {
		return err
	}

	engine := verify.NewEngine()
	report := engine.Verify(suite, manifests, nil, nil)

	rt := regression.Create(cmd.Name, suite, manifests, report)
	if err := rt.Save(cmd.Out); err != nil {
		return fmt.Errorf("save fixture: %w", err)
	}
	logger.Info("regression fixture saved", "path", cmd.Out, "passed", report.Passed, "failed", report.Failed)
	return nil
}

type RegressReplayCmd struct {
	Fixture   string `help:"path to a saved regression fixture" required:""`
	Manifests string `help:"optional replacement []TickManifest JSON file"`
}

func (cmd *RegressReplayCmd) Run(logger *log.Logger) error {
	rt, err := regression.Load(cmd.Fixture)
	if err != nil {
		return fmt.Errorf("load fixture: %w", err)
	}

	var override []manifest.TickManifest
	if cmd.Manifests != "" {
		override, err = loadManifestFile(cmd.Manifests)
		if err != nil {
			return err
		}
	}

	engine := verify.NewEngine()
	result := rt.Replay(engine, override)

	if !result.Passed {
		logger.Error("regression drift detected", "reason", result.Reason)
		os.Exit(1)
	}
	logger.Info("regression replay matches fixture", "passed", result.ActualPassed, "failed", result.ActualFailed)
	return nil
}

func loadSuite(path string) (intent.VerificationSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return intent.VerificationSuite{}, fmt.Errorf("read suite: %w", err)
	}
	var suite intent.VerificationSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return intent.VerificationSuite{}, fmt.Errorf("parse suite: %w", err)
	}
	return suite, nil
}

func loadManifestFile(path string) ([]manifest.TickManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifests: %w", err)
	}
	var manifests []manifest.TickManifest
	if err := json.Unmarshal(data, &manifests); err != nil {
		return nil, fmt.Errorf("parse manifests: %w", err)
	}
	return manifests, nil
}
