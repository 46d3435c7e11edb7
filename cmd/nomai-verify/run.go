package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/nomai-verify/internal/config"
	"github.com/lox/nomai-verify/internal/feed"
	"github.com/lox/nomai-verify/internal/intent"
	"github.com/lox/nomai-verify/internal/manifest"
	"github.com/lox/nomai-verify/internal/report"
	"github.com/lox/nomai-verify/internal/verify"
)

// RunCmd verifies a suite against a manifest file, or against a live
// websocket feed when --feed is set, exiting 0 iff every intent
// passed.
type RunCmd struct {
	Suite     string        `help:"path to a VerificationSuite JSON file" required:""`
	Manifests string        `help:"path to a []TickManifest JSON file"`
	Feed      bool          `help:"drain manifests from a live websocket feed instead of a file"`
	FeedIdle  time.Duration `help:"stop draining the feed after this long without a new manifest" default:"2s"`
	Config    string        `help:"path to an HCL engine configuration file" default:"nomai-verify.hcl"`
	Output    string        `help:"output format: summary, json" default:"summary"`
}

func (cmd *RunCmd) Run(logger *log.Logger) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	suiteData, err := os.ReadFile(cmd.Suite)
	if err != nil {
		return fmt.Errorf("read suite: %w", err)
	}
	var suite intent.VerificationSuite
	if err := json.Unmarshal(suiteData, &suite); err != nil {
		return fmt.Errorf("parse suite: %w", err)
	}

	manifests, err := cmd.loadManifests(logger, cfg)
	if err != nil {
		return err
	}

	engine := verify.NewEngine()
	physicsOpts := &verify.PhysicsOptions{DT: cfg.Engine.PhysicsDT}
	rep := engine.Verify(suite, manifests, nil, physicsOpts)

	switch cmd.Output {
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
	default:
		fmt.Print(report.Summary(rep))
	}

	if rep.Failed > 0 {
		os.Exit(1)
	}
	return nil
}

func (cmd *RunCmd) loadManifests(logger *log.Logger, cfg *config.EngineConfig) ([]manifest.TickManifest, error) {
	if cmd.Feed {
		listener := feed.NewListener(logger, 1024)
		ln, err := net.Listen("tcp", cfg.Feed.ListenAddr)
		if err != nil {
			return nil, fmt.Errorf("listen on feed address: %w", err)
		}
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = listener.Serve(ctx, ln) }()
		logger.Info("waiting for manifests on feed", "addr", cfg.Feed.ListenAddr, "idle_timeout", cmd.FeedIdle)
		return feed.DrainIdle(ctx, listener.Manifests(), quartz.NewReal(), cmd.FeedIdle), nil
	}

	if cmd.Manifests == "" {
		return nil, fmt.Errorf("--manifests is required unless --feed is set")
	}
	data, err := os.ReadFile(cmd.Manifests)
	if err != nil {
		return nil, fmt.Errorf("read manifests: %w", err)
	}
	var manifests []manifest.TickManifest
	if err := json.Unmarshal(data, &manifests); err != nil {
		return nil, fmt.Errorf("parse manifests: %w", err)
	}
	return manifests, nil
}
