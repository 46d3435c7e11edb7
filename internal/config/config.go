// Package config loads the engine's HCL configuration file, following
// the same parse/decode/default/validate shape as the teacher's
// server configuration.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// EngineConfig is the top-level on-disk shape consumed by
// cmd/nomai-verify.
type EngineConfig struct {
	Engine EngineSettings `hcl:"engine,block"`
	Feed   FeedSettings   `hcl:"feed,block"`
}

// EngineSettings controls the verification engine itself.
type EngineSettings struct {
	DefaultTimeoutTicks int     `hcl:"default_timeout_ticks,optional"`
	PhysicsDT           float64 `hcl:"physics_dt,optional"`
	LogLevel            string  `hcl:"log_level,optional"`
	OutputFormat        string  `hcl:"output_format,optional"`
}

// FeedSettings controls the websocket manifest-ingestion server.
type FeedSettings struct {
	ListenAddr string `hcl:"listen_addr,optional"`
}

// Default returns the configuration used when no file is present.
func Default() *EngineConfig {
	return &EngineConfig{
		Engine: EngineSettings{
			DefaultTimeoutTicks: 600,
			PhysicsDT:           1.0 / 60.0,
			LogLevel:            "info",
			OutputFormat:        "summary",
		},
		Feed: FeedSettings{
			ListenAddr: "localhost:8765",
		},
	}
}

// Load reads and decodes an HCL configuration file, falling back to
// Default() when the file does not exist, and filling in any field
// left zero by the file.
func Load(filename string) (*EngineConfig, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg EngineConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	if cfg.Engine.DefaultTimeoutTicks == 0 {
		cfg.Engine.DefaultTimeoutTicks = def.Engine.DefaultTimeoutTicks
	}
	if cfg.Engine.PhysicsDT == 0 {
		cfg.Engine.PhysicsDT = def.Engine.PhysicsDT
	}
	if cfg.Engine.LogLevel == "" {
		cfg.Engine.LogLevel = def.Engine.LogLevel
	}
	if cfg.Engine.OutputFormat == "" {
		cfg.Engine.OutputFormat = def.Engine.OutputFormat
	}
	if cfg.Feed.ListenAddr == "" {
		cfg.Feed.ListenAddr = def.Feed.ListenAddr
	}

	return &cfg, nil
}

// Validate checks the configuration for internally consistent values.
func (c *EngineConfig) Validate() error {
	if c.Engine.DefaultTimeoutTicks <= 0 {
		return fmt.Errorf("default_timeout_ticks must be positive")
	}
	if c.Engine.PhysicsDT <= 0 {
		return fmt.Errorf("physics_dt must be positive")
	}
	switch c.Engine.OutputFormat {
	case "summary", "json", "both":
	default:
		return fmt.Errorf("invalid output_format: %s", c.Engine.OutputFormat)
	}
	return nil
}
