package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/nomai-verify/internal/tui"
	"github.com/lox/nomai-verify/internal/verify"
)

// ReportCmd groups report-inspection subcommands.
type ReportCmd struct {
	View ReportViewCmd `cmd:"" help:"browse a saved JSON verification report interactively"`
}

type ReportViewCmd struct {
	File string `arg:"" help:"path to a VerificationReport JSON file produced by 'run --output json'"`
}

func (cmd *ReportViewCmd) Run(logger *log.Logger) error {
	data, err := os.ReadFile(cmd.File)
	if err != nil {
		return fmt.Errorf("read report: %w", err)
	}
	var r verify.VerificationReport
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("parse report: %w", err)
	}

	model := tui.NewReportModel(r, logger)
	p := tea.NewProgram(model)
	_, err = p.Run()
	return err
}
