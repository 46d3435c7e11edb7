// Package tui implements the interactive report browser: a
// bubbletea program over a VerificationReport, styled with lipgloss.
// The package does no color-profile detection of its own.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lox/nomai-verify/internal/report"
	"github.com/lox/nomai-verify/internal/verify"
)

// ReportModel pages through a VerificationReport's results, showing
// each failure's evidence and causal-chain excerpt, plus its
// suggested fix, in a scrollable pane.
type ReportModel struct {
	report   verify.VerificationReport
	fixes    []report.SuggestedFix
	logger   *log.Logger
	cursor   int
	detail   viewport.Model
	width    int
	height   int
	quitting bool
}

// NewReportModel builds a browser over r.
func NewReportModel(r verify.VerificationReport, logger *log.Logger) *ReportModel {
	if logger == nil {
		logger = log.Default()
	}
	vp := viewport.New(80, 10)
	m := &ReportModel{
		report: r,
		fixes:  report.SuggestedFixes(r),
		logger: logger.WithPrefix("tui"),
		detail: vp,
	}
	m.refreshDetail()
	return m
}

func (m *ReportModel) Init() tea.Cmd { return nil }

func (m *ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 4

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.refreshDetail()
			}
		case "down", "j":
			if m.cursor < len(m.report.Results)-1 {
				m.cursor++
				m.refreshDetail()
			}
		}
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m *ReportModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf(" %s — %d/%d passed ", m.report.SuiteName, m.report.Passed, m.report.Total)))
	b.WriteString("\n\n")

	for i, res := range m.report.Results {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		style := PassStyle
		label := "PASS"
		if !res.Passed {
			style = FailStyle
			label = "FAIL"
		}
		b.WriteString(marker + style.Render(label) + " " + IntentNameStyle.Render(res.IntentName))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detail.View())
	return b.String()
}

func (m *ReportModel) refreshDetail() {
	if m.cursor >= len(m.report.Results) {
		m.detail.SetContent("")
		return
	}
	res := m.report.Results[m.cursor]

	var b strings.Builder
	if !res.Passed {
		b.WriteString(FailStyle.Render(res.FailureReason))
		b.WriteString("\n")
	}
	for i, c := range res.Evidence {
		if i >= 3 {
			break
		}
		b.WriteString(EvidenceStyle.Render(fmt.Sprintf("evidence: entity %d, %s: %v -> %v", c.EntityId, c.Component, c.OldValue, c.NewValue)))
		b.WriteString("\n")
	}
	for _, f := range m.fixes {
		if f.IntentName != res.IntentName {
			continue
		}
		b.WriteString(FixStyle.Render(fmt.Sprintf("fix [%s]: %s", f.Type, f.Description)))
		b.WriteString("\n")
	}

	m.detail.SetContent(b.String())
}
