package infra

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fd1az/eclesiar-analyzer/business/report/app"
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
	"github.com/fd1az/eclesiar-analyzer/pkg/ui"
)

// TUIReporter forwards reports and runner progress to the Bubble Tea
// program.
type TUIReporter struct {
	send func(tea.Msg)
}

// NewTUIReporter creates a TUIReporter that sends through ui.Send.
func NewTUIReporter() *TUIReporter {
	return &TUIReporter{send: ui.Send}
}

// Start marks the store as open; the program itself is run by main.
func (r *TUIReporter) Start(ctx context.Context) error {
	r.send(ui.StartupMsg{Step: "database", Status: "connected"})
	return nil
}

// Report sends the report to the dashboard.
func (r *TUIReporter) Report(ctx context.Context, rep *domain.Report) error {
	r.send(ui.ReportMsg{Report: rep})
	return nil
}

// Status sends runner progress to the dashboard.
func (r *TUIReporter) Status(ctx context.Context, s app.Status) {
	r.send(ui.RunnerStatusMsg{Phase: string(s.Phase), Cycle: s.Cycle, Err: s.Err})
}

// Stop is a no-op; quitting the program is left to the user.
func (r *TUIReporter) Stop() error {
	return nil
}
