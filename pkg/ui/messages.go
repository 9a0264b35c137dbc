package ui

import (
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
)

// ReportMsg carries a finished analysis cycle.
type ReportMsg struct {
	Report *domain.Report
}

// RunnerStatusMsg is sent when the analysis loop changes phase.
type RunnerStatusMsg struct {
	Phase string // "collecting", "analyzing", "idle", "failed"
	Cycle int
	Err   error
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg reports progress of one startup step.
type StartupMsg struct {
	Step   string // "config", "database", "eclesiar"
	Status string // "connecting", "connected", "failed"
}
