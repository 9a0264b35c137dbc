package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fd1az/eclesiar-analyzer/business/report/app"
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
)

// ConsoleReporter implements Reporter for CLI output.
type ConsoleReporter struct {
	out        io.Writer
	production bool
}

// NewConsoleReporter creates a ConsoleReporter writing to stdout. With
// production set the region rankings are printed after the opportunities.
func NewConsoleReporter(production bool) *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout, production: production}
}

// Start prints the banner.
func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Eclesiar Analyzer Started")
	fmt.Fprintln(r.out, "=========================")
	return nil
}

// Report prints the report.
func (r *ConsoleReporter) Report(ctx context.Context, rep *domain.Report) error {
	fmt.Fprintln(r.out, "")
	writeArbitrageText(r.out, rep)
	if r.production {
		fmt.Fprintln(r.out, "")
		writeProductionText(r.out, rep)
	}
	return nil
}

// Status prints failures only; progress would drown the reports.
func (r *ConsoleReporter) Status(ctx context.Context, s app.Status) {
	if s.Phase == app.PhaseFailed && s.Err != nil {
		fmt.Fprintf(r.out, "[%s] cycle %d failed: %v\n", time.Now().Format(time.TimeOnly), s.Cycle, s.Err)
	}
}

// Stop prints the closing line.
func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Eclesiar Analyzer Stopped")
	return nil
}
