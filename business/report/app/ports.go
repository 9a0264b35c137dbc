// Package app contains the report application services and ports.
package app

import (
	"context"

	ingestion "github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
)

// Reporter receives every finished report.
type Reporter interface {
	Start(ctx context.Context) error
	Report(ctx context.Context, r *domain.Report) error
	// Status is called with progress and failures between reports.
	Status(ctx context.Context, s Status)
	Stop() error
}

// Phase is where the runner is in its cycle.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseAnalyzing  Phase = "analyzing"
	PhaseIdle       Phase = "idle"
	PhaseFailed     Phase = "failed"
)

// Status is a runner progress update.
type Status struct {
	Phase Phase
	Cycle int
	Err   error
}

// SnapshotCollector produces the snapshot a cycle analyses.
type SnapshotCollector interface {
	Collect(ctx context.Context) (*ingestion.Snapshot, error)
}

// SnapshotAnalyzer turns a snapshot into a report.
type SnapshotAnalyzer interface {
	Analyze(ctx context.Context, snap *ingestion.Snapshot) (*domain.Report, error)
}

// SummaryStore keeps one summary row per run.
type SummaryStore interface {
	SaveReportSummary(ctx context.Context, r ingestion.RunRecord) error
}
