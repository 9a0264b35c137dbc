// Package app contains the ingestion application services and ports.
package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
)

// SnapshotSource fetches a fresh snapshot from the game.
type SnapshotSource interface {
	FetchSnapshot(ctx context.Context) (*domain.Snapshot, error)
}

// SnapshotStore persists snapshots append-only.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, s *domain.Snapshot) error
	// LatestSnapshot fails with NO_SNAPSHOT when nothing is stored.
	LatestSnapshot(ctx context.Context) (*domain.Snapshot, error)
	// RateHistory returns up to limit past rates, oldest first.
	RateHistory(ctx context.Context, currency market.CurrencyID, limit int) ([]decimal.Decimal, error)
	Ping(ctx context.Context) error
}

// RunStore keeps one summary row per report run.
type RunStore interface {
	SaveReportSummary(ctx context.Context, r domain.RunRecord) error
	ReportHistory(ctx context.Context, limit int) ([]domain.RunRecord, error)
}
