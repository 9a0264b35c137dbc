package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RunRecord is the stored summary of one report run.
type RunRecord struct {
	RunID         uuid.UUID
	SnapshotID    uuid.UUID
	GeneratedAt   time.Time
	Opportunities int
	TopProfitPct  decimal.Decimal
	RegionsRanked int
}
