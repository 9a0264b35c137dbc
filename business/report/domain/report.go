// Package domain contains the report produced by one analysis cycle.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	arbitrage "github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	ingestion "github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

// Extremes are the most and least valuable currencies of a snapshot.
type Extremes struct {
	Highest market.CurrencyRate
	Lowest  market.CurrencyRate
}

// Report is the result of analysing one snapshot.
type Report struct {
	RunID       uuid.UUID
	SnapshotID  uuid.UUID
	SnapshotAt  time.Time
	GeneratedAt time.Time
	Duration    time.Duration
	Snapshot    ingestion.Stats

	// Detected counts cycles above the profit cutoff before scoring filters.
	Detected      int
	Opportunities []arbitrage.Opportunity

	Regions   map[production.ItemType][]production.RankedRegion
	Countries map[production.ItemType][]production.CountryBonusInfo
	Extremes  *Extremes
}

// Items returns the item types with a region ranking, in catalogue order.
func (r *Report) Items() []production.ItemType {
	out := make([]production.ItemType, 0, len(r.Regions))
	for _, item := range production.AllItems {
		if _, ok := r.Regions[item]; ok {
			out = append(out, item)
		}
	}
	return out
}

// Best returns the top opportunity.
func (r *Report) Best() (arbitrage.Opportunity, bool) {
	if len(r.Opportunities) == 0 {
		return arbitrage.Opportunity{}, false
	}
	return r.Opportunities[0], true
}

// TopProfitPct is the net profit of the best opportunity, zero if none.
func (r *Report) TopProfitPct() decimal.Decimal {
	best, ok := r.Best()
	if !ok {
		return decimal.Zero
	}
	return best.Profit.NetPct
}

// RegionsRanked counts ranking rows across all items.
func (r *Report) RegionsRanked() int {
	n := 0
	for _, rows := range r.Regions {
		n += len(rows)
	}
	return n
}

// Summary is the row stored for this run.
func (r *Report) Summary() ingestion.RunRecord {
	return ingestion.RunRecord{
		RunID:         r.RunID,
		SnapshotID:    r.SnapshotID,
		GeneratedAt:   r.GeneratedAt,
		Opportunities: len(r.Opportunities),
		TopProfitPct:  r.TopProfitPct(),
		RegionsRanked: r.RegionsRanked(),
	}
}
