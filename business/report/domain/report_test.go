package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	arbitrage "github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

func TestReport_Summary(t *testing.T) {
	r := &Report{
		RunID:      uuid.New(),
		SnapshotID: uuid.New(),
		Opportunities: []arbitrage.Opportunity{
			{Kind: arbitrage.KindSimple, Profit: arbitrage.ProfitResult{NetPct: decimal.RequireFromString("4.2")}},
			{Kind: arbitrage.KindCross, Profit: arbitrage.ProfitResult{NetPct: decimal.RequireFromString("1.1")}},
		},
		Regions: map[production.ItemType][]production.RankedRegion{
			production.AllItems[1]: make([]production.RankedRegion, 3),
			production.AllItems[0]: make([]production.RankedRegion, 2),
		},
	}

	s := r.Summary()
	if s.RunID != r.RunID || s.SnapshotID != r.SnapshotID {
		t.Error("ids not carried over")
	}
	if s.Opportunities != 2 {
		t.Errorf("Opportunities = %d, want 2", s.Opportunities)
	}
	if s.TopProfitPct.String() != "4.2" {
		t.Errorf("TopProfitPct = %s, want 4.2", s.TopProfitPct)
	}
	if s.RegionsRanked != 5 {
		t.Errorf("RegionsRanked = %d, want 5", s.RegionsRanked)
	}

	items := r.Items()
	if len(items) != 2 || items[0] != production.AllItems[0] {
		t.Errorf("Items() = %v, want catalogue order", items)
	}
}

func TestReport_Empty(t *testing.T) {
	r := &Report{}
	if _, ok := r.Best(); ok {
		t.Error("Best on empty report")
	}
	if !r.TopProfitPct().IsZero() {
		t.Error("TopProfitPct should be zero")
	}
	if r.RegionsRanked() != 0 || len(r.Items()) != 0 {
		t.Error("empty report should rank nothing")
	}
}
