package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	arbitrage "github.com/fd1az/eclesiar-analyzer/business/arbitrage/app"
	arbitrageDomain "github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	ingestion "github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/app"
	productionDomain "github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testSnapshot() *ingestion.Snapshot {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := ingestion.NewSnapshot(at)
	snap.Rates = market.NewRateTable(
		market.CurrencyRate{Currency: market.Gold, GoldPerUnit: dec("1"), Timestamp: at},
		market.CurrencyRate{Currency: "USD", GoldPerUnit: dec("0.143"), Timestamp: at},
		market.CurrencyRate{Currency: "PLN", GoldPerUnit: dec("0.251"), Timestamp: at},
	)
	snap.Offers = []market.MarketOffer{
		{Currency: "USD", Type: market.Buy, Rate: dec("0.140"), Amount: dec("1000")},
		{Currency: "USD", Type: market.Sell, Rate: dec("0.150"), Amount: dec("1000")},
	}
	for i, bonus := range []string{"10", "30", "20"} {
		snap.Regions = append(snap.Regions, productionDomain.RegionProfile{
			RegionID:    i + 1,
			Name:        "R" + bonus,
			CountryID:   1,
			CountryName: "Poland",
			Pollution:   decimal.Zero,
			BonusScore:  dec(bonus),
			BonusByType: map[productionDomain.BonusType]decimal.Decimal{productionDomain.BonusIron: dec(bonus)},
			NPCWageGold: dec("3"),
		})
	}
	return snap
}

func newTestAnalyzer(t *testing.T, topRegions int) *Analyzer {
	t.Helper()
	calc := arbitrage.NewProfitCalculator(
		arbitrageDomain.NewTicketCost(dec("0.1"), decimal.NewFromInt(100)),
		dec("0.5"),
		dec("1.0"),
	)
	svc := arbitrage.NewArbitrageService(
		arbitrage.NewDetector(calc, arbitrage.DetectorConfig{MinSpread: dec("0.001"), Workers: 1}),
		arbitrage.NewScorer(arbitrage.DefaultScoringConfig()),
		arbitrage.RankConfig{ConfidenceThreshold: 0.3, RiskThreshold: 0.5, Top: 10},
	)
	ranker := production.NewRanker(production.NewCalculator(dec("5")), 5)

	a, err := NewAnalyzer(svc, ranker, topRegions)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestAnalyzer_Analyze(t *testing.T) {
	snap := testSnapshot()

	report, err := newTestAnalyzer(t, 2).Analyze(t.Context(), snap)
	if err != nil {
		t.Fatal(err)
	}

	if report.SnapshotID != snap.ID || !report.SnapshotAt.Equal(snap.FetchedAt) {
		t.Error("report does not point at its snapshot")
	}
	if report.Detected != 1 || len(report.Opportunities) != 1 {
		t.Fatalf("detected %d, reported %d", report.Detected, len(report.Opportunities))
	}
	if got := report.Opportunities[0].PathString(); got != "GOLD -> USD" {
		t.Errorf("path = %s", got)
	}

	if len(report.Regions) != len(productionDomain.AllItems) {
		t.Errorf("ranked %d items, want every item", len(report.Regions))
	}
	iron := report.Regions[productionDomain.Iron]
	if len(iron) != 2 || iron[0].Result.RegionName != "R30" || iron[1].Result.RegionName != "R20" {
		t.Errorf("iron ranking = %+v", iron)
	}
	if countries := report.Countries[productionDomain.Iron]; len(countries) != 1 || countries[0].Regions != 3 {
		t.Errorf("country ranking = %+v", countries)
	}

	if report.Extremes == nil {
		t.Fatal("expected currency extremes")
	}
	if report.Extremes.Highest.Currency != "PLN" || report.Extremes.Lowest.Currency != "USD" {
		t.Errorf("extremes = %s/%s", report.Extremes.Highest.Currency, report.Extremes.Lowest.Currency)
	}
	if report.Snapshot.Regions != 3 || report.Snapshot.Offers != 2 {
		t.Errorf("stats = %+v", report.Snapshot)
	}
}

func TestAnalyzer_EmptySnapshot(t *testing.T) {
	snap := ingestion.NewSnapshot(time.Now())

	report, err := newTestAnalyzer(t, 5).Analyze(t.Context(), snap)
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Opportunities) != 0 || report.RegionsRanked() != 0 {
		t.Errorf("empty snapshot produced %d opportunities, %d rows", len(report.Opportunities), report.RegionsRanked())
	}
	if report.Extremes != nil {
		t.Error("no extremes without rates")
	}
}
