package ui

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
	"github.com/fd1az/eclesiar-analyzer/pkg/ui/components"
)

var hundred = decimal.NewFromInt(100)

func opportunityRows(r *domain.Report) []components.OpportunityRow {
	rows := make([]components.OpportunityRow, 0, len(r.Opportunities))
	for _, o := range r.Opportunities {
		rows = append(rows, components.OpportunityRow{
			Kind:       string(o.Kind),
			Path:       o.PathString(),
			GrossPct:   o.Profit.GrossPct,
			NetPct:     o.Profit.NetPct,
			MaxAmount:  o.MaxAmountGold,
			EstProfit:  o.EstimatedProfitGold,
			Risk:       o.Scores.Risk,
			Confidence: o.Scores.Confidence,
			Execution:  o.ExecutionTime,
		})
	}
	return rows
}

// regionRows returns item labels in catalogue order and their rankings.
func regionRows(r *domain.Report) ([]string, map[string][]components.RegionRow) {
	items := r.Items()
	labels := make([]string, 0, len(items))
	rows := make(map[string][]components.RegionRow, len(items))
	for _, item := range items {
		label := item.Label()
		labels = append(labels, label)
		for _, rr := range r.Regions[item] {
			rows[label] = append(rows[label], components.RegionRow{
				Rank:       rr.Rank,
				Region:     rr.Result.RegionName,
				Country:    rr.Result.CountryName,
				Efficiency: rr.Result.Efficiency,
				BonusPct:   rr.Result.TotalBonus().Mul(hundred),
				Output:     rr.Result.Output(),
				Pollution:  rr.Result.Pollution,
				WageGold:   rr.Result.NPCWageGold,
			})
		}
	}
	return labels, rows
}

func marketSummary(r *domain.Report) components.MarketSummary {
	s := components.MarketSummary{
		SnapshotAt: r.SnapshotAt,
		Currencies: r.Snapshot.Currencies,
		Rates:      r.Snapshot.Rates,
		Offers:     r.Snapshot.Offers,
		Regions:    r.Snapshot.Regions,
	}
	if r.Extremes != nil {
		s.Highest = &components.CurrencyRate{Code: string(r.Extremes.Highest.Currency), Gold: r.Extremes.Highest.GoldPerUnit}
		s.Lowest = &components.CurrencyRate{Code: string(r.Extremes.Lowest.Currency), Gold: r.Extremes.Lowest.GoldPerUnit}
	}
	return s
}
