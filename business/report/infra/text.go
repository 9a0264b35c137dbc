// Package infra contains the report sinks: console, files and the TUI.
package infra

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
)

const (
	heavyRule = "================================================================================"
	lightRule = "--------------------------------------------------------------------------------"
)

var hundred = decimal.NewFromInt(100)

// writeArbitrageText renders the opportunity section.
func writeArbitrageText(w io.Writer, r *domain.Report) {
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "CURRENCY ARBITRAGE")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "Generated:      %s\n", r.GeneratedAt.Format(time.DateTime))
	fmt.Fprintf(w, "Snapshot:       %s (%s)\n", r.SnapshotAt.Format(time.DateTime), r.SnapshotID)
	fmt.Fprintf(w, "Detected:       %d\n", r.Detected)
	fmt.Fprintf(w, "Reported:       %d\n", len(r.Opportunities))
	if r.Extremes != nil {
		fmt.Fprintf(w, "Highest:        %s %s GOLD\n", r.Extremes.Highest.Currency, r.Extremes.Highest.GoldPerUnit.StringFixed(6))
		fmt.Fprintf(w, "Lowest:         %s %s GOLD\n", r.Extremes.Lowest.Currency, r.Extremes.Lowest.GoldPerUnit.StringFixed(6))
	}
	fmt.Fprintln(w, lightRule)

	if len(r.Opportunities) == 0 {
		fmt.Fprintln(w, "No opportunities above the thresholds.")
		return
	}
	for i, o := range r.Opportunities {
		fmt.Fprintf(w, "%2d. [%s] %s\n", i+1, o.Kind, o.PathString())
		fmt.Fprintf(w, "    Buy: %s | Sell: %s\n", o.BuyRate.StringFixed(6), o.SellRate.StringFixed(6))
		fmt.Fprintf(w, "    Profit: %s%% gross, %s%% net | Max amount: %s GOLD\n",
			o.Profit.GrossPct.StringFixed(2), o.Profit.NetPct.StringFixed(2), o.MaxAmountGold.StringFixed(2))
		fmt.Fprintf(w, "    Estimated profit: %s GOLD (tickets %s GOLD)\n",
			o.EstimatedProfitGold.StringFixed(6), o.TicketCostGold.StringFixed(2))
		fmt.Fprintf(w, "    Risk: %.3f | Confidence: %.3f | Liquidity: %.3f | Volume: %.3f\n",
			o.Scores.Risk, o.Scores.Confidence, o.Scores.Liquidity, o.Scores.Volume)
		fmt.Fprintf(w, "    Execution: %.0fs\n", o.ExecutionTime.Seconds())
		fmt.Fprintln(w, lightRule)
	}
}

// writeProductionText renders the region and country rankings per item.
func writeProductionText(w io.Writer, r *domain.Report) {
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintln(w, "REGION PRODUCTIVITY")
	fmt.Fprintln(w, heavyRule)
	fmt.Fprintf(w, "Generated:      %s\n", r.GeneratedAt.Format(time.DateTime))
	fmt.Fprintf(w, "Regions:        %d\n", r.Snapshot.Regions)

	for _, item := range r.Items() {
		rows := r.Regions[item]
		fmt.Fprintln(w, lightRule)
		fmt.Fprintf(w, "%s (%s bonus)\n", item.Label(), item.BonusType())
		if len(rows) == 0 {
			fmt.Fprintln(w, "  no regions")
			continue
		}
		for _, row := range rows {
			res := row.Result
			fmt.Fprintf(w, "%3d. %s (%s)\n", row.Rank, res.RegionName, res.CountryName)
			fmt.Fprintf(w, "     Efficiency: %s | Bonus: %s%% | Q%d: %d\n",
				res.Efficiency.StringFixed(2), res.TotalBonus().Mul(hundred).StringFixed(2), res.Tier, res.Output())
			fmt.Fprintf(w, "     Pollution: %s | NPC wage: %s GOLD\n",
				res.Pollution.StringFixed(1), res.NPCWageGold.StringFixed(2))
		}

		if countries := r.Countries[item]; len(countries) > 0 {
			fmt.Fprintln(w, "  Countries:")
			for i, c := range countries {
				if i == 5 {
					break
				}
				fmt.Fprintf(w, "    %s: +%s%% (%d regions)\n", c.CountryName, c.CountryBonusPct.StringFixed(2), c.Regions)
			}
		}
	}
	fmt.Fprintln(w, heavyRule)
}
