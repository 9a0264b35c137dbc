package app

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

// DetectorConfig holds configuration for the arbitrage detector.
type DetectorConfig struct {
	CrossEnabled      bool
	IncludeTriangular bool
	MinSpread         decimal.Decimal // fraction, SIMPLE only
	Workers           int             // triangular partitions run at once
}

// Detector enumerates SIMPLE, CROSS and TRIANGULAR cycles over one market
// view. It keeps no state between calls.
type Detector struct {
	calc   *ProfitCalculator
	config DetectorConfig
}

// NewDetector creates a new arbitrage Detector.
func NewDetector(calc *ProfitCalculator, config DetectorConfig) *Detector {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Detector{calc: calc, config: config}
}

// quote is the top of both sides of one book.
type quote struct {
	buy, sell           decimal.Decimal
	hasBuy, hasSell     bool
	buyDepth, sellDepth decimal.Decimal // GOLD at the best rate
}

func (q quote) tradable() bool {
	return q.hasBuy && q.hasSell
}

// Detect returns every cycle whose net profit reaches its cutoff, ordered
// by net profit desc then path. Empty books give an empty result; offers
// or rates that are not strictly positive fail with INVALID_RATE.
func (d *Detector) Detect(ctx context.Context, view MarketView) ([]domain.Opportunity, error) {
	quotes, err := buildQuotes(view)
	if err != nil {
		return nil, err
	}

	ids := make([]market.CurrencyID, 0, len(quotes))
	for id := range quotes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	opps := d.simple(ids, quotes)

	if d.config.CrossEnabled {
		opps = append(opps, d.cross(ids, quotes)...)
	}

	if d.config.IncludeTriangular {
		tri, err := d.triangular(ctx, ids, quotes)
		if err != nil {
			return nil, err
		}
		opps = append(opps, tri...)
	}

	SortByProfit(opps)
	return opps, nil
}

func buildQuotes(view MarketView) (map[market.CurrencyID]quote, error) {
	quotes := make(map[market.CurrencyID]quote, len(view.Books))
	for _, id := range view.Books.IDs() {
		if id.IsGold() {
			continue
		}
		book := view.Books[id]
		for _, o := range book.All() {
			if !o.Rate.IsPositive() {
				return nil, apperror.New(apperror.CodeInvalidRate,
					apperror.WithContextf("offer currency=%s side=%s rate=%s", id, o.Type, o.Rate))
			}
			if o.Amount.IsNegative() {
				return nil, apperror.New(apperror.CodeInvalidParameter,
					apperror.WithContextf("offer currency=%s side=%s amount=%s", id, o.Type, o.Amount))
			}
		}
		if r, ok := view.Rates.Get(id); ok && !r.IsValid() {
			return nil, apperror.New(apperror.CodeInvalidRate,
				apperror.WithContextf("currency=%s rate=%s", id, r.GoldPerUnit))
		}

		var q quote
		if best, ok := book.Best(market.Buy); ok {
			q.buy, q.hasBuy, q.buyDepth = best.Rate, true, book.TopDepthGold(market.Buy)
		}
		if best, ok := book.Best(market.Sell); ok {
			q.sell, q.hasSell, q.sellDepth = best.Rate, true, book.TopDepthGold(market.Sell)
		}
		if q.hasBuy || q.hasSell {
			quotes[id] = q
		}
	}
	return quotes, nil
}

// simple: GOLD -> C -> GOLD, buying at the lowest ask and selling at the
// highest bid.
func (d *Detector) simple(ids []market.CurrencyID, quotes map[market.CurrencyID]quote) []domain.Opportunity {
	var out []domain.Opportunity
	for _, id := range ids {
		q := quotes[id]
		if !q.tradable() {
			continue
		}
		spread := market.CalculateSpread(q.buy, q.sell)
		if spread.Fraction.LessThan(d.config.MinSpread) {
			continue
		}

		profit := d.calc.Calculate(domain.KindSimple, decimal.NewFromInt(1).Add(spread.Fraction))
		if !d.calc.Accept(domain.KindSimple, profit) {
			continue
		}
		out = append(out, d.build(domain.KindSimple, []market.CurrencyID{market.Gold, id},
			profit, q.buy, q.sell, decimal.Min(q.buyDepth, q.sellDepth)))
	}
	return out
}

// cross: A -> GOLD -> B and back B -> GOLD -> A, every leg at the top of
// the book. The growth is leg(A, B) * leg(B, A), the same for (A, B) and
// (B, A), so only the A < B pair is reported.
func (d *Detector) cross(ids []market.CurrencyID, quotes map[market.CurrencyID]quote) []domain.Opportunity {
	var out []domain.Opportunity
	for i, a := range ids {
		qa := quotes[a]
		if !qa.tradable() {
			continue
		}
		for _, b := range ids[i+1:] {
			qb := quotes[b]
			if !qb.tradable() {
				continue
			}

			growth := leg(qa, qb).Mul(leg(qb, qa))
			profit := d.calc.Calculate(domain.KindCross, growth)
			if !d.calc.Accept(domain.KindCross, profit) {
				continue
			}
			depth := decimal.Min(qa.buyDepth, qa.sellDepth, qb.buyDepth, qb.sellDepth)
			out = append(out, d.build(domain.KindCross, []market.CurrencyID{a, market.Gold, b},
				profit, qb.buy, qa.sell, depth))
		}
	}
	return out
}

// leg is the units of to obtained for one unit of from through GOLD.
func leg(from, to quote) decimal.Decimal {
	return from.sell.Div(to.buy)
}

// triangular: A -> B -> C -> A. With GOLD-settled legs the growth is the
// product of the three bids over the product of the three asks, so every
// rotation and reversal of a triple has the same value. Only the canonical
// A < B < C cycle is reported. Work is partitioned by the outer index.
func (d *Detector) triangular(ctx context.Context, ids []market.CurrencyID, quotes map[market.CurrencyID]quote) ([]domain.Opportunity, error) {
	var tradable []market.CurrencyID
	for _, id := range ids {
		if quotes[id].tradable() {
			tradable = append(tradable, id)
		}
	}
	n := len(tradable)
	if n < 3 {
		return nil, nil
	}

	parts := make([][]domain.Opportunity, n)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.config.Workers)

	for i := 0; i < n-2; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			a := tradable[i]
			qa := quotes[a]
			var local []domain.Opportunity
			for j := i + 1; j < n-1; j++ {
				b := tradable[j]
				qb := quotes[b]
				ab := leg(qa, qb)
				for k := j + 1; k < n; k++ {
					c := tradable[k]
					qc := quotes[c]

					growth := ab.Mul(leg(qb, qc)).Mul(leg(qc, qa))
					profit := d.calc.Calculate(domain.KindTriangular, growth)
					if !d.calc.Accept(domain.KindTriangular, profit) {
						continue
					}

					depth := decimal.Min(qa.buyDepth, qa.sellDepth, qb.buyDepth, qb.sellDepth, qc.buyDepth, qc.sellDepth)
					local = append(local, d.build(domain.KindTriangular, []market.CurrencyID{a, b, c, a},
						profit, qb.buy, qa.sell, depth))
				}
			}
			parts[i] = local
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.Opportunity
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

func (d *Detector) build(kind domain.Kind, path []market.CurrencyID, profit domain.ProfitResult,
	buyRate, sellRate, maxGold decimal.Decimal) domain.Opportunity {
	return domain.Opportunity{
		Kind:                kind,
		Path:                path,
		Profit:              profit,
		TicketCostGold:      d.calc.TicketsGold(kind),
		BuyRate:             buyRate,
		SellRate:            sellRate,
		MaxAmountGold:       maxGold,
		EstimatedProfitGold: d.calc.EstimatedProfitGold(kind, profit, maxGold),
	}
}

// SortByProfit orders opportunities by net profit desc, then path.
func SortByProfit(opps []domain.Opportunity) {
	sort.SliceStable(opps, func(i, j int) bool {
		if c := opps[i].Profit.NetPct.Cmp(opps[j].Profit.NetPct); c != 0 {
			return c > 0
		}
		return domain.ComparePaths(opps[i].Path, opps[j].Path) < 0
	})
}
