// Package app contains application services and port definitions for the arbitrage context.
package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
)

// ProfitCalculator nets ticket costs out of cycle growth and applies the
// profit cutoffs.
type ProfitCalculator struct {
	tickets        domain.TicketCost
	minProfitPct   decimal.Decimal
	crossMinProfit decimal.Decimal
}

// NewProfitCalculator creates a new ProfitCalculator. Cutoffs are percentages.
func NewProfitCalculator(tickets domain.TicketCost, minProfitPct, crossMinProfitPct decimal.Decimal) *ProfitCalculator {
	return &ProfitCalculator{
		tickets:        tickets,
		minProfitPct:   minProfitPct,
		crossMinProfit: crossMinProfitPct,
	}
}

// Calculate computes the profit of a cycle whose value grows by growth
// (1.02 means +2% before tickets).
func (c *ProfitCalculator) Calculate(kind domain.Kind, growth decimal.Decimal) domain.ProfitResult {
	return domain.NewProfitResult(growth, kind.Tickets(), c.tickets)
}

// Cutoff returns the minimum net profit for a kind. CROSS uses the stricter
// of the general and the cross-specific cutoff.
func (c *ProfitCalculator) Cutoff(kind domain.Kind) decimal.Decimal {
	if kind == domain.KindCross {
		return decimal.Max(c.minProfitPct, c.crossMinProfit)
	}
	return c.minProfitPct
}

// Accept reports whether the profit survives the cutoff for its kind.
func (c *ProfitCalculator) Accept(kind domain.Kind, p domain.ProfitResult) bool {
	return p.Meets(c.Cutoff(kind))
}

// TicketsGold returns the GOLD cost of the tickets a kind needs.
func (c *ProfitCalculator) TicketsGold(kind domain.Kind) decimal.Decimal {
	return c.tickets.Gold(kind.Tickets())
}

// EstimatedProfitGold returns the GOLD made by running the cycle once at
// amountGold, after tickets.
func (c *ProfitCalculator) EstimatedProfitGold(kind domain.Kind, p domain.ProfitResult, amountGold decimal.Decimal) decimal.Decimal {
	return amountGold.Mul(p.GrossPct).Div(decimal.NewFromInt(100)).Sub(c.TicketsGold(kind))
}
