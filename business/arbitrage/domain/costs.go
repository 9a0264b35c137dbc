package domain

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// TicketCost is the fixed GOLD fee charged on every transaction, expressed
// against a reference trade size so it can be netted out of percentages.
type TicketCost struct {
	CostGold      decimal.Decimal
	ReferenceGold decimal.Decimal
}

// NewTicketCost creates a TicketCost. A non-positive reference makes every
// ticket free in percentage terms.
func NewTicketCost(costGold, referenceGold decimal.Decimal) TicketCost {
	return TicketCost{CostGold: costGold, ReferenceGold: referenceGold}
}

// Fraction returns one ticket as a fraction of the reference trade.
func (t TicketCost) Fraction() decimal.Decimal {
	if !t.ReferenceGold.IsPositive() {
		return decimal.Zero
	}
	return t.CostGold.Div(t.ReferenceGold)
}

// Pct returns the cost of n tickets in percent of the reference trade.
func (t TicketCost) Pct(n int) decimal.Decimal {
	return t.Fraction().Mul(decimal.NewFromInt(int64(n))).Mul(hundred)
}

// Gold returns the absolute cost of n tickets.
func (t TicketCost) Gold(n int) decimal.Decimal {
	return t.CostGold.Mul(decimal.NewFromInt(int64(n)))
}

// ProfitResult contains the calculated profit for an opportunity.
type ProfitResult struct {
	GrossPct decimal.Decimal // before tickets, e.g. 7.14 for 7.14%
	CostPct  decimal.Decimal
	NetPct   decimal.Decimal
	Tickets  int
}

// NewProfitResult nets the ticket cost of a cycle out of its gross growth
// factor (1.05 means +5%).
func NewProfitResult(growth decimal.Decimal, tickets int, cost TicketCost) ProfitResult {
	gross := growth.Sub(decimal.NewFromInt(1)).Mul(hundred)
	costPct := cost.Pct(tickets)
	return ProfitResult{
		GrossPct: gross,
		CostPct:  costPct,
		NetPct:   gross.Sub(costPct),
		Tickets:  tickets,
	}
}

// Meets reports whether the net profit reaches the cutoff (inclusive).
func (p ProfitResult) Meets(minPct decimal.Decimal) bool {
	return p.NetPct.GreaterThanOrEqual(minPct)
}
