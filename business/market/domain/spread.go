package domain

import "github.com/shopspring/decimal"

// Spread is the gap between the cheapest way into a currency and the
// richest way out of it.
type Spread struct {
	BuyRate   decimal.Decimal // best Buy offer (lowest)
	SellRate  decimal.Decimal // best Sell offer (highest)
	Absolute  decimal.Decimal // Sell - Buy
	Fraction  decimal.Decimal // (Sell - Buy) / Buy
	Direction SpreadDirection
}

// SpreadDirection tells whether the book is crossed.
type SpreadDirection string

const (
	SpreadCrossed SpreadDirection = "CROSSED" // Sell > Buy: buy then sell is profitable before costs
	SpreadNormal  SpreadDirection = "NORMAL"  // Sell < Buy
	SpreadFlat    SpreadDirection = "FLAT"
)

// CalculateSpread computes the spread between a buy and a sell rate.
// A zero buy rate yields a zero fraction.
func CalculateSpread(buyRate, sellRate decimal.Decimal) Spread {
	absolute := sellRate.Sub(buyRate)
	fraction := decimal.Zero
	if !buyRate.IsZero() {
		fraction = absolute.Div(buyRate)
	}

	var direction SpreadDirection
	switch {
	case absolute.IsPositive():
		direction = SpreadCrossed
	case absolute.IsNegative():
		direction = SpreadNormal
	default:
		direction = SpreadFlat
	}

	return Spread{
		BuyRate:   buyRate,
		SellRate:  sellRate,
		Absolute:  absolute,
		Fraction:  fraction,
		Direction: direction,
	}
}

// Percent returns the fraction expressed in percent.
func (s Spread) Percent() decimal.Decimal {
	return s.Fraction.Mul(decimal.NewFromInt(100))
}
