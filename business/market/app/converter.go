// Package app contains the market application services.
package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/market/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

// Converter converts amounts between currencies through their GOLD rates.
// It is pure over the table it was built with.
type Converter struct {
	rates domain.RateTable
}

// NewConverter creates a converter over a rate table snapshot.
func NewConverter(rates domain.RateTable) *Converter {
	return &Converter{rates: rates}
}

// Rates returns the underlying table.
func (c *Converter) Rates() domain.RateTable {
	return c.rates
}

// RateToGold returns the GOLD value of one unit of id. GOLD is always 1.
func (c *Converter) RateToGold(id domain.CurrencyID) (decimal.Decimal, error) {
	if id.IsGold() {
		return decimal.NewFromInt(1), nil
	}

	r, ok := c.rates.Get(id)
	if !ok {
		return decimal.Zero, apperror.New(apperror.CodeUnknownCurrency,
			apperror.WithContextf("currency=%s", id))
	}
	if !r.IsValid() {
		return decimal.Zero, apperror.New(apperror.CodeInvalidRate,
			apperror.WithContextf("currency=%s rate=%s", id, r.GoldPerUnit))
	}
	return r.GoldPerUnit, nil
}

// Convert returns amount of from expressed in to: amount * rate(from) / rate(to).
func (c *Converter) Convert(amount decimal.Decimal, from, to domain.CurrencyID) (decimal.Decimal, error) {
	fromRate, err := c.RateToGold(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := c.RateToGold(to)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(fromRate).Div(toRate), nil
}

// ToGold returns the GOLD value of amount units of id.
func (c *Converter) ToGold(amount decimal.Decimal, id domain.CurrencyID) (decimal.Decimal, error) {
	return c.Convert(amount, id, domain.Gold)
}

// Extremes returns the most and least valuable non-GOLD currencies with a
// valid rate. ok is false when there are none.
func (c *Converter) Extremes() (highest, lowest domain.CurrencyRate, ok bool) {
	for _, r := range c.rates.Rates() {
		if r.Currency.IsGold() || !r.IsValid() {
			continue
		}
		if !ok {
			highest, lowest, ok = r, r, true
			continue
		}
		if r.GoldPerUnit.GreaterThan(highest.GoldPerUnit) {
			highest = r
		}
		if r.GoldPerUnit.LessThan(lowest.GoldPerUnit) {
			lowest = r
		}
	}
	return highest, lowest, ok
}
