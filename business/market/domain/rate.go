package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is the GOLD value of one unit of a currency at a point in time.
type CurrencyRate struct {
	Currency    CurrencyID
	GoldPerUnit decimal.Decimal
	Timestamp   time.Time
}

// IsValid reports whether the rate is usable (strictly positive).
func (r CurrencyRate) IsValid() bool {
	return r.GoldPerUnit.IsPositive()
}

// RateTable holds the latest rate per currency. It is a value built by the
// ingestion layer and read by the analysis core. Invalid rates are kept so
// that consumers can report them instead of silently skipping.
type RateTable struct {
	rates map[CurrencyID]CurrencyRate
}

// NewRateTable builds a table; later entries for the same currency win.
func NewRateTable(rates ...CurrencyRate) RateTable {
	t := RateTable{rates: make(map[CurrencyID]CurrencyRate, len(rates))}
	for _, r := range rates {
		t.rates[r.Currency] = r
	}
	return t
}

// Get returns the rate for id.
func (t RateTable) Get(id CurrencyID) (CurrencyRate, bool) {
	r, ok := t.rates[id]
	return r, ok
}

// Has reports whether id has a rate.
func (t RateTable) Has(id CurrencyID) bool {
	_, ok := t.rates[id]
	return ok
}

// Len returns the number of rates.
func (t RateTable) Len() int {
	return len(t.rates)
}

// IDs returns the currencies in the table, sorted.
func (t RateTable) IDs() []CurrencyID {
	ids := make([]CurrencyID, 0, len(t.rates))
	for id := range t.rates {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Rates returns every rate ordered by currency.
func (t RateTable) Rates() []CurrencyRate {
	out := make([]CurrencyRate, 0, len(t.rates))
	for _, id := range t.IDs() {
		out = append(out, t.rates[id])
	}
	return out
}
