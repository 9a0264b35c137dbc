// Package domain contains the ingestion types: one fetched market and
// region snapshot and the record each report run leaves behind.
package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
	production "github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

// Snapshot is everything one ingestion pass fetched. It is append-only:
// a newer snapshot supersedes it, nothing mutates it after Sanitize.
type Snapshot struct {
	ID         uuid.UUID
	FetchedAt  time.Time
	Currencies []market.Currency
	Rates      market.RateTable
	Offers     []market.MarketOffer
	Regions    []production.RegionProfile

	// History holds past GOLD rates per currency, oldest first. It is
	// attached after loading and never stored with the snapshot.
	History map[market.CurrencyID][]decimal.Decimal
}

// NewSnapshot creates an empty snapshot stamped with a fresh id.
func NewSnapshot(fetchedAt time.Time) *Snapshot {
	return &Snapshot{
		ID:        uuid.New(),
		FetchedAt: fetchedAt,
		Rates:     market.NewRateTable(),
		History:   make(map[market.CurrencyID][]decimal.Decimal),
	}
}

// Books groups the offers per currency.
func (s *Snapshot) Books() market.Books {
	return market.GroupOffers(s.Offers)
}

// Registry indexes the snapshot currencies. Duplicates keep the first entry.
func (s *Snapshot) Registry() *market.Registry {
	reg := market.NewRegistry()
	for _, c := range s.Currencies {
		_ = reg.Register(c)
	}
	return reg
}

// SetHistory attaches the past rates of one currency.
func (s *Snapshot) SetHistory(id market.CurrencyID, rates []decimal.Decimal) {
	if s.History == nil {
		s.History = make(map[market.CurrencyID][]decimal.Decimal)
	}
	s.History[id] = rates
}

// Stats counts what the snapshot holds.
func (s *Snapshot) Stats() Stats {
	return Stats{
		Currencies: len(s.Currencies),
		Rates:      s.Rates.Len(),
		Offers:     len(s.Offers),
		Regions:    len(s.Regions),
	}
}

// Stats is a count summary of a snapshot.
type Stats struct {
	Currencies int
	Rates      int
	Offers     int
	Regions    int
}

// Dropped counts records Sanitize removed.
type Dropped struct {
	Rates   int
	Offers  int
	Regions int
}

// Total returns every dropped record.
func (d Dropped) Total() int {
	return d.Rates + d.Offers + d.Regions
}

// Sanitize removes records the analysis core would reject: rates and offer
// rates that are not strictly positive, negative offer amounts and regions
// with out-of-range pollution or negative bonuses.
func (s *Snapshot) Sanitize() Dropped {
	var d Dropped

	rates := make([]market.CurrencyRate, 0, s.Rates.Len())
	for _, r := range s.Rates.Rates() {
		if !r.IsValid() {
			d.Rates++
			continue
		}
		rates = append(rates, r)
	}
	s.Rates = market.NewRateTable(rates...)

	offers := s.Offers[:0]
	for _, o := range s.Offers {
		if !o.Rate.IsPositive() || o.Amount.IsNegative() {
			d.Offers++
			continue
		}
		offers = append(offers, o)
	}
	s.Offers = offers

	regions := s.Regions[:0]
	for _, r := range s.Regions {
		if r.Validate() != nil {
			d.Regions++
			continue
		}
		regions = append(regions, r)
	}
	s.Regions = regions

	return d
}
