package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TransactionType is the side of an offer from the trader's point of view.
type TransactionType string

const (
	// Buy offers let the trader acquire the currency, paying GOLD. Best is lowest rate.
	Buy TransactionType = "BUY"
	// Sell offers let the trader dispose of the currency for GOLD. Best is highest rate.
	Sell TransactionType = "SELL"
)

// MarketOffer is one coin-market order book entry. Rate is GOLD per unit
// and Amount is in units of the currency.
type MarketOffer struct {
	Currency CurrencyID
	Type     TransactionType
	Rate     decimal.Decimal
	Amount   decimal.Decimal
	OwnerRef string
}

// GoldValue returns the GOLD needed to take the whole offer.
func (o MarketOffer) GoldValue() decimal.Decimal {
	return o.Rate.Mul(o.Amount)
}

// OfferBook holds both sides for one currency, each sorted best first.
type OfferBook struct {
	Currency CurrencyID
	buys     []MarketOffer
	sells    []MarketOffer
}

// NewOfferBook splits offers by side and sorts them best first. Offers for
// other currencies are ignored.
func NewOfferBook(currency CurrencyID, offers []MarketOffer) OfferBook {
	b := OfferBook{Currency: currency}
	for _, o := range offers {
		if o.Currency != currency {
			continue
		}
		switch o.Type {
		case Buy:
			b.buys = append(b.buys, o)
		case Sell:
			b.sells = append(b.sells, o)
		}
	}

	sort.SliceStable(b.buys, func(i, j int) bool { return b.buys[i].Rate.LessThan(b.buys[j].Rate) })
	sort.SliceStable(b.sells, func(i, j int) bool { return b.sells[i].Rate.GreaterThan(b.sells[j].Rate) })
	return b
}

// Offers returns one side, best first.
func (b OfferBook) Offers(t TransactionType) []MarketOffer {
	if t == Buy {
		return b.buys
	}
	return b.sells
}

// Best returns the top of one side.
func (b OfferBook) Best(t TransactionType) (MarketOffer, bool) {
	side := b.Offers(t)
	if len(side) == 0 {
		return MarketOffer{}, false
	}
	return side[0], true
}

// HasBothSides reports whether the book can be traded in and out.
func (b OfferBook) HasBothSides() bool {
	return len(b.buys) > 0 && len(b.sells) > 0
}

// TopDepthGold returns the GOLD value of all offers at the best rate of one side.
func (b OfferBook) TopDepthGold(t TransactionType) decimal.Decimal {
	side := b.Offers(t)
	if len(side) == 0 {
		return decimal.Zero
	}
	total := decimal.Zero
	for _, o := range side {
		if !o.Rate.Equal(side[0].Rate) {
			break
		}
		total = total.Add(o.GoldValue())
	}
	return total
}

// DepthGold returns the GOLD value of every offer on one side.
func (b OfferBook) DepthGold(t TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, o := range b.Offers(t) {
		total = total.Add(o.GoldValue())
	}
	return total
}

// Count returns the number of offers on both sides.
func (b OfferBook) Count() int {
	return len(b.buys) + len(b.sells)
}

// All returns both sides, buys first.
func (b OfferBook) All() []MarketOffer {
	out := make([]MarketOffer, 0, b.Count())
	out = append(out, b.buys...)
	return append(out, b.sells...)
}

// Rates returns every offer rate on both sides.
func (b OfferBook) Rates() []decimal.Decimal {
	out := make([]decimal.Decimal, 0, b.Count())
	for _, o := range b.buys {
		out = append(out, o.Rate)
	}
	for _, o := range b.sells {
		out = append(out, o.Rate)
	}
	return out
}

// Books maps currencies to their offer books.
type Books map[CurrencyID]OfferBook

// GroupOffers builds one book per currency present in offers.
func GroupOffers(offers []MarketOffer) Books {
	grouped := make(map[CurrencyID][]MarketOffer)
	for _, o := range offers {
		grouped[o.Currency] = append(grouped[o.Currency], o)
	}
	books := make(Books, len(grouped))
	for id, list := range grouped {
		books[id] = NewOfferBook(id, list)
	}
	return books
}

// IDs returns the currencies with a book, sorted.
func (bs Books) IDs() []CurrencyID {
	ids := make([]CurrencyID, 0, len(bs))
	for id := range bs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// All flattens every book back into offers, ordered by currency then side.
func (bs Books) All() []MarketOffer {
	var out []MarketOffer
	for _, id := range bs.IDs() {
		out = append(out, bs[id].All()...)
	}
	return out
}
