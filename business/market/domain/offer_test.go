package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func offer(c CurrencyID, t TransactionType, rate, amount string) MarketOffer {
	return MarketOffer{
		Currency: c,
		Type:     t,
		Rate:     decimal.RequireFromString(rate),
		Amount:   decimal.RequireFromString(amount),
	}
}

func TestNewOfferBook_SortsBestFirst(t *testing.T) {
	book := NewOfferBook("USD", []MarketOffer{
		offer("USD", Buy, "0.150", "10"),
		offer("USD", Buy, "0.140", "100"),
		offer("USD", Sell, "0.130", "5"),
		offer("USD", Sell, "0.145", "20"),
		offer("PLN", Buy, "0.001", "1"), // other currency, ignored
	})

	best, ok := book.Best(Buy)
	if !ok || !best.Rate.Equal(decimal.RequireFromString("0.140")) {
		t.Errorf("best buy = %s, want lowest 0.140", best.Rate)
	}
	best, ok = book.Best(Sell)
	if !ok || !best.Rate.Equal(decimal.RequireFromString("0.145")) {
		t.Errorf("best sell = %s, want highest 0.145", best.Rate)
	}
	if book.Count() != 4 {
		t.Errorf("Count = %d, want 4", book.Count())
	}
	if !book.HasBothSides() {
		t.Error("HasBothSides = false")
	}
}

func TestOfferBook_Depth(t *testing.T) {
	book := NewOfferBook("USD", []MarketOffer{
		offer("USD", Buy, "0.1", "100"),
		offer("USD", Buy, "0.1", "50"),
		offer("USD", Buy, "0.2", "10"),
	})

	tests := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"top_of_book_sums_equal_rates", book.TopDepthGold(Buy), "15"},
		{"whole_side", book.DepthGold(Buy), "17"},
		{"empty_side", book.DepthGold(Sell), "0"},
		{"empty_side_top", book.TopDepthGold(Sell), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestOfferBook_EmptyBook(t *testing.T) {
	book := NewOfferBook("XYZ", nil)
	if _, ok := book.Best(Buy); ok {
		t.Error("empty book should have no best buy")
	}
	if book.HasBothSides() {
		t.Error("empty book cannot have both sides")
	}
	if len(book.Rates()) != 0 {
		t.Error("empty book should have no rates")
	}
}

func TestGroupOffers(t *testing.T) {
	books := GroupOffers([]MarketOffer{
		offer("PLN", Buy, "0.25", "1"),
		offer("USD", Sell, "0.14", "1"),
		offer("PLN", Sell, "0.24", "1"),
	})

	ids := books.IDs()
	if len(ids) != 2 || ids[0] != "PLN" || ids[1] != "USD" {
		t.Fatalf("IDs = %v", ids)
	}
	if books["PLN"].Count() != 2 {
		t.Errorf("PLN count = %d", books["PLN"].Count())
	}
	if len(books.All()) != 3 {
		t.Errorf("All len = %d", len(books.All()))
	}
}
