package domain

import (
	"testing"

	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
)

func path(ids ...string) []market.CurrencyID {
	out := make([]market.CurrencyID, len(ids))
	for i, id := range ids {
		out[i] = market.CurrencyID(id)
	}
	return out
}

func TestOpportunity_PathHelpers(t *testing.T) {
	tests := []struct {
		name       string
		opp        Opportunity
		wantFrom   market.CurrencyID
		wantTo     market.CurrencyID
		wantString string
		wantCurr   int
	}{
		{"simple", Opportunity{Kind: KindSimple, Path: path("GOLD", "USD")}, "GOLD", "USD", "GOLD -> USD", 1},
		{"cross", Opportunity{Kind: KindCross, Path: path("PLN", "GOLD", "USD")}, "PLN", "USD", "PLN -> GOLD -> USD", 2},
		{"triangular", Opportunity{Kind: KindTriangular, Path: path("EUR", "PLN", "USD", "EUR")}, "EUR", "PLN", "EUR -> PLN -> USD -> EUR", 3},
		{"empty", Opportunity{}, "", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opp.From(); got != tt.wantFrom {
				t.Errorf("From = %s", got)
			}
			if got := tt.opp.To(); got != tt.wantTo {
				t.Errorf("To = %s", got)
			}
			if got := tt.opp.PathString(); got != tt.wantString {
				t.Errorf("PathString = %q", got)
			}
			if got := len(tt.opp.Currencies()); got != tt.wantCurr {
				t.Errorf("Currencies = %d, want %d", got, tt.wantCurr)
			}
		})
	}
}

func TestComparePaths(t *testing.T) {
	tests := []struct {
		a, b []market.CurrencyID
		want int // sign only
	}{
		{path("GOLD", "PLN"), path("GOLD", "USD"), -1},
		{path("GOLD", "USD"), path("GOLD", "USD"), 0},
		{path("USD", "GOLD", "PLN"), path("PLN", "GOLD", "USD"), 1},
		{path("A", "B"), path("A", "B", "C"), -1},
	}

	for _, tt := range tests {
		got := ComparePaths(tt.a, tt.b)
		if (got < 0) != (tt.want < 0) || (got > 0) != (tt.want > 0) {
			t.Errorf("ComparePaths(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	if KindSimple.Tickets() != 2 || KindCross.Tickets() != 3 || KindTriangular.Tickets() != 3 {
		t.Error("ticket counts")
	}
	if !(KindSimple.HopRisk() < KindCross.HopRisk() && KindCross.HopRisk() < KindTriangular.HopRisk()) {
		t.Error("hop risk must grow with hops")
	}
}
