package app

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/market/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

func rate(id domain.CurrencyID, v string) domain.CurrencyRate {
	return domain.CurrencyRate{Currency: id, GoldPerUnit: decimal.RequireFromString(v), Timestamp: time.Unix(0, 0)}
}

func exampleTable() domain.RateTable {
	return domain.NewRateTable(
		rate(domain.Gold, "1.0"),
		rate("USD", "0.143"),
		rate("PLN", "0.251"),
		rate("BAD", "0"),
	)
}

func TestConverter_RateToGold(t *testing.T) {
	c := NewConverter(exampleTable())

	tests := []struct {
		name     string
		id       domain.CurrencyID
		want     string
		wantCode apperror.Code
	}{
		{"gold_is_one", domain.Gold, "1", ""},
		{"usd", "USD", "0.143", ""},
		{"unknown", "XYZ", "", apperror.CodeUnknownCurrency},
		{"zero_rate", "BAD", "", apperror.CodeInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.RateToGold(tt.id)
			if tt.wantCode != "" {
				if !apperror.HasCode(err, tt.wantCode) {
					t.Fatalf("err = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConverter_GoldImplicitWhenMissing(t *testing.T) {
	c := NewConverter(domain.NewRateTable(rate("USD", "0.5")))
	got, err := c.ToGold(decimal.NewFromInt(10), "USD")
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(decimal.NewFromInt(5)) {
		t.Errorf("ToGold = %s, want 5", got)
	}
}

func TestConverter_Convert(t *testing.T) {
	c := NewConverter(exampleTable())

	got, err := c.Convert(decimal.NewFromInt(100), "USD", "PLN")
	if err != nil {
		t.Fatal(err)
	}
	// 100 * 0.143 / 0.251
	want := decimal.RequireFromString("56.9721")
	if !got.Round(4).Equal(want) {
		t.Errorf("Convert = %s, want %s", got.Round(4), want)
	}

	if _, err := c.Convert(decimal.NewFromInt(1), "USD", "XYZ"); !apperror.HasCode(err, apperror.CodeUnknownCurrency) {
		t.Errorf("missing target: err = %v", err)
	}
	if _, err := c.Convert(decimal.NewFromInt(1), "BAD", "USD"); !apperror.HasCode(err, apperror.CodeInvalidRate) {
		t.Errorf("corrupt source: err = %v", err)
	}
}

func TestConverter_RoundTrip(t *testing.T) {
	c := NewConverter(exampleTable())
	tolerance := decimal.RequireFromString("0.0000000001")

	pairs := [][2]domain.CurrencyID{{"USD", "PLN"}, {"PLN", domain.Gold}, {domain.Gold, "USD"}}
	amounts := []string{"0.01", "1", "123.456", "1000000"}

	for _, p := range pairs {
		for _, a := range amounts {
			x := decimal.RequireFromString(a)
			there, err := c.Convert(x, p[0], p[1])
			if err != nil {
				t.Fatal(err)
			}
			back, err := c.Convert(there, p[1], p[0])
			if err != nil {
				t.Fatal(err)
			}
			if back.Sub(x).Abs().GreaterThan(tolerance.Mul(x.Abs().Add(decimal.NewFromInt(1)))) {
				t.Errorf("%s %s->%s->%s = %s", a, p[0], p[1], p[0], back)
			}
		}
	}
}

func TestConverter_Extremes(t *testing.T) {
	c := NewConverter(exampleTable())
	hi, lo, ok := c.Extremes()
	if !ok {
		t.Fatal("expected extremes")
	}
	if hi.Currency != "PLN" || lo.Currency != "USD" {
		t.Errorf("extremes = %s/%s, want PLN/USD", hi.Currency, lo.Currency)
	}

	if _, _, ok := NewConverter(domain.NewRateTable(rate(domain.Gold, "1"))).Extremes(); ok {
		t.Error("gold-only table has no extremes")
	}
}
