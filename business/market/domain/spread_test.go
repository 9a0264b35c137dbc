package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCalculateSpread(t *testing.T) {
	tests := []struct {
		name          string
		buyRate       string
		sellRate      string
		wantAbsolute  string
		wantPercent   string
		wantDirection SpreadDirection
	}{
		{
			name:          "flat_book",
			buyRate:       "0.143",
			sellRate:      "0.143",
			wantAbsolute:  "0",
			wantPercent:   "0",
			wantDirection: SpreadFlat,
		},
		{
			name:          "crossed_usd_example",
			buyRate:       "0.140",
			sellRate:      "0.150",
			wantAbsolute:  "0.01",
			wantPercent:   "7.1429", // 0.01/0.14
			wantDirection: SpreadCrossed,
		},
		{
			name:          "normal_book",
			buyRate:       "0.251",
			sellRate:      "0.249",
			wantAbsolute:  "-0.002",
			wantPercent:   "-0.7968",
			wantDirection: SpreadNormal,
		},
		{
			name:          "zero_buy_rate_no_panic",
			buyRate:       "0",
			sellRate:      "0.1",
			wantAbsolute:  "0.1",
			wantPercent:   "0",
			wantDirection: SpreadCrossed,
		},
		{
			name:          "tiny_rates",
			buyRate:       "0.0001",
			sellRate:      "0.000101",
			wantAbsolute:  "0.000001",
			wantPercent:   "1",
			wantDirection: SpreadCrossed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buy := decimal.RequireFromString(tt.buyRate)
			sell := decimal.RequireFromString(tt.sellRate)

			spread := CalculateSpread(buy, sell)

			if !spread.BuyRate.Equal(buy) || !spread.SellRate.Equal(sell) {
				t.Errorf("rates not stored: %s/%s", spread.BuyRate, spread.SellRate)
			}

			wantAbsolute := decimal.RequireFromString(tt.wantAbsolute)
			if !spread.Absolute.Equal(wantAbsolute) {
				t.Errorf("Absolute = %s, want %s", spread.Absolute, wantAbsolute)
			}

			wantPercent := decimal.RequireFromString(tt.wantPercent)
			if got := spread.Percent().Round(4); !got.Equal(wantPercent) {
				t.Errorf("Percent = %s, want %s", got, wantPercent)
			}

			if spread.Direction != tt.wantDirection {
				t.Errorf("Direction = %v, want %v", spread.Direction, tt.wantDirection)
			}
		})
	}
}
