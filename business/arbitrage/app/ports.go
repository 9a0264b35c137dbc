package app

import (
	"time"

	"github.com/shopspring/decimal"

	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
)

// MarketView is the read-only market state one analysis pass runs over.
// History holds past GOLD rates per currency, oldest first.
type MarketView struct {
	Rates   market.RateTable
	Books   market.Books
	History map[market.CurrencyID][]decimal.Decimal
	AsOf    time.Time
}
