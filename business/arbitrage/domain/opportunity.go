package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
)

// Scores are the heuristic [0,1] ratings attached after detection.
type Scores struct {
	Risk       float64
	Confidence float64
	Volume     float64
	Liquidity  float64
}

// Opportunity is one detected arbitrage cycle. It is a value: every
// analysis run builds a fresh set.
type Opportunity struct {
	Kind   Kind
	Path   []market.CurrencyID // [GOLD,C], [A,GOLD,B] or [A,B,C,A]
	Profit ProfitResult

	TicketCostGold decimal.Decimal // total for the cycle
	BuyRate        decimal.Decimal // rate paid to acquire the currency
	SellRate       decimal.Decimal // rate received when disposing of it

	MaxAmountGold       decimal.Decimal // smallest top-of-book depth across legs
	EstimatedProfitGold decimal.Decimal // at MaxAmountGold, after tickets

	Scores        Scores
	ExecutionTime time.Duration
}

// From returns the first currency of the path.
func (o Opportunity) From() market.CurrencyID {
	if len(o.Path) == 0 {
		return ""
	}
	return o.Path[0]
}

// To returns the currency the cycle moves into: the traded currency for
// SIMPLE, B for CROSS and the first hop for TRIANGULAR.
func (o Opportunity) To() market.CurrencyID {
	if len(o.Path) == 0 {
		return ""
	}
	if o.Kind == KindTriangular && len(o.Path) > 1 {
		return o.Path[1]
	}
	return o.Path[len(o.Path)-1]
}

// PathString renders the path as "A -> B -> C".
func (o Opportunity) PathString() string {
	parts := make([]string, len(o.Path))
	for i, c := range o.Path {
		parts[i] = string(c)
	}
	return strings.Join(parts, " -> ")
}

// Currencies returns the distinct non-GOLD currencies of the path in order.
func (o Opportunity) Currencies() []market.CurrencyID {
	seen := make(map[market.CurrencyID]bool, len(o.Path))
	var out []market.CurrencyID
	for _, c := range o.Path {
		if c.IsGold() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// ComparePaths orders paths lexicographically element by element, shorter
// first on a common prefix.
func ComparePaths(a, b []market.CurrencyID) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := strings.Compare(string(a[i]), string(b[i])); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}
