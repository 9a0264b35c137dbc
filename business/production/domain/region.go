package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

var hundred = decimal.NewFromInt(100)

// RegionProfile is the production-relevant state of one region taken from
// a snapshot. Bonus values are percentages (20 means +20%).
type RegionProfile struct {
	RegionID         int
	Name             string
	CountryID        int
	CountryName      string
	Pollution        decimal.Decimal // 0..100
	BonusScore       decimal.Decimal
	BonusByType      map[BonusType]decimal.Decimal
	BonusDescription string
	Population       int
	NPCWageGold      decimal.Decimal
}

// Validate rejects profiles whose pollution or bonuses are out of range.
func (r RegionProfile) Validate() error {
	if r.Pollution.IsNegative() || r.Pollution.GreaterThan(hundred) {
		return apperror.New(apperror.CodeInvalidParameter,
			apperror.WithContextf("region=%d pollution=%s", r.RegionID, r.Pollution))
	}
	for bt, v := range r.BonusByType {
		if v.IsNegative() {
			return apperror.New(apperror.CodeInvalidParameter,
				apperror.WithContextf("region=%d bonus %s=%s", r.RegionID, bt, v))
		}
	}
	return nil
}

// BonusPct returns the region's bonus percentage for a bonus type.
func (r RegionProfile) BonusPct(bt BonusType) decimal.Decimal {
	if v, ok := r.BonusByType[bt]; ok {
		return v
	}
	return decimal.Zero
}

// ItemBonus resolves the bonus that applies to an item: the first of the
// item's BonusTypes the region carries. With none present it is the item's
// own type at zero.
func (r RegionProfile) ItemBonus(item ItemType) (BonusType, decimal.Decimal) {
	for _, bt := range item.BonusTypes() {
		if v, ok := r.BonusByType[bt]; ok {
			return bt, v
		}
	}
	return item.BonusType(), decimal.Zero
}

// BonusTypes returns the bonus types present in the region, sorted.
func (r RegionProfile) BonusTypes() []BonusType {
	out := make([]BonusType, 0, len(r.BonusByType))
	for bt := range r.BonusByType {
		out = append(out, bt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseBonusDescription parses the game's bonus text, e.g.
// "WEAPONS:20 TICKETS:15". Malformed parts are skipped; a repeated type
// keeps the last value.
func ParseBonusDescription(s string) map[BonusType]decimal.Decimal {
	out := make(map[BonusType]decimal.Decimal)
	for _, part := range strings.Fields(s) {
		name, value, ok := strings.Cut(part, ":")
		if !ok || name == "" {
			continue
		}
		v, err := decimal.NewFromString(value)
		if err != nil {
			continue
		}
		out[ParseBonusType(name)] = v
	}
	return out
}

var bonusAliases = map[BonusType]BonusType{
	"WEAPON": BonusWeapons,
	"TICKET": BonusTickets,
}

// ParseBonusType normalises a bonus name: upper case, singular names folded
// into the game's plural ones.
func ParseBonusType(s string) BonusType {
	bt := BonusType(strings.ToUpper(strings.TrimSpace(s)))
	if alias, ok := bonusAliases[bt]; ok {
		return alias
	}
	return bt
}

// FormatBonusDescription is the inverse of ParseBonusDescription with types
// in sorted order.
func FormatBonusDescription(bonuses map[BonusType]decimal.Decimal) string {
	keys := make([]string, 0, len(bonuses))
	for bt := range bonuses {
		keys = append(keys, string(bt))
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+bonuses[BonusType(k)].String())
	}
	return strings.Join(parts, " ")
}
