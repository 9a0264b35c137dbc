package app

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/production/domain"
)

// CountryBonus sums the positive item bonuses over the distinct regions of
// one country and divides by five. Each region contributes the bonus
// RegionProfile.ItemBonus resolves for the item. A region listed twice
// counts once.
func CountryBonus(regions []domain.RegionProfile, countryID int, item domain.ItemType) domain.CountryBonusInfo {
	info := domain.CountryBonusInfo{
		CountryID:        countryID,
		BonusType:        item.BonusType(),
		TotalRegionalPct: decimal.Zero,
		CountryBonusPct:  decimal.Zero,
	}

	seen := make(map[int]struct{})
	for _, r := range regions {
		if r.CountryID != countryID {
			continue
		}
		if _, dup := seen[r.RegionID]; dup {
			continue
		}
		seen[r.RegionID] = struct{}{}
		if info.CountryName == "" {
			info.CountryName = r.CountryName
		}

		if _, v := r.ItemBonus(item); v.IsPositive() {
			info.TotalRegionalPct = info.TotalRegionalPct.Add(v)
			info.Regions++
		}
	}

	info.CountryBonusPct = info.TotalRegionalPct.Div(five)
	return info
}

// CountryBonuses returns CountryBonus for every country present in regions.
func CountryBonuses(regions []domain.RegionProfile, item domain.ItemType) map[int]domain.CountryBonusInfo {
	out := make(map[int]domain.CountryBonusInfo)
	for _, r := range regions {
		if _, done := out[r.CountryID]; done {
			continue
		}
		out[r.CountryID] = CountryBonus(regions, r.CountryID, item)
	}
	return out
}

// CountriesRanking lists every country by its bonus for the item, highest
// first, ties by country id.
func CountriesRanking(regions []domain.RegionProfile, item domain.ItemType) []domain.CountryBonusInfo {
	bonuses := CountryBonuses(regions, item)
	out := make([]domain.CountryBonusInfo, 0, len(bonuses))
	for _, info := range bonuses {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].CountryBonusPct.Cmp(out[j].CountryBonusPct); c != 0 {
			return c > 0
		}
		return out[i].CountryID < out[j].CountryID
	})
	return out
}
