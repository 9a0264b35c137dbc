package app

import (
	"sort"

	"github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
)

// DefaultBaselineTier is the company tier regions are compared at.
const DefaultBaselineTier = 5

// Ranker ranks regions by what a uniform baseline company would produce
// there. Every call recomputes from the regions it is given.
type Ranker struct {
	calc *Calculator
	tier int
}

// NewRanker creates a ranker. A tier outside 1..5 means DefaultBaselineTier.
func NewRanker(calc *Calculator, baselineTier int) *Ranker {
	if baselineTier < 1 || baselineTier > domain.Qualities {
		baselineTier = DefaultBaselineTier
	}
	return &Ranker{calc: calc, tier: baselineTier}
}

// RankRegions returns the top regions for an item ordered by efficiency
// desc, then bonus score desc, then pollution asc, then region id asc.
// topN <= 0 returns every region. Zero regions yield an empty list.
func (r *Ranker) RankRegions(regions []domain.RegionProfile, item domain.ItemType, topN int) ([]domain.RankedRegion, error) {
	if !item.IsValid() {
		return nil, apperror.New(apperror.CodeUnknownItemType, apperror.WithContextf("item=%q", item))
	}

	bonuses := CountryBonuses(regions, item)
	baseline := domain.Baseline(item, r.tier)

	seen := make(map[int]struct{}, len(regions))
	rows := make([]domain.RankedRegion, 0, len(regions))
	for _, region := range regions {
		if _, dup := seen[region.RegionID]; dup {
			continue
		}
		seen[region.RegionID] = struct{}{}

		res, err := r.calc.Calculate(region, baseline, bonuses[region.CountryID].CountryBonusPct)
		if err != nil {
			return nil, err
		}
		rows = append(rows, domain.RankedRegion{BonusScore: region.BonusScore, Result: res})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.Result.Efficiency.Cmp(b.Result.Efficiency); c != 0 {
			return c > 0
		}
		if c := a.BonusScore.Cmp(b.BonusScore); c != 0 {
			return c > 0
		}
		if c := a.Result.Pollution.Cmp(b.Result.Pollution); c != 0 {
			return c < 0
		}
		return a.Result.RegionID < b.Result.RegionID
	})

	if topN > 0 && len(rows) > topN {
		rows = rows[:topN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

// RankAll ranks regions for every item type.
func (r *Ranker) RankAll(regions []domain.RegionProfile, topN int) (map[domain.ItemType][]domain.RankedRegion, error) {
	out := make(map[domain.ItemType][]domain.RankedRegion, len(domain.AllItems))
	for _, item := range domain.AllItems {
		rows, err := r.RankRegions(regions, item, topN)
		if err != nil {
			return nil, err
		}
		out[item] = rows
	}
	return out, nil
}
