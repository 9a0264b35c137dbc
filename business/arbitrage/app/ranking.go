package app

import (
	"sort"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
)

// RankConfig holds the final cut applied after scoring.
type RankConfig struct {
	ConfidenceThreshold float64
	RiskThreshold       float64
	Top                 int // <= 0 keeps everything
}

// Rank drops opportunities that are too uncertain or too risky, orders the
// rest by net profit desc, risk asc, path asc, and keeps the top ones.
func Rank(opps []domain.Opportunity, cfg RankConfig) []domain.Opportunity {
	kept := make([]domain.Opportunity, 0, len(opps))
	for _, o := range opps {
		if o.Scores.Confidence < cfg.ConfidenceThreshold || o.Scores.Risk > cfg.RiskThreshold {
			continue
		}
		kept = append(kept, o)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i], kept[j]
		if c := a.Profit.NetPct.Cmp(b.Profit.NetPct); c != 0 {
			return c > 0
		}
		if a.Scores.Risk != b.Scores.Risk {
			return a.Scores.Risk < b.Scores.Risk
		}
		return domain.ComparePaths(a.Path, b.Path) < 0
	})

	if cfg.Top > 0 && len(kept) > cfg.Top {
		kept = kept[:cfg.Top]
	}
	return kept
}
