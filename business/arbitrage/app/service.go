package app

import (
	"context"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
)

// Outcome is the result of one arbitrage pass.
type Outcome struct {
	Detected      int                  // cycles above the profit cutoff
	Opportunities []domain.Opportunity // scored and ranked
}

// ArbitrageService runs detection, scoring and ranking in order.
type ArbitrageService struct {
	detector *Detector
	scorer   *Scorer
	rank     RankConfig
}

// NewArbitrageService creates a new ArbitrageService.
func NewArbitrageService(detector *Detector, scorer *Scorer, rank RankConfig) *ArbitrageService {
	return &ArbitrageService{detector: detector, scorer: scorer, rank: rank}
}

// Analyze returns the ranked opportunities for one market view.
func (s *ArbitrageService) Analyze(ctx context.Context, view MarketView) (Outcome, error) {
	found, err := s.detector.Detect(ctx, view)
	if err != nil {
		return Outcome{}, err
	}
	scored := s.scorer.Score(found, view)
	return Outcome{Detected: len(found), Opportunities: Rank(scored, s.rank)}, nil
}
