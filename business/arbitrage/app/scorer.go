package app

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	market "github.com/fd1az/eclesiar-analyzer/business/market/domain"
)

// Risk weights.
const (
	volatilityWeight = 0.4
	hopWeight        = 0.3
	illiquidWeight   = 0.3
)

// ScoringConfig holds the reference values scores are measured against.
type ScoringConfig struct {
	ReferenceVolume     float64 // GOLD at the top of the book for a full volume score
	DepthMultiple       float64 // whole-book depth = ReferenceVolume * DepthMultiple for full liquidity
	ReferenceOfferCount float64
	StaleAfter          time.Duration
	LegExecutionTime    time.Duration
}

// DefaultScoringConfig returns the reference values used when none are configured.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		ReferenceVolume:     1000,
		DepthMultiple:       5,
		ReferenceOfferCount: 100,
		StaleAfter:          10 * time.Minute,
		LegExecutionTime:    time.Minute,
	}
}

// Scorer attaches risk, confidence, volume and liquidity to opportunities.
type Scorer struct {
	config ScoringConfig
}

// NewScorer creates a scorer; zero fields fall back to DefaultScoringConfig.
func NewScorer(config ScoringConfig) *Scorer {
	def := DefaultScoringConfig()
	if config.ReferenceVolume <= 0 {
		config.ReferenceVolume = def.ReferenceVolume
	}
	if config.DepthMultiple <= 0 {
		config.DepthMultiple = def.DepthMultiple
	}
	if config.ReferenceOfferCount <= 0 {
		config.ReferenceOfferCount = def.ReferenceOfferCount
	}
	if config.StaleAfter <= 0 {
		config.StaleAfter = def.StaleAfter
	}
	if config.LegExecutionTime <= 0 {
		config.LegExecutionTime = def.LegExecutionTime
	}
	return &Scorer{config: config}
}

// Score returns copies of opps with scores and execution time set. The
// weakest currency of each path drives its scores.
func (s *Scorer) Score(opps []domain.Opportunity, view MarketView) []domain.Opportunity {
	out := make([]domain.Opportunity, len(opps))
	for i, opp := range opps {
		var vol float64
		var age time.Duration
		depth, offers := math.Inf(1), math.Inf(1)
		haveBooks := false
		for _, c := range opp.Currencies() {
			book, ok := view.Books[c]
			if ok {
				haveBooks = true
				depth = math.Min(depth, toFloat(book.DepthGold(market.Buy).Add(book.DepthGold(market.Sell))))
				offers = math.Min(offers, float64(book.Count()))
			}
			vol = math.Max(vol, Volatility(toFloats(view.History[c]), toFloats(book.Rates())))
			age = max(age, s.rateAge(view, c))
		}
		if !haveBooks {
			depth, offers = 0, 0
		}

		liquidity := LiquidityScore(depth, offers, s.config.ReferenceVolume*s.config.DepthMultiple, s.config.ReferenceOfferCount)
		volume := VolumeScore(toFloat(opp.MaxAmountGold), s.config.ReferenceVolume)

		opp.Scores = domain.Scores{
			Risk:       RiskScore(vol, opp.Kind, liquidity),
			Confidence: Confidence(volume, age, s.config.StaleAfter),
			Volume:     volume,
			Liquidity:  liquidity,
		}
		opp.ExecutionTime = ExecutionTime(opp.Kind, s.config.LegExecutionTime)
		out[i] = opp
	}
	return out
}

// rateAge is how old the currency's rate is at view.AsOf. A missing rate
// counts as fully stale.
func (s *Scorer) rateAge(view MarketView, c market.CurrencyID) time.Duration {
	r, ok := view.Rates.Get(c)
	if !ok || r.Timestamp.IsZero() {
		return 2 * s.config.StaleAfter
	}
	if view.AsOf.IsZero() || view.AsOf.Before(r.Timestamp) {
		return 0
	}
	return view.AsOf.Sub(r.Timestamp)
}

// Volatility is the coefficient of variation of the rate history, or of
// the current offer rates when there is not enough history, clamped to [0,1].
func Volatility(history, offerRates []float64) float64 {
	sample := history
	if len(sample) < 2 {
		sample = offerRates
	}
	if len(sample) < 2 {
		return 0
	}
	mean, std := stat.MeanStdDev(sample, nil)
	if mean <= 0 {
		return 0
	}
	return clamp(std / mean)
}

// RiskScore grows with volatility and hop count and falls with liquidity.
func RiskScore(volatility float64, kind domain.Kind, liquidity float64) float64 {
	return clamp(volatilityWeight*clamp(volatility) +
		hopWeight*kind.HopRisk() +
		illiquidWeight*(1-clamp(liquidity)))
}

// VolumeScore compares top-of-book GOLD with the reference volume.
func VolumeScore(topOfBookGold, referenceVolume float64) float64 {
	if referenceVolume <= 0 {
		return 0
	}
	return clamp(topOfBookGold / referenceVolume)
}

// LiquidityScore blends whole-book depth and offer count equally.
func LiquidityScore(depthGold, offers, referenceDepth, referenceOffers float64) float64 {
	var d, o float64
	if referenceDepth > 0 {
		d = clamp(depthGold / referenceDepth)
	}
	if referenceOffers > 0 {
		o = clamp(offers / referenceOffers)
	}
	return 0.5*d + 0.5*o
}

// Freshness is 1 up to staleAfter, then decays linearly to 0 at twice that.
func Freshness(age, staleAfter time.Duration) float64 {
	if staleAfter <= 0 || age <= staleAfter {
		return 1
	}
	return clamp(1 - float64(age-staleAfter)/float64(staleAfter))
}

// Confidence is halved by an empty book and scaled down by stale rates.
func Confidence(volume float64, age, staleAfter time.Duration) float64 {
	return clamp((0.5 + 0.5*clamp(volume)) * Freshness(age, staleAfter))
}

// ExecutionTime estimates how long running the cycle takes.
func ExecutionTime(kind domain.Kind, perLeg time.Duration) time.Duration {
	return time.Duration(kind.Tickets()) * perLeg
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func toFloats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = toFloat(d)
	}
	return out
}
