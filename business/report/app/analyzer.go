package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	arbitrage "github.com/fd1az/eclesiar-analyzer/business/arbitrage/app"
	ingestion "github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	marketapp "github.com/fd1az/eclesiar-analyzer/business/market/app"
	production "github.com/fd1az/eclesiar-analyzer/business/production/app"
	productionDomain "github.com/fd1az/eclesiar-analyzer/business/production/domain"
	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apm"
)

const (
	metricOpportunities    = "eclesiar_opportunities_total"
	metricAnalysisDuration = "eclesiar_analysis_duration_ms"
)

// Analyzer runs the arbitrage and production core over one snapshot.
type Analyzer struct {
	arbitrage  *arbitrage.ArbitrageService
	ranker     *production.Ranker
	topRegions int
	tracer     apm.Tracer

	opportunities metric.Int64Counter
	duration      metric.Float64Histogram
	now           func() time.Time
}

// NewAnalyzer creates an analyzer recording on the global meter provider.
// topRegions <= 0 keeps every region in the rankings.
func NewAnalyzer(arb *arbitrage.ArbitrageService, ranker *production.Ranker, topRegions int) (*Analyzer, error) {
	meter := otel.GetMeterProvider().Meter("report")

	opps, err := meter.Int64Counter(metricOpportunities,
		metric.WithDescription("Arbitrage opportunities reported, by kind"))
	if err != nil {
		return nil, err
	}
	dur, err := meter.Float64Histogram(metricAnalysisDuration,
		metric.WithDescription("Time to analyse one snapshot"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	return &Analyzer{
		arbitrage:     arb,
		ranker:        ranker,
		topRegions:    topRegions,
		tracer:        apm.NewTracer("report"),
		opportunities: opps,
		duration:      dur,
		now:           time.Now,
	}, nil
}

// Analyze builds the report for one snapshot.
func (a *Analyzer) Analyze(ctx context.Context, snap *ingestion.Snapshot) (*domain.Report, error) {
	ctx, span := a.tracer.StartSpanFromContext(ctx, "report.analyze")
	defer span.End()

	start := a.now()

	outcome, err := a.arbitrage.Analyze(ctx, arbitrage.MarketView{
		Rates:   snap.Rates,
		Books:   snap.Books(),
		History: snap.History,
		AsOf:    snap.FetchedAt,
	})
	if err != nil {
		span.NoticeError(err)
		return nil, err
	}

	regions, err := a.ranker.RankAll(snap.Regions, a.topRegions)
	if err != nil {
		span.NoticeError(err)
		return nil, err
	}
	countries := make(map[productionDomain.ItemType][]productionDomain.CountryBonusInfo, len(productionDomain.AllItems))
	for _, item := range productionDomain.AllItems {
		countries[item] = production.CountriesRanking(snap.Regions, item)
	}

	report := &domain.Report{
		RunID:         uuid.New(),
		SnapshotID:    snap.ID,
		SnapshotAt:    snap.FetchedAt,
		GeneratedAt:   a.now().UTC(),
		Snapshot:      snap.Stats(),
		Detected:      outcome.Detected,
		Opportunities: outcome.Opportunities,
		Regions:       regions,
		Countries:     countries,
	}
	if hi, lo, ok := marketapp.NewConverter(snap.Rates).Extremes(); ok {
		report.Extremes = &domain.Extremes{Highest: hi, Lowest: lo}
	}
	report.Duration = a.now().Sub(start)

	for _, opp := range report.Opportunities {
		a.opportunities.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(opp.Kind))))
	}
	a.duration.Record(ctx, float64(report.Duration.Milliseconds()))

	span.SetAttributes(
		attribute.String("run.id", report.RunID.String()),
		attribute.Int("arbitrage.detected", report.Detected),
		attribute.Int("arbitrage.reported", len(report.Opportunities)),
		attribute.Int("production.regions_ranked", report.RegionsRanked()),
	)
	return report, nil
}
