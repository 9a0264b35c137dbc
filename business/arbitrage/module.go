// Package arbitrage implements the arbitrage bounded context: detection,
// scoring and ranking of currency cycles.
package arbitrage

import (
	"context"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/app"
	arbitrageDI "github.com/fd1az/eclesiar-analyzer/business/arbitrage/di"
	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/config"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
	"github.com/fd1az/eclesiar-analyzer/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbitrageDI.ProfitCalculator, func(sr di.ServiceRegistry) *app.ProfitCalculator {
		cfg := sr.Get("config").(*config.Config)
		tickets := domain.NewTicketCost(cfg.Arbitrage.TicketCostDecimal(), cfg.Arbitrage.ReferenceTradeDecimal())
		return app.NewProfitCalculator(tickets, cfg.Arbitrage.MinProfitDecimal(), cfg.Arbitrage.CrossMinProfitDecimal())
	})

	di.RegisterToken(c, arbitrageDI.Detector, func(sr di.ServiceRegistry) *app.Detector {
		cfg := sr.Get("config").(*config.Config)
		return app.NewDetector(arbitrageDI.GetProfitCalculator(sr), app.DetectorConfig{
			CrossEnabled:      cfg.Arbitrage.CrossEnabled,
			IncludeTriangular: cfg.Arbitrage.IncludeTriangular,
			MinSpread:         cfg.Arbitrage.MinSpreadDecimal(),
			Workers:           cfg.Arbitrage.TriangularWorkers,
		})
	})

	di.RegisterToken(c, arbitrageDI.Scorer, func(sr di.ServiceRegistry) *app.Scorer {
		cfg := sr.Get("config").(*config.Config)
		return app.NewScorer(app.ScoringConfig{
			ReferenceVolume:  cfg.Arbitrage.ReferenceVolume,
			StaleAfter:       cfg.Arbitrage.StaleAfter,
			LegExecutionTime: cfg.Arbitrage.LegExecutionTime,
		})
	})

	// Public
	di.RegisterToken(c, arbitrageDI.ArbitrageService, func(sr di.ServiceRegistry) *app.ArbitrageService {
		cfg := sr.Get("config").(*config.Config)
		return app.NewArbitrageService(arbitrageDI.GetDetector(sr), arbitrageDI.GetScorer(sr), app.RankConfig{
			ConfidenceThreshold: cfg.Arbitrage.ConfidenceThreshold,
			RiskThreshold:       cfg.Arbitrage.RiskThreshold,
			Top:                 cfg.Report.TopOpportunities,
		})
	})

	return nil
}

// Startup logs the active thresholds. The context has nothing to connect.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config().Arbitrage
	mono.Logger().Info(ctx, "arbitrage module started",
		"ticket_cost_gold", cfg.TicketCostGold,
		"min_profit_pct", cfg.MinProfitThreshold,
		"cross_enabled", cfg.CrossEnabled,
		"triangular", cfg.IncludeTriangular)
	return nil
}
