// Package production implements the production bounded context: the
// production formula and region rankings.
package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/production/app"
	productionDI "github.com/fd1az/eclesiar-analyzer/business/production/di"
	"github.com/fd1az/eclesiar-analyzer/internal/config"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
	"github.com/fd1az/eclesiar-analyzer/internal/monolith"
)

// Module implements the production bounded context.
type Module struct{}

// RegisterServices registers the calculator and the ranker.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, productionDI.Calculator, func(sr di.ServiceRegistry) *app.Calculator {
		cfg := sr.Get("config").(*config.Config)
		return app.NewCalculator(decimal.NewFromFloat(cfg.Eclesiar.NPCWageFallback))
	})

	di.RegisterToken(c, productionDI.Ranker, func(sr di.ServiceRegistry) *app.Ranker {
		cfg := sr.Get("config").(*config.Config)
		return app.NewRanker(productionDI.GetCalculator(sr), cfg.Production.BaselineTier)
	})

	return nil
}

// Startup initializes the production module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "production module started",
		"baseline_tier", mono.Config().Production.BaselineTier)
	return nil
}
