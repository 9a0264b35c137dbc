// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/fd1az/eclesiar-analyzer/business/arbitrage/app"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ArbitrageService = di.NewToken[*app.ArbitrageService]("arbitrage.ArbitrageService")
)

// Private dependency tokens - internal to arbitrage module
var (
	ProfitCalculator = di.NewToken[*app.ProfitCalculator]("arbitrage:profitCalculator")
	Detector         = di.NewToken[*app.Detector]("arbitrage:detector")
	Scorer           = di.NewToken[*app.Scorer]("arbitrage:scorer")
)

// Helper functions for type-safe access
func GetArbitrageService(c di.ServiceRegistry) *app.ArbitrageService {
	return di.GetToken(c, ArbitrageService)
}

func GetProfitCalculator(c di.ServiceRegistry) *app.ProfitCalculator {
	return di.GetToken(c, ProfitCalculator)
}

func GetDetector(c di.ServiceRegistry) *app.Detector {
	return di.GetToken(c, Detector)
}

func GetScorer(c di.ServiceRegistry) *app.Scorer {
	return di.GetToken(c, Scorer)
}
