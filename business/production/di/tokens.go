// Package di contains dependency injection tokens for the production context.
package di

import (
	"github.com/fd1az/eclesiar-analyzer/business/production/app"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Calculator = di.NewToken[*app.Calculator]("production.Calculator")
	Ranker     = di.NewToken[*app.Ranker]("production.Ranker")
)

func GetCalculator(c di.ServiceRegistry) *app.Calculator {
	return di.GetToken(c, Calculator)
}

func GetRanker(c di.ServiceRegistry) *app.Ranker {
	return di.GetToken(c, Ranker)
}
