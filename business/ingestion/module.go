// Package ingestion implements the ingestion bounded context: fetching
// snapshots from the game API and keeping them in SQLite.
package ingestion

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/fd1az/eclesiar-analyzer/business/ingestion/app"
	ingestionDI "github.com/fd1az/eclesiar-analyzer/business/ingestion/di"
	"github.com/fd1az/eclesiar-analyzer/business/ingestion/infra/eclesiar"
	"github.com/fd1az/eclesiar-analyzer/business/ingestion/infra/sqlite"
	"github.com/fd1az/eclesiar-analyzer/internal/config"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
	"github.com/fd1az/eclesiar-analyzer/internal/monolith"
)

// Module implements the ingestion bounded context.
type Module struct{}

// RegisterServices registers the API client, the snapshot source, the
// store and the collector.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, ingestionDI.Client, func(sr di.ServiceRegistry) *eclesiar.Client {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		client, err := eclesiar.NewClient(eclesiar.ClientConfig{
			BaseURL:        cfg.Eclesiar.BaseURL,
			APIKey:         cfg.Eclesiar.APIKey,
			AuthToken:      cfg.Eclesiar.AuthToken,
			Timeout:        cfg.Eclesiar.Timeout,
			MaxRetries:     cfg.Eclesiar.MaxRetries,
			RetryBackoff:   cfg.Eclesiar.RetryBackoff,
			CallsPerMinute: cfg.Eclesiar.MaxCallsPerMinute,
		}, log)
		if err != nil {
			panic("failed to create eclesiar client: " + err.Error())
		}
		return client
	})

	di.RegisterToken(c, ingestionDI.Source, func(sr di.ServiceRegistry) *eclesiar.Source {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return eclesiar.NewSource(ingestionDI.GetClient(sr), eclesiar.SourceConfig{
			MarketWorkers:   cfg.Eclesiar.WorkersMarket,
			RegionWorkers:   cfg.Eclesiar.WorkersRegions,
			CountriesTTL:    cfg.Eclesiar.CountriesTTL,
			NPCWageFallback: decimal.NewFromFloat(cfg.Eclesiar.NPCWageFallback),
		}, log)
	})

	// Public
	di.RegisterToken(c, ingestionDI.Store, func(sr di.ServiceRegistry) *sqlite.Store {
		return sqlite.NewStore(sr.Get("db").(*sql.DB))
	})

	di.RegisterToken(c, ingestionDI.Collector, func(sr di.ServiceRegistry) *app.Collector {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewCollector(ingestionDI.GetSource(sr), ingestionDI.GetStore(sr), log, cfg.Storage.HistorySize)
	})

	return nil
}

// Startup applies the store schema.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	version, err := ingestionDI.GetStore(mono.Services()).Migrate(ctx)
	if err != nil {
		return err
	}
	mono.Logger().Info(ctx, "ingestion module started",
		"schema_version", version,
		"db", mono.Config().Storage.Path,
		"api", mono.Config().Eclesiar.BaseURL)
	return nil
}
