// Package report implements the report bounded context: the analysis
// cycle, its scheduling and the report sinks.
package report

import (
	"context"

	arbitrageDI "github.com/fd1az/eclesiar-analyzer/business/arbitrage/di"
	ingestionDI "github.com/fd1az/eclesiar-analyzer/business/ingestion/di"
	productionDI "github.com/fd1az/eclesiar-analyzer/business/production/di"
	"github.com/fd1az/eclesiar-analyzer/business/report/app"
	reportDI "github.com/fd1az/eclesiar-analyzer/business/report/di"
	"github.com/fd1az/eclesiar-analyzer/business/report/infra"
	"github.com/fd1az/eclesiar-analyzer/internal/config"
	"github.com/fd1az/eclesiar-analyzer/internal/di"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
	"github.com/fd1az/eclesiar-analyzer/internal/monolith"
)

// Module implements the report bounded context.
type Module struct{}

// RegisterServices registers the analyzer, the sinks and the runner. The
// runner depends on the arbitrage, production and ingestion modules.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, reportDI.FileExporter, func(sr di.ServiceRegistry) *infra.FileExporter {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		exporter, err := infra.NewFileExporter(cfg.Report.ExportDirectory, cfg.Report.ExportFormats, log)
		if err != nil {
			panic("failed to create file exporter: " + err.Error())
		}
		return exporter
	})

	di.RegisterToken(c, reportDI.Reporters, func(sr di.ServiceRegistry) []app.Reporter {
		cfg := sr.Get("config").(*config.Config)
		var screen app.Reporter
		if cfg.App.TUIMode {
			screen = infra.NewTUIReporter()
		} else {
			screen = infra.NewConsoleReporter(false)
		}
		return []app.Reporter{screen, reportDI.GetFileExporter(sr)}
	})

	// Public
	di.RegisterToken(c, reportDI.Analyzer, func(sr di.ServiceRegistry) *app.Analyzer {
		cfg := sr.Get("config").(*config.Config)
		analyzer, err := app.NewAnalyzer(
			arbitrageDI.GetArbitrageService(sr),
			productionDI.GetRanker(sr),
			cfg.Production.TopRegions,
		)
		if err != nil {
			panic("failed to create analyzer: " + err.Error())
		}
		return analyzer
	})

	di.RegisterToken(c, reportDI.Runner, func(sr di.ServiceRegistry) *app.Runner {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewRunner(
			ingestionDI.GetCollector(sr),
			reportDI.GetAnalyzer(sr),
			ingestionDI.GetStore(sr),
			cfg.Report.Interval,
			log,
			reportDI.GetReporters(sr)...,
		)
	})

	return nil
}

// Startup logs the schedule. The runner is started by the command that
// needs it.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config().Report
	mono.Logger().Info(ctx, "report module started",
		"interval", cfg.Interval,
		"formats", cfg.ExportFormats,
		"export_dir", cfg.ExportDirectory,
		"tui", mono.Config().App.TUIMode)
	return nil
}
