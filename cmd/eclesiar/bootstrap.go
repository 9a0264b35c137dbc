package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fd1az/eclesiar-analyzer/business/arbitrage"
	"github.com/fd1az/eclesiar-analyzer/business/ingestion"
	"github.com/fd1az/eclesiar-analyzer/business/production"
	"github.com/fd1az/eclesiar-analyzer/business/report"
	"github.com/fd1az/eclesiar-analyzer/internal/apm"
	"github.com/fd1az/eclesiar-analyzer/internal/config"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
	"github.com/fd1az/eclesiar-analyzer/internal/metrics"
	"github.com/fd1az/eclesiar-analyzer/internal/monolith"
)

// application is a configured monolith with its modules registered but
// not started.
type application struct {
	cfg     *config.Config
	log     *logger.Logger
	mono    *monolith.App
	modules []monolith.Module
	closers []func(context.Context) error
}

func bootstrap(ctx context.Context, tuiMode bool) (*application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	cfg.App.TUIMode = tuiMode

	out := io.Writer(os.Stderr)
	if tuiMode {
		out = io.Discard
	}
	log := logger.New(out, logger.ParseLevel(cfg.App.LogLevel), cfg.App.Name, nil)

	app := &application{cfg: cfg, log: log}

	traceProvider, err := apm.NewTraceProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	app.closers = append(app.closers, func(context.Context) error { return traceProvider.Stop() })

	meterProvider, err := metrics.NewMetricProvider(ctx, cfg.Telemetry)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("failed to set up metrics: %w", err)
	}
	app.closers = append(app.closers, meterProvider.Shutdown)

	mono, err := monolith.New(ctx, cfg, log)
	if err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("failed to create monolith: %w", err)
	}
	app.mono = mono
	app.closers = append(app.closers, func(context.Context) error { return mono.Close() })

	// Dependency order: report resolves services of the other three.
	app.modules = []monolith.Module{
		&production.Module{},
		&arbitrage.Module{},
		&ingestion.Module{},
		&report.Module{},
	}
	if err := mono.RegisterModules(app.modules...); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("failed to register modules: %w", err)
	}

	return app, nil
}

func (a *application) start(ctx context.Context) error {
	if err := a.mono.StartModules(ctx, a.modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}
	return nil
}

// close releases resources in reverse order of acquisition.
func (a *application) close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
