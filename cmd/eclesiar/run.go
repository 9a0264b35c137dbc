package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	ingestionDI "github.com/fd1az/eclesiar-analyzer/business/ingestion/di"
	"github.com/fd1az/eclesiar-analyzer/business/report/app"
	reportDI "github.com/fd1az/eclesiar-analyzer/business/report/di"
	"github.com/fd1az/eclesiar-analyzer/internal/health"
	"github.com/fd1az/eclesiar-analyzer/internal/metrics"
	"github.com/fd1az/eclesiar-analyzer/pkg/ui"
)

const shutdownTimeout = 5 * time.Second

func newRunCommand() *cobra.Command {
	var cliMode bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll the API and analyse every interval",
		Long: `Run collects a snapshot, analyses it and reports the result every
report interval until interrupted. The dashboard is shown by default; --cli
prints reports and JSON logs instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runLoop(ctx, !cliMode)
		},
	}

	cmd.Flags().BoolVar(&cliMode, "cli", false, "Run in CLI mode with logs (no TUI)")
	return cmd
}

func runLoop(ctx context.Context, tuiMode bool) error {
	a, err := bootstrap(ctx, tuiMode)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.close(shutdownCtx); err != nil {
			a.log.Warn(shutdownCtx, "shutdown", "error", err)
		}
	}()

	a.log.Info(ctx, "starting eclesiar analyzer",
		"version", version,
		"environment", a.cfg.App.Environment,
		"tui", tuiMode)

	runner := reportDI.GetRunner(a.mono.Services())
	a.startServers(ctx, runner)

	if tuiMode {
		return runTUI(ctx, a, runner)
	}
	return runCLI(ctx, a, runner)
}

// startServers starts the optional metrics and health endpoints.
func (a *application) startServers(ctx context.Context, runner *app.Runner) {
	if a.cfg.Telemetry.Enabled && a.cfg.Telemetry.PrometheusPort > 0 {
		srv := metrics.NewServer(a.cfg.Telemetry.PrometheusPort, a.log)
		srv.Start()
		a.closers = append(a.closers, srv.Stop)
	}

	if a.cfg.Health.Enabled {
		store := ingestionDI.GetStore(a.mono.Services())
		srv := health.NewServer(a.cfg.Health.Port, version, a.log)
		srv.RegisterCheck("database", health.PingCheck(store.Ping))
		// two missed cycles plus slack before the service is reported stale
		srv.RegisterCheck("last_report", health.FreshnessCheck(3*a.cfg.Report.Interval, runner.LastRun))
		srv.Start()
		a.closers = append(a.closers, srv.Stop)
		a.log.Info(ctx, "health server started", "port", a.cfg.Health.Port)
	}
}

func runCLI(ctx context.Context, a *application, runner *app.Runner) error {
	if err := a.start(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "all modules started, beginning analysis", "interval", a.cfg.Report.Interval)

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start runner: %w", err)
	}

	<-ctx.Done()
	a.log.Info(context.Background(), "shutting down")

	if err := runner.Stop(); err != nil {
		a.log.Error(context.Background(), "error stopping runner", "error", err)
	}
	return nil
}

func runTUI(parent context.Context, a *application, runner *app.Runner) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	startSignal := make(chan struct{}, 1)
	ui.OnStartModules = func() {
		select {
		case startSignal <- struct{}{}:
		default:
		}
	}

	// The program starts right away so the welcome screen shows while
	// modules load in the background.
	p := tea.NewProgram(ui.New(), tea.WithAltScreen(), tea.WithContext(ctx))
	ui.Program = p

	errCh := make(chan error, 1)
	go func() {
		select {
		case <-startSignal:
		case <-ctx.Done():
			errCh <- nil
			return
		}

		ui.Send(ui.StartupMsg{Step: "config", Status: "connected"})
		if err := a.start(ctx); err != nil {
			ui.Send(ui.StartupMsg{Step: "database", Status: "failed"})
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}
		if err := runner.Start(ctx); err != nil {
			ui.Send(ui.ErrorMsg{Error: err})
			errCh <- err
			return
		}

		<-ctx.Done()
		errCh <- runner.Stop()
	}()

	_, runErr := p.Run()
	cancel()
	err := <-errCh
	// a signal kills the program; only report errors the user did not cause
	if runErr != nil && parent.Err() == nil {
		return fmt.Errorf("TUI error: %w", runErr)
	}
	return err
}
