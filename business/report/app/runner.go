package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fd1az/eclesiar-analyzer/business/report/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
)

// Runner drives the collect, analyse and report cycle on an interval.
type Runner struct {
	collector SnapshotCollector
	analyzer  SnapshotAnalyzer
	store     SummaryStore
	reporters []Reporter
	interval  time.Duration
	logger    logger.LoggerInterface

	mu      sync.Mutex
	cycle   int
	lastRun time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewRunner creates a runner. A nil store skips summary persistence.
func NewRunner(
	collector SnapshotCollector,
	analyzer SnapshotAnalyzer,
	store SummaryStore,
	interval time.Duration,
	log logger.LoggerInterface,
	reporters ...Reporter,
) *Runner {
	return &Runner{
		collector: collector,
		analyzer:  analyzer,
		store:     store,
		reporters: reporters,
		interval:  interval,
		logger:    log,
	}
}

// Start starts the reporters and runs a cycle now and then every interval
// until Stop or ctx is cancelled. The runner is claimed before the
// reporters start, so of concurrent calls only one succeeds.
func (r *Runner) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	r.mu.Lock()
	if r.cancel != nil {
		r.mu.Unlock()
		cancel()
		return apperror.New(apperror.CodeInvalidParameter, apperror.WithContext("runner already started"))
	}
	r.cancel, r.done = cancel, done
	r.mu.Unlock()

	if err := r.startReporters(ctx); err != nil {
		r.mu.Lock()
		if r.done == done {
			r.cancel, r.done = nil, nil
		}
		r.mu.Unlock()
		cancel()
		close(done)
		return err
	}

	r.logger.Info(ctx, "starting report runner", "interval", r.interval.String(), "reporters", len(r.reporters))
	go r.run(ctx, done)
	return nil
}

func (r *Runner) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		if _, err := r.RunOnce(ctx); err != nil && ctx.Err() == nil {
			r.logger.Error(ctx, "report cycle failed", apperror.Wrap(err, apperror.CodeInternalError, "report cycle").LogAttrs()...)
		}
		select {
		case <-ctx.Done():
			r.logger.Info(ctx, "runner stopping", "reason", ctx.Err())
			return
		case <-ticker.C:
		}
	}
}

// RunOnce performs one cycle: collect, analyse, hand the report to every
// reporter and store its summary. Reporter and store failures are logged
// and do not fail the cycle.
func (r *Runner) RunOnce(ctx context.Context) (*domain.Report, error) {
	r.mu.Lock()
	r.cycle++
	cycle := r.cycle
	r.mu.Unlock()

	r.status(ctx, Status{Phase: PhaseCollecting, Cycle: cycle})
	snap, err := r.collector.Collect(ctx)
	if err != nil {
		r.status(ctx, Status{Phase: PhaseFailed, Cycle: cycle, Err: err})
		return nil, err
	}

	r.status(ctx, Status{Phase: PhaseAnalyzing, Cycle: cycle})
	report, err := r.analyzer.Analyze(ctx, snap)
	if err != nil {
		r.status(ctx, Status{Phase: PhaseFailed, Cycle: cycle, Err: err})
		return nil, err
	}

	for _, rep := range r.reporters {
		if err := rep.Report(ctx, report); err != nil {
			r.logger.Error(ctx, "reporter failed", apperror.Wrap(err, apperror.CodeExportFailed, "report").LogAttrs()...)
		}
	}

	if r.store != nil {
		if err := r.store.SaveReportSummary(ctx, report.Summary()); err != nil {
			r.logger.Error(ctx, "failed to store report summary", apperror.Wrap(err, apperror.CodeStorageError, "save summary").LogAttrs()...)
		}
	}

	r.mu.Lock()
	r.lastRun = time.Now()
	r.mu.Unlock()

	r.logger.Info(ctx, "report cycle done",
		"cycle", cycle,
		"run_id", report.RunID.String(),
		"opportunities", len(report.Opportunities),
		"detected", report.Detected,
		"top_profit_pct", report.TopProfitPct().StringFixed(2),
		"regions_ranked", report.RegionsRanked(),
		"duration", report.Duration.String())
	r.status(ctx, Status{Phase: PhaseIdle, Cycle: cycle})
	return report, nil
}

// Once starts the reporters, runs a single cycle and stops them.
func (r *Runner) Once(ctx context.Context) (*domain.Report, error) {
	if err := r.startReporters(ctx); err != nil {
		return nil, err
	}
	report, err := r.RunOnce(ctx)
	return report, errors.Join(err, r.stopReporters())
}

// LastRun returns when a cycle last completed.
func (r *Runner) LastRun() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun
}

// Stop cancels the loop, waits for the running cycle and stops the reporters.
func (r *Runner) Stop() error {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return r.stopReporters()
}

func (r *Runner) startReporters(ctx context.Context) error {
	for _, rep := range r.reporters {
		if err := rep.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) stopReporters() error {
	var errs []error
	for _, rep := range r.reporters {
		errs = append(errs, rep.Stop())
	}
	return errors.Join(errs...)
}

func (r *Runner) status(ctx context.Context, s Status) {
	for _, rep := range r.reporters {
		rep.Status(ctx, s)
	}
}
