package app

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/fd1az/eclesiar-analyzer/business/ingestion/domain"
	"github.com/fd1az/eclesiar-analyzer/internal/apm"
	"github.com/fd1az/eclesiar-analyzer/internal/apperror"
	"github.com/fd1az/eclesiar-analyzer/internal/logger"
)

// Collector fetches, cleans and stores snapshots, then attaches the rate
// history the scorer measures volatility on.
type Collector struct {
	source      SnapshotSource
	store       SnapshotStore
	log         logger.LoggerInterface
	tracer      apm.Tracer
	historySize int

	mu          sync.Mutex
	lastSuccess time.Time
}

// NewCollector creates a collector. historySize <= 0 disables history.
func NewCollector(source SnapshotSource, store SnapshotStore, log logger.LoggerInterface, historySize int) *Collector {
	return &Collector{
		source:      source,
		store:       store,
		log:         log,
		tracer:      apm.NewTracer("ingestion"),
		historySize: historySize,
	}
}

// Collect runs one ingestion pass. A failed fetch aborts; a failed save is
// logged and the snapshot is still returned for analysis.
func (c *Collector) Collect(ctx context.Context) (*domain.Snapshot, error) {
	ctx, span := c.tracer.StartSpanFromContext(ctx, "ingestion.collect")
	defer span.End()

	start := time.Now()
	snap, err := c.source.FetchSnapshot(ctx)
	if err != nil {
		span.NoticeError(err)
		return nil, apperror.Wrap(err, apperror.CodeSnapshotFetchFailed, "fetch snapshot")
	}

	if dropped := snap.Sanitize(); dropped.Total() > 0 {
		c.log.Warn(ctx, "dropped invalid snapshot records",
			"snapshot_id", snap.ID.String(),
			"rates", dropped.Rates,
			"offers", dropped.Offers,
			"regions", dropped.Regions)
	}

	if err := c.store.SaveSnapshot(ctx, snap); err != nil {
		span.NoticeError(err)
		c.log.Error(ctx, "failed to store snapshot", apperror.Wrap(err, apperror.CodeStorageError, "save snapshot").LogAttrs()...)
	}

	c.attachHistory(ctx, snap)

	stats := snap.Stats()
	span.SetAttributes(
		attribute.String("snapshot.id", snap.ID.String()),
		attribute.Int("snapshot.currencies", stats.Currencies),
		attribute.Int("snapshot.offers", stats.Offers),
		attribute.Int("snapshot.regions", stats.Regions),
	)
	c.log.Info(ctx, "snapshot collected",
		"snapshot_id", snap.ID.String(),
		"currencies", stats.Currencies,
		"rates", stats.Rates,
		"offers", stats.Offers,
		"regions", stats.Regions,
		"duration", time.Since(start).String())

	c.mu.Lock()
	c.lastSuccess = time.Now()
	c.mu.Unlock()
	return snap, nil
}

// Latest loads the newest stored snapshot with its rate history.
func (c *Collector) Latest(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := c.store.LatestSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	c.attachHistory(ctx, snap)
	return snap, nil
}

// LastSuccess returns when Collect last succeeded.
func (c *Collector) LastSuccess() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSuccess
}

// Ping checks the store.
func (c *Collector) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *Collector) attachHistory(ctx context.Context, snap *domain.Snapshot) {
	if c.historySize <= 0 {
		return
	}
	for _, id := range snap.Rates.IDs() {
		if id.IsGold() {
			continue
		}
		hist, err := c.store.RateHistory(ctx, id, c.historySize)
		if err != nil {
			c.log.Warn(ctx, "rate history unavailable", "currency", string(id), "error", err)
			continue
		}
		snap.SetHistory(id, hist)
	}
}
