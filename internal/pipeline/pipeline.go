package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/quake-data-api/internal/domain"
	"github.com/couchcryptid/quake-data-api/internal/observability"
)

// PageFetcher returns the raw listing page from upstream.
type PageFetcher interface {
	FetchPage(ctx context.Context) (string, error)
}

// Pipeline turns the upstream listing into a fresh record set on every call.
type Pipeline struct {
	fetcher PageFetcher
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// New creates a Pipeline reading pages from fetcher.
func New(fetcher PageFetcher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher: fetcher,
		logger:  logger,
		metrics: metrics,
	}
}

// Snapshot fetches and parses the listing. Readiness follows the outcome of the
// most recent fetch.
func (p *Pipeline) Snapshot(ctx context.Context) (domain.ParseResult, error) {
	page, err := p.fetcher.FetchPage(ctx)
	if err != nil {
		p.ready.Store(false)
		return domain.ParseResult{Earthquakes: []domain.Earthquake{}}, err
	}
	p.ready.Store(true)

	result, err := domain.ParsePage(page)
	if err != nil {
		return result, err
	}

	stats := result.Stats
	p.metrics.RowsParsed.Add(float64(stats.Parsed))
	p.metrics.RowsDropped.WithLabelValues("too_few_fields").Add(float64(stats.TooFewFields))
	p.metrics.RowsDropped.WithLabelValues("malformed_number").Add(float64(stats.MalformedNumber))
	p.metrics.SnapshotSize.Observe(float64(stats.Parsed))

	if stats.Dropped() > 0 {
		p.logger.Debug("listing rows dropped",
			"too_few_fields", stats.TooFewFields,
			"malformed_number", stats.MalformedNumber,
		)
	}
	return result, nil
}

// Earthquakes returns the current records. Upstream and parse failures are
// logged and yield an empty, non-nil slice.
func (p *Pipeline) Earthquakes(ctx context.Context) []domain.Earthquake {
	result, err := p.Snapshot(ctx)
	if err != nil {
		p.logger.Warn("listing unavailable, serving empty dataset", "error", err)
		return []domain.Earthquake{}
	}
	return result.Earthquakes
}

// CheckReadiness returns nil if the last upstream fetch succeeded,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("upstream listing has not been fetched successfully")
	}
	return nil
}

// Warm performs one fetch so readiness reflects upstream reachability at startup.
func (p *Pipeline) Warm(ctx context.Context) error {
	start := time.Now()
	result, err := p.Snapshot(ctx)
	if err != nil {
		p.logger.Warn("warm-up fetch failed", "error", err)
		return err
	}
	p.logger.Info("warm-up fetch complete",
		"records", len(result.Earthquakes),
		"dropped", result.Stats.Dropped(),
		"duration", time.Since(start),
	)
	return nil
}

// Run refreshes the listing every interval until the context is cancelled,
// keeping the page cache warm and readiness current. Failures back off
// exponentially from 200ms up to interval.
func (p *Pipeline) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	p.logger.Info("refresh loop started", "interval", interval)

	backoff := 200 * time.Millisecond
	wait := interval

	for {
		if !sleepWithContext(ctx, wait) {
			p.logger.Info("refresh loop stopping", "reason", ctx.Err())
			return nil
		}

		if _, err := p.Snapshot(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Warn("refresh failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = nextBackoff(backoff, interval)
			continue
		}

		backoff = 200 * time.Millisecond
		wait = interval
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
