package kandilli

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/quake-data-api/internal/observability"
)

// PageFetcher returns the raw listing page.
type PageFetcher interface {
	FetchPage(ctx context.Context) (string, error)
}

// CachedClient wraps a PageFetcher with a single-entry page cache.
// Concurrent misses share one upstream request. Failed fetches are never cached.
type CachedClient struct {
	inner   PageFetcher
	ttl     time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics
	group   singleflight.Group

	mu        sync.Mutex
	page      string
	fetchedAt time.Time
	valid     bool
}

// NewCachedClient creates a cache decorator that serves a page for ttl after it was fetched.
// A nil clock uses the real clock.
func NewCachedClient(inner PageFetcher, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedClient {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedClient{
		inner:   inner,
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

// FetchPage serves the cached page or joins the shared upstream fetch. The
// shared fetch is detached from ctx, so a caller that gives up does not fail
// the others waiting on it; the inner client's own timeout still bounds it.
func (c *CachedClient) FetchPage(ctx context.Context) (string, error) {
	if page, ok := c.lookup(); ok {
		c.metrics.FetchCache.WithLabelValues("hit").Inc()
		return page, nil
	}
	c.metrics.FetchCache.WithLabelValues("miss").Inc()

	flightCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan("page", func() (any, error) {
		// A flight that finished between lookup and DoChan has already refreshed the entry.
		if page, ok := c.lookup(); ok {
			return page, nil
		}
		page, err := c.inner.FetchPage(flightCtx)
		if err != nil {
			return "", err
		}
		c.store(page)
		return page, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func (c *CachedClient) lookup() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.clock.Since(c.fetchedAt) >= c.ttl {
		return "", false
	}
	return c.page, true
}

func (c *CachedClient) store(page string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.page = page
	c.fetchedAt = c.clock.Now()
	c.valid = true
}
