package kandilli

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/quake-data-api/internal/observability"
)

type fakeFetcher struct {
	calls atomic.Int32
	page  string
	err   error
	gate  chan struct{} // when set, FetchPage blocks until it is closed
}

func (f *fakeFetcher) FetchPage(ctx context.Context) (string, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.page, nil
}

func newTestCache(inner PageFetcher, ttl time.Duration) (*CachedClient, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, time.January, 16, 12, 0, 0, 0, time.UTC))
	return NewCachedClient(inner, ttl, clock, observability.NewMetricsForTesting()), clock
}

func cacheCount(c *CachedClient, result string) float64 {
	return testutil.ToFloat64(c.metrics.FetchCache.WithLabelValues(result))
}

func TestCachedClient_HitWithinTTL(t *testing.T) {
	inner := &fakeFetcher{page: "page-1"}
	c, clock := newTestCache(inner, 30*time.Second)
	ctx := context.Background()

	page, err := c.FetchPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "page-1", page)

	clock.Advance(29 * time.Second)
	page, err = c.FetchPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "page-1", page)

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.InDelta(t, 1, cacheCount(c, "hit"), 0)
	assert.InDelta(t, 1, cacheCount(c, "miss"), 0)
}

func TestCachedClient_ExpiresAfterTTL(t *testing.T) {
	inner := &fakeFetcher{page: "page-1"}
	c, clock := newTestCache(inner, 30*time.Second)
	ctx := context.Background()

	_, err := c.FetchPage(ctx)
	require.NoError(t, err)

	inner.page = "page-2"
	clock.Advance(30 * time.Second)

	page, err := c.FetchPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "page-2", page)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedClient_ZeroTTLAlwaysFetches(t *testing.T) {
	inner := &fakeFetcher{page: "page"}
	c, _ := newTestCache(inner, 0)

	for range 3 {
		_, err := c.FetchPage(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), inner.calls.Load())
	assert.Zero(t, cacheCount(c, "hit"))
}

func TestCachedClient_ErrorsNotCached(t *testing.T) {
	upstreamErr := errors.New("upstream down")
	inner := &fakeFetcher{err: upstreamErr}
	c, _ := newTestCache(inner, time.Minute)
	ctx := context.Background()

	_, err := c.FetchPage(ctx)
	require.ErrorIs(t, err, upstreamErr)

	inner.err = nil
	inner.page = "recovered"
	page, err := c.FetchPage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "recovered", page)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedClient_ConcurrentMissesShareOneFetch(t *testing.T) {
	inner := &fakeFetcher{page: "shared", gate: make(chan struct{})}
	c, _ := newTestCache(inner, time.Minute)

	const callers = 8
	var wg sync.WaitGroup
	pages := make([]string, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pages[i], errs[i] = c.FetchPage(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(inner.gate)
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, "shared", pages[i])
	}
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestCachedClient_CanceledCallerDoesNotFailSharedFetch(t *testing.T) {
	inner := &fakeFetcher{page: "shared", gate: make(chan struct{})}
	c, _ := newTestCache(inner, time.Minute)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := c.FetchPage(ctxA)
		errA <- err
	}()
	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, time.Millisecond)

	type result struct {
		page string
		err  error
	}
	resB := make(chan result, 1)
	go func() {
		page, err := c.FetchPage(context.Background())
		resB <- result{page, err}
	}()

	cancelA()
	require.ErrorIs(t, <-errA, context.Canceled)

	close(inner.gate)
	got := <-resB
	require.NoError(t, got.err)
	assert.Equal(t, "shared", got.page)
	assert.Equal(t, int32(1), inner.calls.Load())

	page, err := c.FetchPage(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "shared", page, "detached fetch still populates the cache")
	assert.Equal(t, int32(1), inner.calls.Load())
}
