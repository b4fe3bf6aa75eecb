package kandilli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	"github.com/couchcryptid/quake-data-api/internal/observability"
)

// maxPageBytes bounds how much of the upstream body is read.
const maxPageBytes = 8 << 20

// Client fetches the KOERI listing page over HTTP.
type Client struct {
	url        string
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a listing client for url. Every request is bounded by timeout.
func NewClient(url string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		metrics: metrics,
		logger:  logger,
	}
}

// URL returns the listing address this client reads.
func (c *Client) URL() string {
	return c.url
}

// FetchPage performs a single GET and returns the page decoded to UTF-8.
// Non-2xx responses, transport failures and timeouts are errors. There are no retries.
func (c *Client) FetchPage(ctx context.Context) (string, error) {
	start := time.Now()
	page, err := c.fetch(ctx)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		return "", err
	}
	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.logger.Debug("listing fetched", "url", c.url, "bytes", len(page), "duration", time.Since(start))
	return page, nil
}

func (c *Client) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("listing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("kandilli error: status %d", resp.StatusCode)
	}

	return DecodePage(io.LimitReader(resp.Body, maxPageBytes), resp.Header.Get("Content-Type"))
}

// DecodePage reads an HTML page and converts it to UTF-8, using the charset
// from contentType or, failing that, the document's own <meta> declaration.
// The observatory serves windows-1254.
func DecodePage(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("decode charset: %w", err)
	}
	body, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}
