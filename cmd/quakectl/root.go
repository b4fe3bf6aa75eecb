package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-data-api/internal/adapter/kandilli"
	"github.com/couchcryptid/quake-data-api/internal/config"
	"github.com/couchcryptid/quake-data-api/internal/domain"
	"github.com/couchcryptid/quake-data-api/internal/observability"
	"github.com/couchcryptid/quake-data-api/internal/pipeline"
)

// options holds the persistent flags shared by every subcommand.
type options struct {
	url      string
	timeout  time.Duration
	jsonOut  bool
	verbose  bool
	timezone string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "quakectl",
		Short: "Inspect the Kandilli Observatory earthquake listing",
		Long: `quakectl fetches the KOERI recent earthquakes page and runs the same
parser, filters and statistics as the HTTP API, without starting a server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.url, "url", config.DefaultKandilliURL, "listing page URL")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "upstream request timeout")
	cmd.PersistentFlags().BoolVar(&opts.jsonOut, "json", false, "print JSON instead of a table")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log fetch details to stderr")
	cmd.PersistentFlags().StringVar(&opts.timezone, "timezone", "Europe/Istanbul", "timezone of the listing's times")

	cmd.AddCommand(
		newFetchCmd(opts),
		newStatsCmd(opts),
		newParseCmd(opts),
	)
	return cmd
}

func (o *options) logger(cmd *cobra.Command) *slog.Logger {
	if !o.verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func (o *options) location() (*time.Location, error) {
	return time.LoadLocation(o.timezone)
}

// snapshot fetches and parses the live listing once. Metrics go to a private
// registry; the CLI never exposes them.
func (o *options) snapshot(ctx context.Context, cmd *cobra.Command) (domain.ParseResult, int, error) {
	logger := o.logger(cmd)
	metrics := observability.NewMetricsWithRegistry(prometheus.NewRegistry())

	client := kandilli.NewClient(o.url, o.timeout, metrics, logger)
	logger.Debug("fetching listing", "url", client.URL(), "timeout", o.timeout)

	sized := &sizingFetcher{inner: client}
	result, err := pipeline.New(sized, logger, metrics).Snapshot(ctx)
	return result, sized.bytes, err
}

// sizingFetcher remembers how large the last page was.
type sizingFetcher struct {
	inner pipeline.PageFetcher
	bytes int
}

func (s *sizingFetcher) FetchPage(ctx context.Context) (string, error) {
	page, err := s.inner.FetchPage(ctx)
	s.bytes = len(page)
	return page, err
}
