package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-data-api/internal/domain"
)

type fetchOptions struct {
	limit        int
	minMagnitude float64
	location     string
}

func newFetchCmd(opts *options) *cobra.Command {
	f := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the live listing and print its records",
		Long: `Downloads the listing once, parses it and prints the records in source
order. Filters apply in the order location, magnitude, limit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, size, err := opts.snapshot(cmd.Context(), cmd)
			if err != nil {
				return fmt.Errorf("fetching listing: %w", err)
			}

			quakes := result.Earthquakes
			if f.location != "" {
				quakes = domain.ByLocation(quakes, f.location)
			}
			if f.minMagnitude > 0 {
				quakes = domain.Significant(quakes, f.minMagnitude)
			}
			if f.limit > 0 {
				quakes = domain.Latest(quakes, f.limit)
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				return writeJSON(out, map[string]any{"earthquakes": quakes})
			}
			if err := writeQuakeTable(out, quakes); err != nil {
				return err
			}
			_, err = fmt.Fprintf(out, "\n%s of %s records shown (%s page, %s rows dropped)\n",
				humanize.Comma(int64(len(quakes))),
				humanize.Comma(int64(len(result.Earthquakes))),
				humanize.Bytes(uint64(size)),
				humanize.Comma(int64(result.Stats.Dropped())),
			)
			return err
		},
	}

	cmd.Flags().IntVarP(&f.limit, "limit", "n", 0, "print at most N records (0 prints all)")
	cmd.Flags().Float64Var(&f.minMagnitude, "min-magnitude", 0, "only records at or above this magnitude")
	cmd.Flags().StringVarP(&f.location, "location", "l", "", "case-insensitive location substring")
	return cmd
}
