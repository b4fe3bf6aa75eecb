package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-data-api/internal/adapter/kandilli"
	"github.com/couchcryptid/quake-data-api/internal/domain"
)

var errRowsDropped = errors.New("listing has dropped rows")

// parseReport is what `parse` prints for a saved page.
type parseReport struct {
	File    string             `json:"file"`
	Bytes   int64              `json:"bytes"`
	Stats   domain.ParseStats  `json:"stats"`
	First   *domain.Earthquake `json:"first,omitempty"`
	Last    *domain.Earthquake `json:"last,omitempty"`
	Summary domain.Summary     `json:"summary"`
}

func newParseCmd(opts *options) *cobra.Command {
	var (
		contentType string
		strict      bool
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a saved listing page and report what the parser kept",
		Long: `Runs the parser over a page saved to disk (for example with curl) and
reports line, record and drop counts. With --strict, any dropped row is an error,
which makes the command usable as a regression check against captured pages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := parseFile(args[0], contentType)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.jsonOut {
				err = writeJSON(out, report)
			} else {
				err = writeParseReport(out, report)
			}
			if err != nil {
				return err
			}

			if strict && report.Stats.Dropped() > 0 {
				return fmt.Errorf("%w: %s", errRowsDropped, humanize.Comma(int64(report.Stats.Dropped())))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contentType, "content-type", "text/html; charset=windows-1254", "Content-Type the page was served with")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any row is dropped")
	return cmd
}

func parseFile(path, contentType string) (parseReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return parseReport{}, fmt.Errorf("opening page: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return parseReport{}, fmt.Errorf("stat page: %w", err)
	}

	page, err := kandilli.DecodePage(f, contentType)
	if err != nil {
		return parseReport{}, err
	}

	result, err := domain.ParsePage(page)
	if err != nil {
		return parseReport{}, err
	}

	report := parseReport{
		File:    path,
		Bytes:   info.Size(),
		Stats:   result.Stats,
		Summary: domain.Summarize(result.Earthquakes),
	}
	if n := len(result.Earthquakes); n > 0 {
		first, last := result.Earthquakes[0], result.Earthquakes[n-1]
		report.First, report.Last = &first, &last
	}
	return report, nil
}
