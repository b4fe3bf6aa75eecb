package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/couchcryptid/quake-data-api/internal/domain"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func writeQuakeTable(w io.Writer, quakes []domain.Earthquake) error {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tTIME\tLAT\tLON\tDEPTH\tMAG\tLOCATION")
	for _, q := range quakes {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.1f\t%.1f\t%s\n",
			q.Date, q.Time, q.Latitude, q.Longitude, q.Depth, q.Magnitude, q.Location)
	}
	return tw.Flush()
}

func writeBuckets(tw *tabwriter.Writer, title string, buckets []domain.Bucket) {
	fmt.Fprintf(tw, "\n%s\n", title)
	for _, b := range buckets {
		fmt.Fprintf(tw, "  %s\t%s\n", b.Range, humanize.Comma(int64(b.Count)))
	}
}

func writeStatsReport(w io.Writer, r statsReport, topRegions int) error {
	tw := newTable(w)

	s := r.Summary
	fmt.Fprintln(tw, "SUMMARY")
	fmt.Fprintf(tw, "  total\t%s\n", humanize.Comma(int64(s.TotalEarthquakes)))
	fmt.Fprintf(tw, "  max magnitude\t%.1f\n", s.MaxMagnitude)
	fmt.Fprintf(tw, "  avg magnitude\t%.2f\n", s.AvgMagnitude)
	fmt.Fprintf(tw, "  avg depth\t%.2f km\n", s.AvgDepth)

	writeBuckets(tw, "MAGNITUDE", r.MagnitudeDistribution)
	writeBuckets(tw, "DEPTH", r.DepthDistribution)

	regions := r.RegionDistribution
	if topRegions > 0 && len(regions) > topRegions {
		regions = regions[:topRegions]
	}
	fmt.Fprintf(tw, "\nREGIONS (%d of %d)\n", len(regions), len(r.RegionDistribution))
	for _, rc := range regions {
		fmt.Fprintf(tw, "  %s\t%s\n", rc.Region, humanize.Comma(int64(rc.Count)))
	}

	a := r.Alerts
	fmt.Fprintln(tw, "\nALERTS")
	fmt.Fprintf(tw, "  significant\t%d\n", a.Significant)
	fmt.Fprintf(tw, "  critical regions\t%d\n", a.CriticalRegions)
	fmt.Fprintf(tw, "  recent significant\t%d\n", a.RecentSignificant)
	fmt.Fprintf(tw, "  potentially damaging\t%d\n", a.PotentiallyDamaging)

	return tw.Flush()
}

func writeParseReport(w io.Writer, r parseReport) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "file\t%s (%s)\n", r.File, humanize.Bytes(uint64(r.Bytes)))
	fmt.Fprintf(tw, "body lines\t%s\n", humanize.Comma(int64(r.Stats.Lines)))
	fmt.Fprintf(tw, "records\t%s\n", humanize.Comma(int64(r.Stats.Parsed)))
	fmt.Fprintf(tw, "dropped: too few fields\t%s\n", humanize.Comma(int64(r.Stats.TooFewFields)))
	fmt.Fprintf(tw, "dropped: malformed number\t%s\n", humanize.Comma(int64(r.Stats.MalformedNumber)))
	if r.First != nil {
		fmt.Fprintf(tw, "first\t%s %s %s\n", r.First.Date, r.First.Time, r.First.Location)
		fmt.Fprintf(tw, "last\t%s %s %s\n", r.Last.Date, r.Last.Time, r.Last.Location)
	}
	fmt.Fprintf(tw, "max magnitude\t%.1f\n", r.Summary.MaxMagnitude)
	return tw.Flush()
}
