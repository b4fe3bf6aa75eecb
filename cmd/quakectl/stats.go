package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/quake-data-api/internal/config"
	"github.com/couchcryptid/quake-data-api/internal/domain"
)

// statsReport mirrors the /statistics and /alerts responses in one document.
type statsReport struct {
	Summary               domain.Summary       `json:"summary"`
	DailyCounts           map[string]int       `json:"daily_counts"`
	MagnitudeDistribution []domain.Bucket      `json:"magnitude_distribution"`
	DepthDistribution     []domain.Bucket      `json:"depth_distribution"`
	RegionDistribution    []domain.RegionCount `json:"region_distribution"`
	Alerts                alertCounts          `json:"alerts"`
}

type alertCounts struct {
	Significant         int `json:"significant"`
	CriticalRegions     int `json:"critical_regions"`
	RecentSignificant   int `json:"recent_significant"`
	PotentiallyDamaging int `json:"potentially_damaging"`
}

func newStatsCmd(opts *options) *cobra.Command {
	var (
		topRegions int
		alertsFile string
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print summary statistics and alert counts for the live listing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			alerts, err := config.LoadAlerts(alertsFile)
			if err != nil {
				return err
			}
			loc, err := opts.location()
			if err != nil {
				return fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
			}

			result, _, err := opts.snapshot(cmd.Context(), cmd)
			if err != nil {
				return fmt.Errorf("fetching listing: %w", err)
			}

			report := buildStatsReport(result.Earthquakes, alerts, loc)
			if opts.jsonOut {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return writeStatsReport(cmd.OutOrStdout(), report, topRegions)
		},
	}

	cmd.Flags().IntVar(&topRegions, "top", 10, "number of regions to print (0 prints all)")
	cmd.Flags().StringVar(&alertsFile, "alerts-config", "", "alerts YAML file (same format as ALERTS_CONFIG_FILE)")
	return cmd
}

func buildStatsReport(quakes []domain.Earthquake, alerts config.AlertsConfig, loc *time.Location) statsReport {
	window := domain.RecentWindow(alerts.RecentHours)
	return statsReport{
		Summary:               domain.Summarize(quakes),
		DailyCounts:           domain.DailyCounts(quakes),
		MagnitudeDistribution: domain.MagnitudeDistribution(quakes),
		DepthDistribution:     domain.DepthDistribution(quakes),
		RegionDistribution:    domain.RegionDistribution(quakes),
		Alerts: alertCounts{
			Significant:         len(domain.Significant(quakes, alerts.SignificantMin)),
			CriticalRegions:     len(domain.InCriticalRegions(quakes, alerts.CriticalRegions)),
			RecentSignificant:   len(domain.RecentSignificant(quakes, alerts.RecentMin, window, loc)),
			PotentiallyDamaging: len(domain.PotentiallyDamaging(quakes, alerts.DamagingMin, alerts.DamagingMaxDepth)),
		},
	}
}
