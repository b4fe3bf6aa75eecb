package http

import "github.com/couchcryptid/quake-data-api/internal/domain"

type errorResponse struct {
	Error string `json:"error"`
}

type earthquakesResponse struct {
	Earthquakes []domain.Earthquake `json:"earthquakes"`
}

type dailyCountsResponse struct {
	DailyCounts map[string]int `json:"daily_counts"`
}

type magnitudeDistributionResponse struct {
	MagnitudeDistribution []domain.Bucket `json:"magnitude_distribution"`
}

type regionDistributionResponse struct {
	RegionDistribution []domain.RegionCount `json:"region_distribution"`
}

type depthDistributionResponse struct {
	DepthDistribution []domain.Bucket `json:"depth_distribution"`
}

type summaryResponse struct {
	Summary domain.Summary `json:"summary"`
}

type significantResponse struct {
	SignificantEarthquakes []domain.Earthquake `json:"significant_earthquakes"`
	Count                  int                 `json:"count"`
}

type criticalRegionsResponse struct {
	CriticalRegionEarthquakes []domain.Earthquake `json:"critical_region_earthquakes"`
	Count                     int                 `json:"count"`
}

type recentSignificantResponse struct {
	RecentSignificantEarthquakes []domain.Earthquake `json:"recent_significant_earthquakes"`
	Count                        int                 `json:"count"`
	Parameters                   recentParameters    `json:"parameters"`
}

type recentParameters struct {
	MinMagnitude float64 `json:"min_magnitude"`
	HoursWindow  int     `json:"hours_window"`
}

type potentiallyDamagingResponse struct {
	PotentiallyDamagingEarthquakes []domain.Earthquake `json:"potentially_damaging_earthquakes"`
	Count                          int                 `json:"count"`
	Parameters                     damagingParameters  `json:"parameters"`
}

type damagingParameters struct {
	MinMagnitude float64 `json:"min_magnitude"`
	MaxDepth     float64 `json:"max_depth"`
}

// endpoint describes one route in the index catalog.
type endpoint struct {
	Path        string            `json:"path"`
	Description string            `json:"description"`
	Params      map[string]string `json:"params,omitempty"`
}

type indexResponse struct {
	Name      string     `json:"name"`
	BasePaths []string   `json:"base_paths"`
	Endpoints []endpoint `json:"endpoints"`
}
