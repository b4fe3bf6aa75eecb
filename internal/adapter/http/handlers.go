package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/couchcryptid/quake-data-api/internal/config"
	"github.com/couchcryptid/quake-data-api/internal/domain"
)

// EarthquakeSource yields the current record set. Implementations return an
// empty slice, never an error, when upstream data is unavailable.
type EarthquakeSource interface {
	Earthquakes(ctx context.Context) []domain.Earthquake
}

// API serves the query, statistics, and alert endpoints.
type API struct {
	source EarthquakeSource
	alerts config.AlertsConfig
	loc    *time.Location
	logger *slog.Logger
}

// NewAPI creates the handler set. loc is the timezone of the listing's wall-clock times.
func NewAPI(source EarthquakeSource, alerts config.AlertsConfig, loc *time.Location, logger *slog.Logger) *API {
	if loc == nil {
		loc = time.UTC
	}
	return &API{
		source: source,
		alerts: alerts,
		loc:    loc,
		logger: logger,
	}
}

// Register adds every API route to r.
func (a *API) Register(r chi.Router) {
	r.Get("/", a.handleIndex)
	r.Get("/quakes", a.handleQuakes)

	r.Route("/filters", func(r chi.Router) {
		r.Get("/date", a.handleFilterDate)
		r.Get("/magnitude", a.handleFilterMagnitude)
		r.Get("/location", a.handleFilterLocation)
		r.Get("/radius", a.handleFilterRadius)
		r.Get("/latest", a.handleFilterLatest)
	})

	r.Route("/statistics", func(r chi.Router) {
		r.Get("/daily", a.handleDaily)
		r.Get("/magnitude-distribution", a.handleMagnitudeDistribution)
		r.Get("/region-distribution", a.handleRegionDistribution)
		r.Get("/depth-distribution", a.handleDepthDistribution)
		r.Get("/summary", a.handleSummary)
	})

	r.Route("/alerts", func(r chi.Router) {
		r.Get("/significant", a.handleSignificant)
		r.Get("/critical-regions", a.handleCriticalRegions)
		r.Get("/recent-significant", a.handleRecentSignificant)
		r.Get("/potentially-damaging", a.handlePotentiallyDamaging)
	})
}

// Quakes

func (a *API) handleQuakes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, earthquakesResponse{Earthquakes: a.source.Earthquakes(r.Context())})
}

// Filters

func (a *API) handleFilterDate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rawStart, rawEnd := strings.TrimSpace(q.Get("start")), strings.TrimSpace(q.Get("end"))
	if rawStart == "" || rawEnd == "" {
		writeError(w, http.StatusBadRequest, "Both start and end date parameters are required")
		return
	}

	start, errStart := domain.ParseDate(rawStart)
	end, errEnd := domain.ParseDate(rawEnd)
	if errStart != nil || errEnd != nil {
		a.logger.Debug("rejected date range", "start", rawStart, "end", rawEnd)
		writeError(w, http.StatusBadRequest, "Invalid date format, expected DD.MM.YY or YYYY.MM.DD")
		return
	}

	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, earthquakesResponse{Earthquakes: domain.ByDateRange(quakes, start, end)})
}

func (a *API) handleFilterMagnitude(w http.ResponseWriter, r *http.Request) {
	minMag := floatParam(r, "min", 0)
	maxMag := floatParam(r, "max", 10)

	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, earthquakesResponse{Earthquakes: domain.ByMagnitude(quakes, minMag, maxMag)})
}

func (a *API) handleFilterLocation(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "Location query parameter is required")
		return
	}

	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, earthquakesResponse{Earthquakes: domain.ByLocation(quakes, query)})
}

func (a *API) handleFilterRadius(w http.ResponseWriter, r *http.Request) {
	lat, okLat := parseFloatParam(r, "lat")
	lon, okLon := parseFloatParam(r, "lon")
	if !okLat || !okLon {
		writeError(w, http.StatusBadRequest, "Valid latitude and longitude parameters are required")
		return
	}
	radius := floatParam(r, "radius", 100)

	quakes := a.source.Earthquakes(r.Context())
	center := domain.Geo{Lat: lat, Lon: lon}
	writeJSON(w, http.StatusOK, earthquakesResponse{Earthquakes: domain.WithinRadius(quakes, center, radius)})
}

func (a *API) handleFilterLatest(w http.ResponseWriter, r *http.Request) {
	limit := intParam(r, "limit", 10)

	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, earthquakesResponse{Earthquakes: domain.Latest(quakes, limit)})
}

// Statistics

func (a *API) handleDaily(w http.ResponseWriter, r *http.Request) {
	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, dailyCountsResponse{DailyCounts: domain.DailyCounts(quakes)})
}

func (a *API) handleMagnitudeDistribution(w http.ResponseWriter, r *http.Request) {
	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, magnitudeDistributionResponse{MagnitudeDistribution: domain.MagnitudeDistribution(quakes)})
}

func (a *API) handleRegionDistribution(w http.ResponseWriter, r *http.Request) {
	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, regionDistributionResponse{RegionDistribution: domain.RegionDistribution(quakes)})
}

func (a *API) handleDepthDistribution(w http.ResponseWriter, r *http.Request) {
	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, depthDistributionResponse{DepthDistribution: domain.DepthDistribution(quakes)})
}

func (a *API) handleSummary(w http.ResponseWriter, r *http.Request) {
	quakes := a.source.Earthquakes(r.Context())
	writeJSON(w, http.StatusOK, summaryResponse{Summary: domain.Summarize(quakes)})
}

// Alerts

func (a *API) handleSignificant(w http.ResponseWriter, r *http.Request) {
	minMag := floatParam(r, "min", a.alerts.SignificantMin)

	matched := domain.Significant(a.source.Earthquakes(r.Context()), minMag)
	writeJSON(w, http.StatusOK, significantResponse{SignificantEarthquakes: matched, Count: len(matched)})
}

func (a *API) handleCriticalRegions(w http.ResponseWriter, r *http.Request) {
	matched := domain.InCriticalRegions(a.source.Earthquakes(r.Context()), a.alerts.CriticalRegions)
	writeJSON(w, http.StatusOK, criticalRegionsResponse{CriticalRegionEarthquakes: matched, Count: len(matched)})
}

func (a *API) handleRecentSignificant(w http.ResponseWriter, r *http.Request) {
	minMag := floatParam(r, "min", a.alerts.RecentMin)
	hours := intParam(r, "hours", a.alerts.RecentHours)

	quakes := a.source.Earthquakes(r.Context())
	matched := domain.RecentSignificant(quakes, minMag, domain.RecentWindow(hours), a.loc)
	writeJSON(w, http.StatusOK, recentSignificantResponse{
		RecentSignificantEarthquakes: matched,
		Count:                        len(matched),
		Parameters:                   recentParameters{MinMagnitude: minMag, HoursWindow: hours},
	})
}

func (a *API) handlePotentiallyDamaging(w http.ResponseWriter, r *http.Request) {
	minMag := floatParam(r, "min", a.alerts.DamagingMin)
	maxDepth := floatParam(r, "depth", a.alerts.DamagingMaxDepth)

	matched := domain.PotentiallyDamaging(a.source.Earthquakes(r.Context()), minMag, maxDepth)
	writeJSON(w, http.StatusOK, potentiallyDamagingResponse{
		PotentiallyDamagingEarthquakes: matched,
		Count:                          len(matched),
		Parameters:                     damagingParameters{MinMagnitude: minMag, MaxDepth: maxDepth},
	})
}

// Index

func (a *API) catalog() []endpoint {
	return []endpoint{
		{Path: "/quakes", Description: "All earthquakes in the current listing"},
		{Path: "/filters/date", Description: "Earthquakes within an inclusive date range", Params: map[string]string{"start": "required, DD.MM.YY or YYYY.MM.DD", "end": "required, DD.MM.YY or YYYY.MM.DD"}},
		{Path: "/filters/magnitude", Description: "Earthquakes within a magnitude range", Params: map[string]string{"min": "default 0", "max": "default 10"}},
		{Path: "/filters/location", Description: "Case-insensitive location substring match", Params: map[string]string{"q": "required"}},
		{Path: "/filters/radius", Description: "Earthquakes within a great-circle distance", Params: map[string]string{"lat": "required", "lon": "required", "radius": "km, default 100"}},
		{Path: "/filters/latest", Description: "First N earthquakes of the listing", Params: map[string]string{"limit": "default 10"}},
		{Path: "/statistics/daily", Description: "Earthquake count per date"},
		{Path: "/statistics/magnitude-distribution", Description: "Counts per magnitude bucket"},
		{Path: "/statistics/region-distribution", Description: "Counts per region, most active first"},
		{Path: "/statistics/depth-distribution", Description: "Counts per depth bucket"},
		{Path: "/statistics/summary", Description: "Total, maximum and mean values"},
		{Path: "/alerts/significant", Description: "Earthquakes at or above a magnitude", Params: map[string]string{"min": defaultOf(a.alerts.SignificantMin)}},
		{Path: "/alerts/critical-regions", Description: "Earthquakes in monitored regions"},
		{Path: "/alerts/recent-significant", Description: "Significant earthquakes within a time window", Params: map[string]string{"min": defaultOf(a.alerts.RecentMin), "hours": "default " + strconv.Itoa(a.alerts.RecentHours)}},
		{Path: "/alerts/potentially-damaging", Description: "Strong shallow earthquakes", Params: map[string]string{"min": defaultOf(a.alerts.DamagingMin), "depth": "km, " + defaultOf(a.alerts.DamagingMaxDepth)}},
	}
}

func defaultOf(v float64) string {
	return "default " + strconv.FormatFloat(v, 'f', -1, 64)
}

func (a *API) handleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, indexResponse{
		Name:      "quake-data-api",
		BasePaths: []string{"/", "/api"},
		Endpoints: a.catalog(),
	})
}
