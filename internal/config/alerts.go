package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/quake-data-api/internal/domain"
)

// AlertsConfig holds the critical-region allow-list and the defaults used by
// the /alerts endpoints when a request omits its thresholds.
type AlertsConfig struct {
	CriticalRegions []string `yaml:"critical_regions"`

	SignificantMin float64 `yaml:"significant_min"`

	RecentMin   float64 `yaml:"recent_min"`
	RecentHours int     `yaml:"recent_hours"`

	DamagingMin      float64 `yaml:"damaging_min"`
	DamagingMaxDepth float64 `yaml:"damaging_max_depth"`
}

// DefaultAlerts returns the built-in alert settings.
func DefaultAlerts() AlertsConfig {
	return AlertsConfig{
		CriticalRegions:  append([]string(nil), domain.DefaultCriticalRegions...),
		SignificantMin:   domain.DefaultSignificantMin,
		RecentMin:        domain.DefaultRecentMin,
		RecentHours:      domain.DefaultRecentHours,
		DamagingMin:      domain.DefaultDamagingMin,
		DamagingMaxDepth: domain.DefaultDamagingMaxDepth,
	}
}

// LoadAlerts reads an optional YAML file over the defaults. An empty path
// returns the defaults. Keys missing from the file keep their default value.
//
// Example:
//
//	critical_regions:
//	  - ISTANBUL
//	  - DUZCE
//	significant_min: 4.0
//	recent_hours: 12
func LoadAlerts(path string) (AlertsConfig, error) {
	cfg := DefaultAlerts()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AlertsConfig{}, fmt.Errorf("reading ALERTS_CONFIG_FILE: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AlertsConfig{}, fmt.Errorf("parsing ALERTS_CONFIG_FILE: %w", err)
	}

	regions := cfg.CriticalRegions[:0]
	for _, r := range cfg.CriticalRegions {
		if r = strings.TrimSpace(r); r != "" {
			regions = append(regions, r)
		}
	}
	cfg.CriticalRegions = regions

	if len(cfg.CriticalRegions) == 0 {
		return AlertsConfig{}, errors.New("ALERTS_CONFIG_FILE: critical_regions must not be empty")
	}
	if cfg.RecentHours <= 0 {
		return AlertsConfig{}, errors.New("ALERTS_CONFIG_FILE: recent_hours must be positive")
	}
	if cfg.DamagingMaxDepth < 0 {
		return AlertsConfig{}, errors.New("ALERTS_CONFIG_FILE: damaging_max_depth must not be negative")
	}

	return cfg, nil
}
