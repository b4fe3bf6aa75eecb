package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"
	_ "time/tzdata" // SOURCE_TIMEZONE must resolve in minimal containers

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultKandilliURL is the KOERI page listing the most recent events.
const DefaultKandilliURL = "http://www.koeri.boun.edu.tr/scripts/lst0.asp"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Upstream listing.
	KandilliURL      string
	KandilliTimeout  time.Duration
	KandilliCacheTTL time.Duration // 0 disables the shared page cache

	// SourceLocation is the timezone the listing's wall-clock times are in.
	SourceLocation *time.Location

	AlertsConfigFile string
	Alerts           AlertsConfig
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	kandilliTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("KANDILLI_TIMEOUT", "10s"))
	if err != nil || kandilliTimeout <= 0 {
		return nil, errors.New("invalid KANDILLI_TIMEOUT")
	}

	cacheTTL, err := time.ParseDuration(sharedcfg.EnvOrDefault("KANDILLI_CACHE_TTL", "30s"))
	if err != nil || cacheTTL < 0 {
		return nil, errors.New("invalid KANDILLI_CACHE_TTL")
	}

	tzName := sharedcfg.EnvOrDefault("SOURCE_TIMEZONE", "Europe/Istanbul")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid SOURCE_TIMEZONE %q: %w", tzName, err)
	}

	alertsFile := sharedcfg.EnvOrDefault("ALERTS_CONFIG_FILE", "")
	alerts, err := LoadAlerts(alertsFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:         sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:         sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:        sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:  shutdownTimeout,
		KandilliURL:      sharedcfg.EnvOrDefault("KANDILLI_URL", DefaultKandilliURL),
		KandilliTimeout:  kandilliTimeout,
		KandilliCacheTTL: cacheTTL,
		SourceLocation:   loc,
		AlertsConfigFile: alertsFile,
		Alerts:           alerts,
	}

	if u, err := url.Parse(cfg.KandilliURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("KANDILLI_URL must be an absolute http(s) URL")
	}

	return cfg, nil
}
