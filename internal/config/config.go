// Package config loads service settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults mirroring the original platform integration: a 20 km radius and a
// five minute scan interval.
const (
	DefaultRadiusKm     = 20.0
	DefaultScanInterval = 5 * time.Minute
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	FeedURL      string
	FetchTimeout time.Duration

	HomeLatitude  float64
	HomeLongitude float64
	RadiusKm      float64
	ScanInterval  time.Duration

	IncludeCategories []string
	ExcludeCategories []string
	Statewide         bool

	KafkaEnabled bool
	KafkaBrokers []string
	KafkaTopic   string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// validCategories are the classifications accepted in the include/exclude
// lists. Kept in sync with domain.ValidCategories; duplicated here so config
// has no dependency on the domain package.
var validCategories = map[string]bool{
	"Advice":            true,
	"Emergency Warning": true,
	"Not Applicable":    true,
	"Watch and Act":     true,
	"Burn Area":         true,
}

// Load reads configuration from environment variables, applying defaults
// where unset. A local .env file is honored in development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	lat, err := parseRequiredFloat("HOME_LATITUDE")
	if err != nil {
		return nil, err
	}
	lon, err := parseRequiredFloat("HOME_LONGITUDE")
	if err != nil {
		return nil, err
	}

	radius, err := parseFloatOrDefault("RADIUS_KM", DefaultRadiusKm)
	if err != nil {
		return nil, err
	}

	scanInterval, err := parseDurationOrDefault("SCAN_INTERVAL", DefaultScanInterval)
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDurationOrDefault("FETCH_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDurationOrDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	include, err := parseCategories("INCLUDE_CATEGORIES")
	if err != nil {
		return nil, err
	}
	exclude, err := parseCategories("EXCLUDE_CATEGORIES")
	if err != nil {
		return nil, err
	}

	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		FeedURL:      envOrDefault("FEED_URL", "https://emergency.vic.gov.au/public/events-geojson.json"),
		FetchTimeout: fetchTimeout,

		HomeLatitude:  lat,
		HomeLongitude: lon,
		RadiusKm:      radius,
		ScanInterval:  scanInterval,

		IncludeCategories: include,
		ExcludeCategories: exclude,
		Statewide:         os.Getenv("STATEWIDE") == "true",

		KafkaEnabled: kafkaEnabled,
		KafkaBrokers: brokers,
		KafkaTopic:   envOrDefault("KAFKA_TOPIC", "geo-location-events"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.FeedURL == "" {
		return errors.New("FEED_URL is required")
	}
	if c.HomeLatitude < -90 || c.HomeLatitude > 90 {
		return fmt.Errorf("HOME_LATITUDE %v out of range [-90, 90]", c.HomeLatitude)
	}
	if c.HomeLongitude < -180 || c.HomeLongitude > 180 {
		return fmt.Errorf("HOME_LONGITUDE %v out of range [-180, 180]", c.HomeLongitude)
	}
	if c.RadiusKm <= 0 {
		return errors.New("RADIUS_KM must be positive")
	}
	if c.ScanInterval <= 0 {
		return errors.New("SCAN_INTERVAL must be positive")
	}
	for _, cat := range c.IncludeCategories {
		if contains(c.ExcludeCategories, cat) {
			return fmt.Errorf("category %q appears in both INCLUDE_CATEGORIES and EXCLUDE_CATEGORIES", cat)
		}
	}
	if c.KafkaEnabled && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseRequiredFloat(key string) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseFloatOrDefault(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseDurationOrDefault(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

// parseCategories splits a comma-separated category list and validates each
// entry against the known warning classifications.
func parseCategories(key string) ([]string, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return nil, nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		cat := strings.TrimSpace(part)
		if cat == "" {
			continue
		}
		if !validCategories[cat] {
			return nil, fmt.Errorf("%s: unknown category %q", key, cat)
		}
		out = append(out, cat)
	}
	return out, nil
}

func parseBrokers(raw string) []string {
	if raw == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
