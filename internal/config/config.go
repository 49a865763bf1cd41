package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/activity-recommender/internal/activity"
	"github.com/i474232898/activity-recommender/internal/cities"
	"github.com/i474232898/activity-recommender/internal/weather"
)

// minScheduleInterval is the shortest accepted SCHEDULE_INTERVAL.
const minScheduleInterval = time.Minute

type AppConfig struct {
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	OpenMeteoEnabled  bool
	GeocoderAPIKey    string

	// HTTPTimeout bounds each outbound provider request.
	HTTPTimeout time.Duration
	// WeatherTimeout bounds the whole weather lookup for one city.
	WeatherTimeout time.Duration

	OutputDir string
	SiteDir   string
	TopN      int

	// Cities to generate reports for, in processing order.
	Cities  []weather.Location
	Catalog activity.Catalog

	// ServeAddr enables the long-running mode when non-empty.
	ServeAddr        string
	ScheduleInterval time.Duration

	LogLevel string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	enabled, err := getenvBool("OPENMETEO_ENABLED", false)
	if err != nil {
		return nil, err
	}
	cfg.OpenMeteoEnabled = enabled

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.ScheduleInterval, err = getenvDuration("SCHEDULE_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.ScheduleInterval < minScheduleInterval {
		return nil, fmt.Errorf("invalid SCHEDULE_INTERVAL: must be at least %s, got %s", minScheduleInterval, cfg.ScheduleInterval)
	}

	cfg.OutputDir = getenvDefault("OUTPUT_DIR", "docs/data")
	cfg.SiteDir = getenvDefault("SITE_DIR", "docs")
	cfg.ServeAddr = os.Getenv("SERVE_ADDR")
	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")

	cfg.TopN = getenvInt("TOP_N", activity.DefaultLimit)
	if cfg.TopN <= 0 {
		return nil, fmt.Errorf("invalid TOP_N: must be positive, got %d", cfg.TopN)
	}

	if cfg.Cities, err = loadCities(os.Getenv("CITIES_FILE")); err != nil {
		return nil, err
	}
	if cfg.Catalog, err = loadCatalog(os.Getenv("CATALOG_FILE")); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadCities(path string) ([]weather.Location, error) {
	if path == "" {
		return cities.Default(), nil
	}
	locs, err := cities.Load(path)
	if err != nil {
		return nil, fmt.Errorf("invalid CITIES_FILE: %w", err)
	}
	return locs, nil
}

func loadCatalog(path string) (activity.Catalog, error) {
	if path == "" {
		return activity.DefaultCatalog(), nil
	}
	catalog, err := activity.LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("invalid CATALOG_FILE: %w", err)
	}
	return catalog, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
