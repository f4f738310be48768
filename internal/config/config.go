// Package config loads AppConfig from the environment and an optional .env
// file.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/i474232898/today-forecast/internal/geo"
)

type AppConfig struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	// Outbound HTTP.
	HTTPTimeout    time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
	HTTPMaxRetries int           `envconfig:"HTTP_MAX_RETRIES" default:"0" validate:"gte=0,lte=5"`

	// Device position: "static" reads DEVICE_LATT_LONG, "ip" asks IP_LOOKUP_URL.
	PositionSource string `envconfig:"POSITION_SOURCE" default:"static" validate:"oneof=static ip"`
	DeviceLattLong string `envconfig:"DEVICE_LATT_LONG"` // empty = permission not granted
	IPLookupURL    string `envconfig:"IP_LOOKUP_URL" default:"http://ip-api.com" validate:"url"`

	// Place lookup: "search" uses a MetaWeather compatible API, "geocoder" uses Google.
	// The public metaweather.com API has been offline since 2022; point
	// PLACE_SEARCH_URL at a compatible mirror or set PLACE_SOURCE=geocoder.
	PlaceSource    string `envconfig:"PLACE_SOURCE" default:"search" validate:"oneof=search geocoder"`
	PlaceSearchURL string `envconfig:"PLACE_SEARCH_URL" default:"https://www.metaweather.com" validate:"url"`
	GeocoderAPIKey string `envconfig:"GEOCODER_API_KEY" validate:"required_if=PlaceSource geocoder"`

	// Forecast providers, comma separated: openmeteo, weatherapi, openweather.
	ForecastProviders []string `envconfig:"FORECAST_PROVIDERS" default:"openmeteo" validate:"min=1,dive,oneof=openmeteo weatherapi openweather"`
	ForecastDays      int      `envconfig:"FORECAST_DAYS" default:"6" validate:"gte=1,lte=14"`
	OpenWeatherAPIKey string   `envconfig:"OPENWEATHER_API_KEY"`
	WeatherAPIKey     string   `envconfig:"WEATHERAPI_API_KEY"`
	ProviderRPS       float64  `envconfig:"PROVIDER_RATE_LIMIT_RPS" default:"1" validate:"gt=0"`
	ProviderBurst     int      `envconfig:"PROVIDER_RATE_LIMIT_BURST" default:"3" validate:"gte=1"`

	DefaultLocale string `envconfig:"DEFAULT_LOCALE" default:"en-US"`

	// In-memory resolution history retention.
	StoreMaxHistory int           `envconfig:"STORE_MAX_HISTORY" default:"96"` // 0 = unlimited
	StoreMaxAge     time.Duration `envconfig:"STORE_MAX_AGE" default:"24h"`    // 0 = unlimited

	// DatabasePath persists the panel state across restarts; empty disables it.
	DatabasePath string `envconfig:"DATABASE_PATH" default:"today-forecast.db"`

	// RefreshInterval re-fetches the current location's forecast; 0 disables it.
	RefreshInterval time.Duration `envconfig:"REFRESH_INTERVAL" default:"30m"`

	NoticeCapacity int `envconfig:"NOTICE_CAPACITY" default:"16" validate:"gte=1"`
}

var validate = validator.New()

// Load reads configuration from the environment (and .env when present) with
// sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file loaded", "error", err)
	}

	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	for i, p := range cfg.ForecastProviders {
		cfg.ForecastProviders[i] = strings.ToLower(strings.TrimSpace(p))
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.PositionSource == "static" && cfg.DeviceLattLong != "" {
		if _, err := geo.ParseLattLong(cfg.DeviceLattLong); err != nil {
			return nil, fmt.Errorf("invalid DEVICE_LATT_LONG: %w", err)
		}
	}

	return cfg, nil
}

// SlogLevel maps LogLevel to a slog.Level.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
