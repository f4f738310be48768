package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.HTTPMaxRetries)
	assert.Equal(t, "static", cfg.PositionSource)
	assert.Equal(t, "search", cfg.PlaceSource)
	assert.Equal(t, "https://www.metaweather.com", cfg.PlaceSearchURL)
	assert.Equal(t, []string{"openmeteo"}, cfg.ForecastProviders)
	assert.Equal(t, 6, cfg.ForecastDays)
	assert.Equal(t, 96, cfg.StoreMaxHistory)
	assert.Equal(t, 24*time.Hour, cfg.StoreMaxAge)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FORECAST_PROVIDERS", "OpenMeteo, weatherapi")
	t.Setenv("DEVICE_LATT_LONG", "40.7,-74.0")
	t.Setenv("REFRESH_INTERVAL", "0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"openmeteo", "weatherapi"}, cfg.ForecastProviders)
	assert.Equal(t, "40.7,-74.0", cfg.DeviceLattLong)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"POSITION_SOURCE":    "gps",
		"FORECAST_PROVIDERS": "darksky",
		"FORECAST_DAYS":      "30",
		"DEVICE_LATT_LONG":   "north",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGeocoderRequiresKey(t *testing.T) {
	t.Setenv("PLACE_SOURCE", "geocoder")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("GEOCODER_API_KEY", "key")
	_, err = Load()
	assert.NoError(t, err)
}

func TestLoadBadDuration(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "soon")
	_, err := Load()
	assert.Error(t, err)
}
