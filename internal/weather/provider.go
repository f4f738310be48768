package weather

import (
	"context"
	"strconv"
	"time"
)

// DailyReading is a single provider's normalized reading for one day,
// aggregated into a Day.
type DailyReading struct {
	ProviderName string
	Date         time.Time

	MinC      float64
	MaxC      float64
	AvgC      float64
	Condition Condition
}

// ForecastProvider abstracts a daily forecast source (Open-Meteo, WeatherAPI, OpenWeatherMap).
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location, days int) ([]DailyReading, error)
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
