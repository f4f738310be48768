package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

var (
	// ErrNoProviders is returned when the service has nothing to query.
	ErrNoProviders = errors.New("no weather providers configured")
	// ErrNoForecast is returned when every provider failed or returned nothing.
	ErrNoForecast = errors.New("no forecast data available")
)

// DefaultDays is today plus the five following days.
const DefaultDays = 6

// Service fans a forecast request out to every provider and merges the
// answers per day.
type Service struct {
	providers []ForecastProvider
	days      int
}

// NewService creates a new Service. days <= 0 selects DefaultDays.
func NewService(providers []ForecastProvider, days int) *Service {
	if days <= 0 {
		days = DefaultDays
	}
	return &Service{
		providers: providers,
		days:      days,
	}
}

// Days returns the forecast length requested from providers.
func (s *Service) Days() int {
	return s.days
}

// GetWeather fetches daily forecasts for loc from all providers concurrently,
// aggregates them per day and returns them ordered by date, today first.
func (s *Service) GetWeather(ctx context.Context, loc Location) (Forecast, error) {
	if len(s.providers) == 0 {
		return nil, ErrNoProviders
	}

	slog.Debug("fetching forecast", "location", loc.Key(), "providers", len(s.providers), "days", s.days)

	var (
		wg            sync.WaitGroup
		mu            sync.Mutex
		dayReadings   = make(map[time.Time][]DailyReading)
		providerError error
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func(p ForecastProvider) {
			defer wg.Done()

			readings, err := p.FetchForecast(ctx, loc, s.days)
			if err != nil {
				// Log and continue; partial success is still a forecast.
				slog.Warn("provider forecast failed", "provider", p.Name(), "location", loc.Key(), "error", err)
				mu.Lock()
				providerError = errors.Join(providerError, fmt.Errorf("%s: %w", p.Name(), err))
				mu.Unlock()
				return
			}

			mu.Lock()
			defer mu.Unlock()
			for _, r := range readings {
				d := DayOf(r.Date)
				r.Date = d
				dayReadings[d] = append(dayReadings[d], r)
			}
		}(p)
	}

	wg.Wait()

	if len(dayReadings) == 0 {
		if providerError != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoForecast, providerError)
		}
		return nil, ErrNoForecast
	}

	dates := make([]time.Time, 0, len(dayReadings))
	for d := range dayReadings {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	forecast := make(Forecast, 0, s.days)
	for _, d := range dates {
		if len(forecast) >= s.days {
			break
		}
		forecast = append(forecast, AggregateDay(d, dayReadings[d]))
	}

	return forecast, nil
}
