package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/today-forecast/internal/common"
	"github.com/i474232898/today-forecast/internal/weather"
)

// WeatherAPIProvider implements weather.ForecastProvider for WeatherAPI.com.
type WeatherAPIProvider struct {
	base
}

func NewWeatherAPIProvider(client *http.Client, apiKey string, opts ...Option) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		base: newBase("weatherapi", "https://api.weatherapi.com/v1/forecast.json", apiKey, client, opts),
	}
}

func (p *WeatherAPIProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) ([]weather.DailyReading, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI accepts "lat,lon" in q.
	values.Set("q", fmt.Sprintf("%s,%s",
		strconv.FormatFloat(loc.Lat, 'f', -1, 64),
		strconv.FormatFloat(loc.Long, 'f', -1, 64)))
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")

	resp, err := p.get(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Day  struct {
					MaxTempC  float64 `json:"maxtemp_c"`
					MinTempC  float64 `json:"mintemp_c"`
					AvgTempC  float64 `json:"avgtemp_c"`
					Condition struct {
						Text string `json:"text"`
					} `json:"condition"`
				} `json:"day"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	readings := make([]weather.DailyReading, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		date, err := time.Parse("2006-01-02", fd.Date)
		if err != nil {
			return nil, fmt.Errorf("weatherapi: invalid date %q: %w", fd.Date, err)
		}
		readings = append(readings, weather.DailyReading{
			ProviderName: p.name,
			Date:         date,
			MinC:         fd.Day.MinTempC,
			MaxC:         fd.Day.MaxTempC,
			AvgC:         fd.Day.AvgTempC,
			Condition:    mapWeatherAPICondition(fd.Day.Condition.Text),
		})
	}

	return readings, nil
}

func mapWeatherAPICondition(text string) weather.Condition {
	switch {
	case text == "":
		return weather.ConditionUnknown
	case common.HasAny(text, "thunder"):
		return weather.ConditionThunderstorm
	case common.HasAny(text, "sleet", "ice pellets", "freezing"):
		return weather.ConditionSleet
	case common.HasAny(text, "snow", "blizzard"):
		return weather.ConditionSnow
	case common.HasAny(text, "heavy rain", "torrential"):
		return weather.ConditionHeavyRain
	case common.HasAny(text, "shower"):
		return weather.ConditionShowers
	case common.HasAny(text, "rain", "drizzle"):
		return weather.ConditionLightRain
	case common.HasAny(text, "partly cloudy"):
		return weather.ConditionLightCloud
	case common.HasAny(text, "cloud", "overcast", "mist", "fog"):
		return weather.ConditionHeavyCloud
	case common.HasAny(text, "sunny", "clear"):
		return weather.ConditionClear
	default:
		return weather.ConditionUnknown
	}
}
