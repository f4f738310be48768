package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/i474232898/today-forecast/internal/weather"
)

// OpenMeteoProvider implements weather.ForecastProvider for Open-Meteo.
// No API key is required.
type OpenMeteoProvider struct {
	base
}

func NewOpenMeteoProvider(client *http.Client, opts ...Option) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		base: newBase("openmeteo", "https://api.open-meteo.com/v1/forecast", "", client, opts),
	}
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) ([]weather.DailyReading, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Long, 'f', -1, 64))
	values.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,temperature_2m_mean")
	values.Set("timezone", "auto")
	values.Set("forecast_days", strconv.Itoa(days))

	resp, err := p.get(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		Daily struct {
			Time        []string   `json:"time"`
			WeatherCode []int      `json:"weathercode"`
			TempMax     []float64  `json:"temperature_2m_max"`
			TempMin     []float64  `json:"temperature_2m_min"`
			TempMean    []*float64 `json:"temperature_2m_mean"`
		} `json:"daily"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	d := payload.Daily
	n := len(d.Time)
	if len(d.WeatherCode) < n || len(d.TempMax) < n || len(d.TempMin) < n {
		return nil, fmt.Errorf("openmeteo: daily arrays have mismatched lengths")
	}

	readings := make([]weather.DailyReading, 0, n)
	for i := 0; i < n; i++ {
		date, err := time.Parse("2006-01-02", d.Time[i])
		if err != nil {
			return nil, fmt.Errorf("openmeteo: invalid date %q: %w", d.Time[i], err)
		}

		avg := (d.TempMax[i] + d.TempMin[i]) / 2
		if i < len(d.TempMean) && d.TempMean[i] != nil {
			avg = *d.TempMean[i]
		}

		readings = append(readings, weather.DailyReading{
			ProviderName: p.name,
			Date:         date,
			MinC:         d.TempMin[i],
			MaxC:         d.TempMax[i],
			AvgC:         avg,
			Condition:    mapOpenMeteoCondition(d.WeatherCode[i]),
		})
	}

	return readings, nil
}

// mapOpenMeteoCondition maps WMO weather interpretation codes.
func mapOpenMeteoCondition(code int) weather.Condition {
	switch {
	case code == 0:
		return weather.ConditionClear
	case code == 1 || code == 2:
		return weather.ConditionLightCloud
	case code == 3 || code == 45 || code == 48:
		return weather.ConditionHeavyCloud
	case code >= 51 && code <= 55, code == 61:
		return weather.ConditionLightRain
	case code == 56 || code == 57 || code == 66 || code == 67:
		return weather.ConditionSleet
	case code == 63 || code == 65:
		return weather.ConditionHeavyRain
	case code >= 71 && code <= 77, code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 80 && code <= 82:
		return weather.ConditionShowers
	case code == 95:
		return weather.ConditionThunderstorm
	case code == 96 || code == 99:
		return weather.ConditionHail
	default:
		return weather.ConditionUnknown
	}
}
