package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/i474232898/today-forecast/internal/weather"
)

// OpenWeatherProvider implements weather.ForecastProvider on top of the
// OpenWeatherMap 5 day / 3 hour forecast, folded into days.
type OpenWeatherProvider struct {
	base
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts ...Option) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		base: newBase("openweathermap", "https://api.openweathermap.org/data/2.5/forecast", apiKey, client, opts),
	}
}

func (p *OpenWeatherProvider) FetchForecast(ctx context.Context, loc weather.Location, days int) ([]weather.DailyReading, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	values.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(loc.Long, 'f', -1, 64))

	resp, err := p.get(ctx, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp    float64 `json:"temp"`
				TempMin float64 `json:"temp_min"`
				TempMax float64 `json:"temp_max"`
			} `json:"main"`
			Weather []struct {
				ID int `json:"id"`
			} `json:"weather"`
		} `json:"list"`
		City struct {
			Timezone int `json:"timezone"` // offset from UTC in seconds
		} `json:"city"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	type bucket struct {
		sum, min, max float64
		n             int
		conditions    map[weather.Condition]int
	}

	offset := time.Duration(payload.City.Timezone) * time.Second
	buckets := make(map[time.Time]*bucket)

	for _, item := range payload.List {
		local := time.Unix(item.Dt, 0).UTC().Add(offset)
		day := weather.DayOf(local)

		b, ok := buckets[day]
		if !ok {
			b = &bucket{min: math.Inf(1), max: math.Inf(-1), conditions: make(map[weather.Condition]int)}
			buckets[day] = b
		}
		b.sum += item.Main.Temp
		b.n++
		b.min = math.Min(b.min, item.Main.TempMin)
		b.max = math.Max(b.max, item.Main.TempMax)
		if len(item.Weather) > 0 {
			if c := mapOpenWeatherCondition(item.Weather[0].ID); c.Known() {
				b.conditions[c]++
			}
		}
	}

	dates := make([]time.Time, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) > days {
		dates = dates[:days]
	}

	readings := make([]weather.DailyReading, 0, len(dates))
	for _, d := range dates {
		b := buckets[d]
		readings = append(readings, weather.DailyReading{
			ProviderName: p.name,
			Date:         d,
			MinC:         b.min,
			MaxC:         b.max,
			AvgC:         b.sum / float64(b.n),
			Condition:    majority(b.conditions),
		})
	}

	return readings, nil
}

func majority(counts map[weather.Condition]int) weather.Condition {
	best := weather.ConditionUnknown
	bestCount := 0
	for _, c := range weather.Conditions {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best
}

// mapOpenWeatherCondition maps OpenWeatherMap condition IDs.
func mapOpenWeatherCondition(id int) weather.Condition {
	switch {
	case id >= 200 && id < 300:
		return weather.ConditionThunderstorm
	case id >= 300 && id < 400, id == 500 || id == 501:
		return weather.ConditionLightRain
	case id >= 502 && id <= 504:
		return weather.ConditionHeavyRain
	case id == 511, id >= 611 && id <= 616:
		return weather.ConditionSleet
	case id >= 520 && id <= 531:
		return weather.ConditionShowers
	case id >= 600 && id < 700:
		return weather.ConditionSnow
	case id >= 700 && id < 800:
		return weather.ConditionHeavyCloud
	case id == 800:
		return weather.ConditionClear
	case id == 801 || id == 802:
		return weather.ConditionLightCloud
	case id == 803 || id == 804:
		return weather.ConditionHeavyCloud
	default:
		return weather.ConditionUnknown
	}
}
