package weather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name     string
	readings []DailyReading
	err      error
	gotDays  int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) FetchForecast(_ context.Context, _ Location, days int) ([]DailyReading, error) {
	p.gotDays = days
	return p.readings, p.err
}

var day0 = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func reading(provider string, offset int, avg float64, cond Condition) DailyReading {
	return DailyReading{
		ProviderName: provider,
		Date:         day0.AddDate(0, 0, offset).Add(13 * time.Hour),
		MinC:         avg - 5,
		MaxC:         avg + 5,
		AvgC:         avg,
		Condition:    cond,
	}
}

func TestGetWeatherAggregatesPerDay(t *testing.T) {
	a := &stubProvider{name: "a", readings: []DailyReading{
		reading("a", 1, 12, ConditionLightRain),
		reading("a", 0, 10, ConditionClear),
	}}
	b := &stubProvider{name: "b", readings: []DailyReading{
		reading("b", 0, 20, ConditionClear),
	}}

	svc := NewService([]ForecastProvider{a, b}, 3)
	got, err := svc.GetWeather(context.Background(), Location{Name: "Paris"})
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, day0, got[0].Date)
	assert.Equal(t, ConditionClear, got[0].Weather)
	assert.InDelta(t, 15, got[0].Temp.Avg, 1e-9)
	assert.ElementsMatch(t, []string{"a", "b"}, got[0].Providers)

	assert.Equal(t, day0.AddDate(0, 0, 1), got[1].Date)
	assert.Equal(t, ConditionLightRain, got[1].Weather)
	assert.Equal(t, 3, a.gotDays)
}

func TestGetWeatherTruncatesToDays(t *testing.T) {
	p := &stubProvider{name: "a"}
	for i := 0; i < 10; i++ {
		p.readings = append(p.readings, reading("a", i, float64(i), ConditionClear))
	}
	got, err := NewService([]ForecastProvider{p}, 0).GetWeather(context.Background(), Location{})
	require.NoError(t, err)
	assert.Len(t, got, DefaultDays)
	assert.Equal(t, day0, got[0].Date)
}

func TestGetWeatherPartialFailure(t *testing.T) {
	ok := &stubProvider{name: "ok", readings: []DailyReading{reading("ok", 0, 5, ConditionSnow)}}
	bad := &stubProvider{name: "bad", err: errors.New("boom")}

	got, err := NewService([]ForecastProvider{bad, ok}, 1).GetWeather(context.Background(), Location{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ConditionSnow, got[0].Weather)
}

func TestGetWeatherAllFail(t *testing.T) {
	bad := &stubProvider{name: "bad", err: errors.New("boom")}
	_, err := NewService([]ForecastProvider{bad}, 1).GetWeather(context.Background(), Location{})
	assert.ErrorIs(t, err, ErrNoForecast)
	assert.ErrorContains(t, err, "boom")

	_, err = NewService([]ForecastProvider{&stubProvider{name: "empty"}}, 1).GetWeather(context.Background(), Location{})
	assert.ErrorIs(t, err, ErrNoForecast)

	_, err = NewService(nil, 1).GetWeather(context.Background(), Location{})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestAggregateDayTieGoesToSevere(t *testing.T) {
	d := AggregateDay(day0, []DailyReading{
		reading("a", 0, 10, ConditionClear),
		reading("b", 0, 10, ConditionThunderstorm),
	})
	assert.Equal(t, ConditionThunderstorm, d.Weather)
}

func TestAggregateDayIgnoresUnknownConditions(t *testing.T) {
	d := AggregateDay(day0, []DailyReading{
		reading("a", 0, 10, ConditionUnknown),
		reading("b", 0, 14, ConditionHeavyCloud),
	})
	assert.Equal(t, ConditionHeavyCloud, d.Weather)
	assert.InDelta(t, 12, d.Temp.Avg, 1e-9)

	empty := AggregateDay(day0, nil)
	assert.Equal(t, ConditionUnknown, empty.Weather)
}

func TestLocationKey(t *testing.T) {
	assert.Equal(t, "woeid:2459115", Location{Name: "New York", WOEID: 2459115}.Key())
	assert.Equal(t, "name:Lisbon", Location{Name: "Lisbon"}.Key())
	assert.True(t, Location{}.IsZero())
}

func TestForecastClone(t *testing.T) {
	f := Forecast{{Weather: ConditionClear, Providers: []string{"a"}}}
	c := f.Clone()
	c[0].Providers[0] = "b"
	c[0].Weather = ConditionSnow
	assert.Equal(t, "a", f[0].Providers[0])
	assert.Equal(t, ConditionClear, f[0].Weather)

	today, ok := f.Today(time.Now())
	assert.True(t, ok)
	assert.Equal(t, ConditionClear, today.Weather)
	_, ok = Forecast(nil).Today(time.Now())
	assert.False(t, ok)
}

func TestForecastTodaySkipsPastDays(t *testing.T) {
	f := Forecast{
		{Date: time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), Weather: ConditionSnow},
		{Date: time.Date(2020, 6, 5, 0, 0, 0, 0, time.UTC), Weather: ConditionClear},
		{Date: time.Date(2020, 6, 6, 0, 0, 0, 0, time.UTC), Weather: ConditionShowers},
	}

	today, ok := f.Today(time.Date(2020, 6, 5, 23, 59, 0, 0, time.UTC))
	require.True(t, ok)
	assert.Equal(t, ConditionClear, today.Weather)

	_, ok = f.Today(time.Date(2020, 6, 7, 8, 0, 0, 0, time.UTC))
	assert.False(t, ok)
}
