package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/today-forecast/internal/i18n"
	"github.com/i474232898/today-forecast/internal/state"
	"github.com/i474232898/today-forecast/internal/units"
	"github.com/i474232898/today-forecast/internal/weather"
)

var friday = time.Date(2020, time.June, 5, 9, 30, 0, 0, time.UTC)

func catalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.NewCatalog("en")
	require.NoError(t, err)
	return c
}

func TestDeriveCelsiusAndFahrenheit(t *testing.T) {
	tr := catalog(t).Lookup("en")
	in := Inputs{
		Location: weather.Location{Name: "NYC", WOEID: 123},
		Forecast: weather.Forecast{{Weather: weather.ConditionClear, Temp: weather.Temp{Avg: 20}}},
		Ui:       state.UiState{Onboarding: false, IsCelsius: true},
		Now:      friday,
	}

	c := Derive(in, tr)
	assert.True(t, c.HasWeather)
	assert.Equal(t, 20.0, c.Temperature)
	assert.Equal(t, units.Celsius, c.Unit)
	assert.Equal(t, "20ºC", c.TemperatureText)
	assert.Equal(t, "Clear", c.ConditionLabel)
	assert.Equal(t, "weather_clear.png", c.Icon)
	assert.Equal(t, "NYC", c.LocationName)
	assert.Equal(t, "Fri, 5 Jun", c.Date)
	assert.Equal(t, "Today", c.TodayLabel)
	assert.Empty(t, c.Welcome)

	forecastBefore := in.Forecast.Clone()
	in.Ui.IsCelsius = false
	f := Derive(in, tr)
	assert.Equal(t, 68.0, f.Temperature)
	assert.Equal(t, units.Fahrenheit, f.Unit)
	assert.Equal(t, "68ºF", f.TemperatureText)

	// Only the displayed number and unit change.
	assert.Equal(t, forecastBefore, in.Forecast)
	c.Temperature, c.Unit, c.TemperatureText = f.Temperature, f.Unit, f.TemperatureText
	assert.Equal(t, c, f)
}

func TestDeriveOnboarding(t *testing.T) {
	d := Derive(Inputs{Ui: state.InitialUi, Now: friday, Loading: true}, catalog(t).Lookup("es"))
	assert.True(t, d.Onboarding)
	assert.True(t, d.Loading)
	assert.NotEmpty(t, d.Welcome)
	assert.False(t, d.HasWeather)
	assert.Equal(t, FallbackIcon, d.Icon)
	assert.Equal(t, "Ubicación desconocida", d.LocationName)
	assert.Equal(t, "Buscar lugares", d.SearchLabel)
}

func TestDeriveMissingCondition(t *testing.T) {
	in := Inputs{
		Forecast: weather.Forecast{{Temp: weather.Temp{Avg: -3}}},
		Ui:       state.UiState{IsCelsius: true},
		Now:      friday,
	}
	d := Derive(in, catalog(t).Default())
	assert.Equal(t, FallbackIcon, d.Icon)
	assert.Empty(t, d.ConditionLabel)
	assert.Equal(t, "-3ºC", d.TemperatureText)
}

func TestIconFor(t *testing.T) {
	assert.Equal(t, "weather_thunderstorm.png", IconFor(weather.ConditionThunderstorm))
	assert.Equal(t, FallbackIcon, IconFor(weather.ConditionUnknown))
	assert.Equal(t, FallbackIcon, IconFor("fog"))
	for _, c := range weather.Conditions {
		assert.Contains(t, icons, c)
	}
}

func TestFormatTemperature(t *testing.T) {
	assert.Equal(t, "68.9ºF", FormatTemperature(68.94, units.Fahrenheit))
	assert.Equal(t, "0ºC", FormatTemperature(0.01, units.Celsius))
}

func TestDeriveSkipsPastDays(t *testing.T) {
	in := Inputs{
		Forecast: weather.Forecast{
			{Date: time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC), Weather: weather.ConditionSnow, Temp: weather.Temp{Avg: -5}},
			{Date: time.Date(2020, time.June, 5, 0, 0, 0, 0, time.UTC), Weather: weather.ConditionClear, Temp: weather.Temp{Avg: 25}},
		},
		Ui:  state.UiState{IsCelsius: true},
		Now: friday,
	}
	tr := catalog(t).Lookup("en")

	d := Derive(in, tr)
	assert.Equal(t, "Fri, 5 Jun", d.Date)
	assert.Equal(t, weather.ConditionClear, d.Condition)
	assert.Equal(t, "25ºC", d.TemperatureText)

	// A snapshot whose days are all behind the clock shows no weather.
	in.Now = friday.AddDate(0, 0, 3)
	d = Derive(in, tr)
	assert.False(t, d.HasWeather)
	assert.Equal(t, FallbackIcon, d.Icon)
	assert.Empty(t, d.TemperatureText)
}

type loadingFlag bool

func (l loadingFlag) Loading() bool { return bool(l) }

func TestCoordinatorReadsStores(t *testing.T) {
	loc := state.NewLocationStore(weather.Location{})
	wx := state.NewWeatherStore(nil)
	ui := state.NewUiStore(state.InitialUi)
	c := NewCoordinator(loc, wx, ui, &state.Group{}, loadingFlag(false), catalog(t), func() time.Time { return friday })

	d := c.Current("")
	assert.True(t, d.Onboarding)
	assert.False(t, d.HasWeather)

	require.NoError(t, loc.Dispatch(state.Action{Type: state.ActionUpdate, Payload: weather.Location{Name: "Paris"}}))
	require.NoError(t, wx.Dispatch(state.Action{Type: state.ActionUpdate, Payload: weather.Forecast{{Weather: weather.ConditionShowers, Temp: weather.Temp{Avg: 11}}}}))
	require.NoError(t, ui.Dispatch(state.Action{Type: state.ActionDisableOnboarding}))
	require.NoError(t, ui.Dispatch(state.Action{Type: state.ActionSetUnits, Payload: false}))

	d = c.Current("fr-FR")
	assert.False(t, d.Onboarding)
	assert.Equal(t, "Paris", d.LocationName)
	assert.Equal(t, "Averses", d.ConditionLabel)
	assert.Equal(t, "weather_showers.png", d.Icon)
	assert.InDelta(t, 51.8, d.Temperature, 1e-9)
	assert.Equal(t, units.Fahrenheit, d.Unit)
	assert.Equal(t, friday, c.Inputs().Now)
}
