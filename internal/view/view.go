// Package view derives what the forecast panel shows from the shared stores.
// Derive is a pure function of its inputs; the clock and locale are explicit.
package view

import (
	"math"
	"strconv"
	"time"

	"github.com/i474232898/today-forecast/internal/i18n"
	"github.com/i474232898/today-forecast/internal/state"
	"github.com/i474232898/today-forecast/internal/units"
	"github.com/i474232898/today-forecast/internal/weather"
)

// FallbackIcon is used when today's condition is missing or unknown.
const FallbackIcon = "weather_clear.png"

var icons = map[weather.Condition]string{
	weather.ConditionSnow:         "weather_snow.png",
	weather.ConditionSleet:        "weather_sleet.png",
	weather.ConditionHail:         "weather_hail.png",
	weather.ConditionThunderstorm: "weather_thunderstorm.png",
	weather.ConditionHeavyRain:    "weather_heavy_rain.png",
	weather.ConditionLightRain:    "weather_light_rain.png",
	weather.ConditionShowers:      "weather_showers.png",
	weather.ConditionHeavyCloud:   "weather_heavy_cloud.png",
	weather.ConditionLightCloud:   "weather_light_cloud.png",
	weather.ConditionClear:        "weather_clear.png",
}

// IconFor returns the image key for a condition.
func IconFor(c weather.Condition) string {
	if icon, ok := icons[c]; ok {
		return icon
	}
	return FallbackIcon
}

// Translator is the string and date lookup Derive needs.
type Translator interface {
	T(key string) string
	FormatDate(t time.Time) string
}

// Inputs is everything the panel depends on.
type Inputs struct {
	Location weather.Location
	Forecast weather.Forecast
	Ui       state.UiState
	Loading  bool
	Now      time.Time
}

// Display is the derived panel state.
type Display struct {
	Onboarding  bool   `json:"onboarding"`
	Loading     bool   `json:"loading"`
	Welcome     string `json:"welcome,omitempty"`
	SearchLabel string `json:"searchLabel"`

	HasWeather      bool              `json:"hasWeather"`
	Temperature     float64           `json:"temperature"`
	Unit            units.Unit        `json:"unit"`
	TemperatureText string            `json:"temperatureText"`
	Condition       weather.Condition `json:"condition"`
	ConditionLabel  string            `json:"conditionLabel"`
	Icon            string            `json:"icon"`

	TodayLabel   string `json:"todayLabel"`
	Date         string `json:"date"`
	LocationName string `json:"locationName"`
}

// Derive computes the Display for in.
func Derive(in Inputs, tr Translator) Display {
	d := Display{
		Onboarding:   in.Ui.Onboarding,
		Loading:      in.Loading,
		SearchLabel:  tr.T(i18n.KeySearchButton),
		Unit:         units.UnitFor(in.Ui.IsCelsius),
		Icon:         FallbackIcon,
		TodayLabel:   tr.T(i18n.KeyToday),
		Date:         tr.FormatDate(in.Now),
		LocationName: in.Location.Name,
	}
	if in.Ui.Onboarding {
		d.Welcome = tr.T(i18n.KeyWelcome)
	}
	if d.LocationName == "" {
		d.LocationName = tr.T(i18n.KeyUnknownLocation)
	}

	today, ok := in.Forecast.Today(in.Now)
	if !ok {
		return d
	}

	d.HasWeather = true
	d.Temperature = units.Display(today.Temp.Avg, in.Ui.IsCelsius)
	d.TemperatureText = FormatTemperature(d.Temperature, d.Unit)
	d.Condition = today.Weather
	d.Icon = IconFor(today.Weather)
	if today.Weather != weather.ConditionUnknown {
		d.ConditionLabel = tr.T(i18n.WeatherKey(string(today.Weather)))
	}
	return d
}

// FormatTemperature renders v with one decimal at most, e.g. "20ºC", "68.9ºF".
func FormatTemperature(v float64, u units.Unit) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "º" + string(u)
}

// Catalog picks a translator for a requested locale.
type Catalog interface {
	Lookup(acceptLanguage string) i18n.Translator
}

// LoadingReporter exposes the resolver's loading flag.
type LoadingReporter interface {
	Loading() bool
}

// Coordinator reads the live stores and derives the Display on demand.
type Coordinator struct {
	location *state.LocationStore
	weather  *state.WeatherStore
	ui       *state.UiStore
	commit   *state.Group
	loading  LoadingReporter
	catalog  Catalog
	now      func() time.Time
}

func NewCoordinator(
	location *state.LocationStore,
	forecast *state.WeatherStore,
	ui *state.UiStore,
	commit *state.Group,
	loading LoadingReporter,
	catalog Catalog,
	now func() time.Time,
) *Coordinator {
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		location: location,
		weather:  forecast,
		ui:       ui,
		commit:   commit,
		loading:  loading,
		catalog:  catalog,
		now:      now,
	}
}

// Inputs snapshots the current stores. Location and Forecast are read under
// the commit group, so they always belong to the same resolution.
func (c *Coordinator) Inputs() Inputs {
	in := Inputs{
		Ui:      c.ui.State(),
		Loading: c.loading.Loading(),
		Now:     c.now(),
	}
	c.commit.View(func() {
		in.Location = c.location.State()
		in.Forecast = c.weather.State()
	})
	return in
}

// Current derives the Display for the given locale preference.
func (c *Coordinator) Current(acceptLanguage string) Display {
	return Derive(c.Inputs(), c.catalog.Lookup(acceptLanguage))
}
