// Package weather holds the forecast domain types and merges daily
// readings from several providers into one forecast.
package weather

import (
	"time"
)

// Condition is the normalized weather state code of a day. Its values double
// as the suffix of the icon and label lookup keys.
type Condition string

const (
	ConditionUnknown      Condition = ""
	ConditionSnow         Condition = "snow"
	ConditionSleet        Condition = "sleet"
	ConditionHail         Condition = "hail"
	ConditionThunderstorm Condition = "thunderstorm"
	ConditionHeavyRain    Condition = "heavy_rain"
	ConditionLightRain    Condition = "light_rain"
	ConditionShowers      Condition = "showers"
	ConditionHeavyCloud   Condition = "heavy_cloud"
	ConditionLightCloud   Condition = "light_cloud"
	ConditionClear        Condition = "clear"
)

// Conditions lists every known condition, most severe first. Aggregation
// uses this order to break ties.
var Conditions = []Condition{
	ConditionThunderstorm,
	ConditionHail,
	ConditionSnow,
	ConditionSleet,
	ConditionHeavyRain,
	ConditionShowers,
	ConditionLightRain,
	ConditionHeavyCloud,
	ConditionLightCloud,
	ConditionClear,
}

// Known reports whether c is one of the normalized condition codes.
func (c Condition) Known() bool {
	for _, k := range Conditions {
		if k == c {
			return true
		}
	}
	return false
}

// Location is the resolved place the forecast belongs to.
type Location struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Long  float64 `json:"long"`
	WOEID int64   `json:"woeid"`
}

// IsZero reports whether no place has been resolved.
func (l Location) IsZero() bool {
	return l == Location{}
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	if l.WOEID != 0 {
		return "woeid:" + itoa(l.WOEID)
	}
	return "name:" + l.Name
}

// Temp holds the day's temperatures in Celsius.
type Temp struct {
	Avg float64 `json:"avg"`
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Day is one daily forecast record.
type Day struct {
	Date    time.Time `json:"date"` // midnight UTC
	Weather Condition `json:"weather"`
	Temp    Temp      `json:"temp"`

	// Providers contributing to this day.
	Providers []string `json:"providers,omitempty"`
}

// Forecast is a sequence of days in date order, starting today when fresh.
type Forecast []Day

// Today returns the first day that is not before now's calendar day (UTC).
// Undated days are taken in order. ok is false when the forecast is empty or
// every day is already in the past.
func (f Forecast) Today(now time.Time) (Day, bool) {
	start := DayOf(now)
	for _, d := range f {
		if d.Date.IsZero() || !d.Date.Before(start) {
			return d, true
		}
	}
	return Day{}, false
}

// Clone returns a copy that shares no backing arrays with f.
func (f Forecast) Clone() Forecast {
	if f == nil {
		return nil
	}
	out := make(Forecast, len(f))
	for i, d := range f {
		out[i] = d
		if d.Providers != nil {
			out[i].Providers = append([]string(nil), d.Providers...)
		}
	}
	return out
}
