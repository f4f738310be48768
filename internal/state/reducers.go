package state

import (
	"fmt"

	"github.com/i474232898/today-forecast/internal/weather"
)

// UiState is the panel's interface mode.
type UiState struct {
	Onboarding bool `json:"onboarding"`
	IsCelsius  bool `json:"isCelsius"`
}

// InitialUi is the first-run state: onboarding, Celsius.
var InitialUi = UiState{Onboarding: true, IsCelsius: true}

type (
	LocationStore = Store[weather.Location]
	WeatherStore  = Store[weather.Forecast]
	UiStore       = Store[UiState]
)

func NewLocationStore(initial weather.Location) *LocationStore {
	return New("location", initial, LocationReducer)
}

func NewWeatherStore(initial weather.Forecast) *WeatherStore {
	return New("weather", initial.Clone(), WeatherReducer)
}

func NewUiStore(initial UiState) *UiStore {
	return New("ui", initial, UiReducer)
}

// LocationReducer handles "update" with a weather.Location payload.
func LocationReducer(current weather.Location, action Action) (weather.Location, error) {
	switch action.Type {
	case ActionUpdate:
		loc, ok := action.Payload.(weather.Location)
		if !ok {
			return current, fmt.Errorf("%w: want weather.Location, got %T", ErrInvalidPayload, action.Payload)
		}
		return loc, nil
	default:
		return current, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}
}

// WeatherReducer handles "update" with a weather.Forecast payload. The
// forecast is replaced wholesale.
func WeatherReducer(current weather.Forecast, action Action) (weather.Forecast, error) {
	switch action.Type {
	case ActionUpdate:
		f, ok := action.Payload.(weather.Forecast)
		if !ok {
			return current, fmt.Errorf("%w: want weather.Forecast, got %T", ErrInvalidPayload, action.Payload)
		}
		return f.Clone(), nil
	default:
		return current, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}
}

// UiReducer handles "disableOnboarding" and "setUnits" (payload: isCelsius bool).
func UiReducer(current UiState, action Action) (UiState, error) {
	switch action.Type {
	case ActionDisableOnboarding:
		current.Onboarding = false
		return current, nil
	case ActionSetUnits:
		celsius, ok := action.Payload.(bool)
		if !ok {
			return current, fmt.Errorf("%w: want bool, got %T", ErrInvalidPayload, action.Payload)
		}
		current.IsCelsius = celsius
		return current, nil
	default:
		return current, fmt.Errorf("%w: %q", ErrUnknownAction, action.Type)
	}
}
