// Package resolver runs the "use my location" workflow: find the device's
// place, fetch its forecast and commit both to the shared stores.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/today-forecast/internal/geo"
	"github.com/i474232898/today-forecast/internal/notice"
	"github.com/i474232898/today-forecast/internal/state"
	"github.com/i474232898/today-forecast/internal/weather"
)

var (
	// ErrLocationUnavailable covers refused permission, unsupported devices
	// and positions that resolve to no usable place.
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrNetwork covers a failed or empty weather fetch.
	ErrNetwork = errors.New("weather fetch failed")
	// ErrInProgress is returned while another resolution or refresh holds the
	// loading flag.
	ErrInProgress = errors.New("location resolution already in progress")
	// ErrNoLocation is returned by Refresh before any place was resolved.
	ErrNoLocation = errors.New("no location resolved yet")
)

// DefaultNotice is shown when a resolution fails.
const DefaultNotice = "To get a forecast for your location, you must enable Location services."

// Locator lists the places around the device, closest first.
type Locator interface {
	Locate(ctx context.Context) ([]geo.Place, error)
}

// WeatherFetcher returns the daily forecast for a location, today first.
type WeatherFetcher interface {
	GetWeather(ctx context.Context, loc weather.Location) (weather.Forecast, error)
}

// Notifier raises a blocking user-facing message.
type Notifier interface {
	Notify(ctx context.Context, message string) notice.Notice
}

// Recorder keeps committed resolutions.
type Recorder interface {
	Record(id uuid.UUID, loc weather.Location, forecast weather.Forecast, at time.Time)
}

// Stores groups the shared stores the resolver writes to. Commit, when set,
// is held while Location and Weather are updated together.
type Stores struct {
	Location *state.LocationStore
	Weather  *state.WeatherStore
	Ui       *state.UiStore
	Commit   *state.Group
}

// Result describes one finished resolution or refresh.
type Result struct {
	ID         uuid.UUID        `json:"id"`
	Location   weather.Location `json:"location"`
	Forecast   weather.Forecast `json:"forecast"`
	ResolvedAt time.Time        `json:"resolvedAt"`
	Notice     *notice.Notice   `json:"notice,omitempty"`
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithRecorder records every committed result.
func WithRecorder(rec Recorder) Option {
	return func(r *Resolver) { r.recorder = rec }
}

// WithNoticeMessage replaces DefaultNotice.
func WithNoticeMessage(msg string) Option {
	return func(r *Resolver) {
		if msg != "" {
			r.message = msg
		}
	}
}

// WithClock sets the time source used for Result.ResolvedAt.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// Resolver owns the loading flag. At most one Resolve or Refresh runs at a
// time; concurrent calls fail fast with ErrInProgress.
type Resolver struct {
	locator  Locator
	fetcher  WeatherFetcher
	stores   Stores
	notifier Notifier
	recorder Recorder
	message  string
	now      func() time.Time

	loading atomic.Bool
}

func New(locator Locator, fetcher WeatherFetcher, stores Stores, notifier Notifier, opts ...Option) *Resolver {
	r := &Resolver{
		locator:  locator,
		fetcher:  fetcher,
		stores:   stores,
		notifier: notifier,
		message:  DefaultNotice,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Loading reports whether a resolution or refresh is in flight.
func (r *Resolver) Loading() bool {
	return r.loading.Load()
}

// Resolve locates the device, fetches the forecast for the closest place and
// commits Location and Weather together. Any failure raises exactly one
// notice and leaves both stores untouched. Onboarding is disabled whatever
// the outcome.
func (r *Resolver) Resolve(ctx context.Context) (Result, error) {
	if !r.loading.CompareAndSwap(false, true) {
		return Result{}, ErrInProgress
	}
	defer r.loading.Store(false)

	res, err := r.resolve(ctx)
	if err != nil {
		slog.Warn("location resolution failed", "error", err)
		n := r.notifier.Notify(ctx, r.message)
		res.Notice = &n
	}

	if derr := r.stores.Ui.Dispatch(state.Action{Type: state.ActionDisableOnboarding}); derr != nil {
		slog.Error("failed to disable onboarding", "error", derr)
	}
	return res, err
}

func (r *Resolver) resolve(ctx context.Context) (Result, error) {
	places, err := r.locator.Locate(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}
	if len(places) == 0 {
		return Result{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, geo.ErrNoPlaces)
	}

	first := places[0]
	pos, err := geo.ParseLattLong(first.LattLong)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}

	loc := weather.Location{
		Name:  first.Title,
		Lat:   pos.Lat,
		Long:  pos.Long,
		WOEID: first.WOEID,
	}

	forecast, err := r.fetch(ctx, loc)
	if err != nil {
		return Result{}, err
	}

	res := r.result(loc, forecast)
	err = r.stores.Commit.Update(func() error {
		if err := r.stores.Location.Dispatch(state.Action{Type: state.ActionUpdate, Payload: loc}); err != nil {
			return err
		}
		return r.stores.Weather.Dispatch(state.Action{Type: state.ActionUpdate, Payload: forecast})
	})
	if err != nil {
		return Result{}, err
	}
	r.record(res)

	slog.Info("location resolved", "id", res.ID, "location", loc.Key(), "name", loc.Name, "days", len(forecast))
	return res, nil
}

// Refresh re-fetches the forecast for the location already held in the
// Location store. It raises no notice and does not touch onboarding.
func (r *Resolver) Refresh(ctx context.Context) (Result, error) {
	if !r.loading.CompareAndSwap(false, true) {
		return Result{}, ErrInProgress
	}
	defer r.loading.Store(false)

	loc := r.stores.Location.State()
	if loc.IsZero() {
		return Result{}, ErrNoLocation
	}

	forecast, err := r.fetch(ctx, loc)
	if err != nil {
		return Result{}, err
	}

	res := r.result(loc, forecast)
	if err := r.stores.Weather.Dispatch(state.Action{Type: state.ActionUpdate, Payload: forecast}); err != nil {
		return Result{}, err
	}
	r.record(res)

	slog.Debug("forecast refreshed", "id", res.ID, "location", loc.Key())
	return res, nil
}

func (r *Resolver) fetch(ctx context.Context, loc weather.Location) (weather.Forecast, error) {
	forecast, err := r.fetcher.GetWeather(ctx, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	if len(forecast) == 0 {
		return nil, fmt.Errorf("%w: empty forecast for %s", ErrNetwork, loc.Key())
	}
	return forecast, nil
}

func (r *Resolver) result(loc weather.Location, forecast weather.Forecast) Result {
	return Result{
		ID:         uuid.New(),
		Location:   loc,
		Forecast:   forecast,
		ResolvedAt: r.now().UTC(),
	}
}

func (r *Resolver) record(res Result) {
	if r.recorder != nil {
		r.recorder.Record(res.ID, res.Location, res.Forecast, res.ResolvedAt)
	}
}
