// Package scheduler keeps the resolved location's forecast fresh.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/today-forecast/internal/resolver"
)

// Refresher re-fetches the forecast of the current location.
type Refresher interface {
	Refresh(ctx context.Context) (resolver.Result, error)
}

// Scheduler periodically refreshes the forecast for the resolved location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
}

// New creates a new Scheduler. An interval <= 0 disables it.
func New(interval, timeout time.Duration, refresher Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: s,
		refresher: refresher,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("scheduler: started", "interval", s.interval)
	return nil
}

// RefreshNow runs one refresh immediately, whether or not the periodic job is
// enabled. Used at startup to replace a restored forecast.
func (s *Scheduler) RefreshNow() {
	s.run()
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.refresher.Refresh(ctx)
	switch {
	case errors.Is(err, resolver.ErrNoLocation):
		slog.Debug("scheduler: nothing to refresh yet")
	case errors.Is(err, resolver.ErrInProgress):
		slog.Debug("scheduler: resolution in flight, skipping refresh")
	case err != nil:
		slog.Warn("scheduler: refresh failed", "error", err)
	default:
		slog.Info("scheduler: forecast refreshed", "location", res.Location.Key(), "days", len(res.Forecast))
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
