package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/today-forecast/internal/api/http"
	"github.com/i474232898/today-forecast/internal/common"
	"github.com/i474232898/today-forecast/internal/config"
	"github.com/i474232898/today-forecast/internal/geo"
	"github.com/i474232898/today-forecast/internal/i18n"
	"github.com/i474232898/today-forecast/internal/notice"
	"github.com/i474232898/today-forecast/internal/resolver"
	"github.com/i474232898/today-forecast/internal/scheduler"
	"github.com/i474232898/today-forecast/internal/state"
	"github.com/i474232898/today-forecast/internal/store"
	"github.com/i474232898/today-forecast/internal/view"
	"github.com/i474232898/today-forecast/internal/weather"
	"github.com/i474232898/today-forecast/internal/weather/providers"
)

func main() {
	if err := run(); err != nil {
		slog.Error("today-forecast stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	backoff := common.BackoffConfig{
		MaxRetries:      cfg.HTTPMaxRetries,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}

	catalog, err := i18n.NewCatalog(cfg.DefaultLocale)
	if err != nil {
		return fmt.Errorf("failed to build translations: %w", err)
	}

	provs, err := buildProviders(cfg, httpClient, backoff)
	if err != nil {
		return err
	}
	weatherService := weather.NewService(provs, cfg.ForecastDays)

	locator, err := buildLocator(cfg, httpClient, backoff)
	if err != nil {
		return err
	}

	// Restore the last panel state when persistence is enabled.
	initial := store.Snapshot{Ui: state.InitialUi}
	var db *store.SQLiteStore
	if cfg.DatabasePath != "" {
		db, err = store.NewSQLite(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()

		snap, err := db.LoadSnapshot(context.Background())
		switch {
		case err == nil:
			initial = snap
			slog.Info("restored panel state", "location", snap.Location.Name, "updatedAt", snap.UpdatedAt)
		case !errors.Is(err, store.ErrNotFound):
			slog.Warn("could not restore panel state", "error", err)
		}
	}

	stores := resolver.Stores{
		Location: state.NewLocationStore(initial.Location),
		Weather:  state.NewWeatherStore(initial.Forecast),
		Ui:       state.NewUiStore(initial.Ui),
		Commit:   &state.Group{},
	}
	if db != nil {
		stop := store.Persist(context.Background(), db, stores.Location, stores.Weather, stores.Ui)
		defer stop()
	}

	history := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge)
	notices := notice.NewBoard(cfg.NoticeCapacity)

	res := resolver.New(locator, weatherService, stores, notices,
		resolver.WithRecorder(history),
		resolver.WithNoticeMessage(catalog.Default().T(i18n.KeyLocationServices)),
	)
	coordinator := view.NewCoordinator(stores.Location, stores.Weather, stores.Ui, stores.Commit, res, catalog, time.Now)

	sched := scheduler.New(cfg.RefreshInterval, 30*time.Second, res)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// A restored forecast may be days old; refresh it before the first tick.
	if !initial.Location.IsZero() {
		go sched.RefreshNow()
	}

	app := fiber.New(fiber.Config{
		AppName:               "today-forecast",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          2 * cfg.HTTPTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "today-forecast",
			"locales": catalog.Locales(),
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Resolver:    res,
		Stores:      stores,
		Coordinator: coordinator,
		History:     history,
		Notices:     notices,
	})

	go func() {
		slog.Info("listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("error during shutdown", "error", err)
	}
	return nil
}

func buildProviders(cfg *config.AppConfig, client *http.Client, backoff common.BackoffConfig) ([]weather.ForecastProvider, error) {
	var provs []weather.ForecastProvider
	for _, name := range cfg.ForecastProviders {
		var p weather.ForecastProvider
		switch name {
		case "openmeteo":
			p = providers.NewOpenMeteoProvider(client, providers.WithBackoff(backoff))
		case "weatherapi":
			p = providers.NewWeatherAPIProvider(client, cfg.WeatherAPIKey, providers.WithBackoff(backoff))
		case "openweather":
			p = providers.NewOpenWeatherProvider(client, cfg.OpenWeatherAPIKey, providers.WithBackoff(backoff))
		default:
			return nil, fmt.Errorf("unknown forecast provider %q", name)
		}
		provs = append(provs, providers.NewRateLimited(p, cfg.ProviderRPS, cfg.ProviderBurst))
	}
	return provs, nil
}

func buildLocator(cfg *config.AppConfig, client *http.Client, backoff common.BackoffConfig) (*geo.Locator, error) {
	var positioner geo.Positioner
	switch cfg.PositionSource {
	case "ip":
		positioner = geo.NewIPPositioner(client, cfg.IPLookupURL)
	default:
		p, err := geo.NewStaticPositioner(cfg.DeviceLattLong)
		if err != nil {
			return nil, fmt.Errorf("invalid device position: %w", err)
		}
		positioner = p
	}

	var finder geo.PlaceFinder
	switch cfg.PlaceSource {
	case "geocoder":
		finder = geo.NewGeocoderFinder(cfg.GeocoderAPIKey, cfg.HTTPTimeout)
	default:
		finder = geo.NewSearchFinder(client, cfg.PlaceSearchURL, backoff)
	}

	return geo.NewLocator(positioner, finder), nil
}
