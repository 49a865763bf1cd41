package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/activity-recommender/internal/activity"
	httpapi "github.com/i474232898/activity-recommender/internal/api/http"
	"github.com/i474232898/activity-recommender/internal/cities"
	"github.com/i474232898/activity-recommender/internal/clock"
	"github.com/i474232898/activity-recommender/internal/config"
	"github.com/i474232898/activity-recommender/internal/generator"
	"github.com/i474232898/activity-recommender/internal/logging"
	"github.com/i474232898/activity-recommender/internal/report"
	"github.com/i474232898/activity-recommender/internal/scheduler"
	"github.com/i474232898/activity-recommender/internal/store"
	"github.com/i474232898/activity-recommender/internal/weather"
	"github.com/i474232898/activity-recommender/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	engine, err := activity.NewEngine(cfg.Catalog, activity.WithLimit(cfg.TopN))
	if err != nil {
		log.Error("invalid activity catalog", "error", err)
		os.Exit(1)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers with resilience (backoff + circuit breaker). A provider
	// without credentials is left out; with none, every city uses mock weather.
	providerLog := log.With("component", "providers")
	var provs []weather.Provider
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, providers.WithLogger(providerLog)))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey, providers.WithLogger(providerLog)))
	}
	if cfg.OpenMeteoEnabled {
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient, providers.WithLogger(providerLog)))
	}

	service := weather.NewService(provs, cfg.WeatherTimeout, log.With("component", "weather"))

	var geo cities.Geocoder
	if cfg.GeocoderAPIKey != "" {
		geo = cities.NewGoogleGeocoder(cfg.GeocoderAPIKey)
	}
	locs, geoErrs := cities.Resolve(context.Background(), cfg.Cities, geo, log.With("component", "cities"))
	if len(geoErrs) > 0 {
		log.Warn("some cities were dropped", "count", len(geoErrs))
	}

	memStore := store.NewMemoryStore()
	gen := generator.New(locs, generator.Deps{
		Engine:    engine,
		Weather:   service,
		Clock:     clock.System{},
		Publisher: report.NewFileWriter(cfg.OutputDir),
		Sink:      memStore,
		Logger:    log.With("component", "generator"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary := gen.Run(ctx)
	log.Info("batch finished",
		"run_id", summary.RunID,
		"succeeded", len(summary.Succeeded),
		"failed", len(summary.Failed),
		"providers", service.Providers(),
	)

	if cfg.ServeAddr == "" {
		return
	}

	// Scheduler that periodically regenerates every city.
	sched := scheduler.New(gen, cfg.ScheduleInterval, cfg.WeatherTimeout*time.Duration(len(locs)+1), log.With("component", "scheduler"))
	if err := sched.Start(); err != nil {
		log.Error("failed to start scheduler", "error", err)
		return
	}
	defer sched.Stop()

	app := newApp(memStore, cfg.SiteDir)

	go func() {
		log.Info("serving", "addr", cfg.ServeAddr, "site_dir", cfg.SiteDir)
		if err := app.Listen(cfg.ServeAddr); err != nil {
			log.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("error during shutdown", "error", err)
	}
}

func newApp(reports httpapi.Reports, siteDir string) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "activity-recommender",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
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
			"service": "activity-recommender",
		})
	})

	httpapi.RegisterRoutes(app, reports)

	// The static site loads data/<city>.json relative to its root.
	app.Static("/", siteDir)
	return app
}
