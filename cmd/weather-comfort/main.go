package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	httpapi "github.com/comfortdash/weather-comfort/internal/api/http"
	"github.com/comfortdash/weather-comfort/internal/cache"
	"github.com/comfortdash/weather-comfort/internal/catalog"
	"github.com/comfortdash/weather-comfort/internal/comfort"
	"github.com/comfortdash/weather-comfort/internal/config"
	"github.com/comfortdash/weather-comfort/internal/dashboard"
	"github.com/comfortdash/weather-comfort/internal/scheduler"
	"github.com/comfortdash/weather-comfort/internal/weather"
	"github.com/comfortdash/weather-comfort/internal/weather/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()
	sugar := zapLogger.Sugar()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// City catalog from static configuration.
	cities := catalog.NewLoader(cfg.CitiesFile, sugar)

	// OpenWeatherMap provider with resilience (backoff + circuit breaker).
	provider := providers.NewOpenWeather(httpClient, cfg.OpenWeatherAPIKey)

	// Per-city TTL cache fronting the provider.
	weatherCache := cache.New(cfg.CacheTTL, nil)

	weatherSvc := weather.NewService(cities, provider, weatherCache, cfg.FetchConcurrency, sugar)
	scorer := comfort.NewScorer(sugar)
	dash := dashboard.NewService(weatherSvc, scorer, sugar)

	// Optional scheduler keeping the cache warm.
	sched := scheduler.New(cfg.RefreshInterval, weatherSvc, sugar)
	if err := sched.Start(); err != nil {
		sugar.Fatalw("failed to start scheduler", "error", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "weather-comfort",
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
				"error": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-comfort",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, dash, weatherSvc, sugar)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			sugar.Errorw("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		sugar.Errorw("error during shutdown", "error", err)
	}
}
