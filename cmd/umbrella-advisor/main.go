package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/i474232898/umbrella-advisor/internal/advisor"
	"github.com/i474232898/umbrella-advisor/internal/config"
	"github.com/i474232898/umbrella-advisor/internal/forecast"
	"github.com/i474232898/umbrella-advisor/internal/forecast/providers"
	"github.com/i474232898/umbrella-advisor/internal/location"
	"github.com/i474232898/umbrella-advisor/internal/notify"
	"github.com/i474232898/umbrella-advisor/internal/scheduler"
)

func main() {
	// Load configuration. Missing credentials abort here, before any network call.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	// Shared HTTP client for outbound geocoding and forecast calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	resolver := location.NewResolver(httpClient, cfg.WeatherAPIKey, logger)

	var source forecast.Source
	switch cfg.ForecastSource {
	case config.SourceThreeHourly:
		source = providers.NewThreeHourlySource(httpClient, cfg.WeatherAPIKey, logger)
	default:
		source = providers.NewOneCallSource(httpClient, cfg.WeatherAPIKey, logger)
	}

	if cfg.RunAt != "" {
		// Scheduled mode fetches repeatedly from one process; keep the calls
		// inside the OpenWeatherMap free-tier 60 calls/minute quota.
		source = forecast.NewRateLimitedSource(source, 1.0, 1)
	}

	mailer := notify.NewMailer(cfg.SMTPServer, cfg.SMTPPort,
		cfg.SenderEmail, cfg.SenderPassword, cfg.RecipientEmail, logger)

	run := func() error {
		return runOnce(cfg, resolver, source, mailer, logger)
	}

	if cfg.RunAt == "" {
		if err := run(); err != nil {
			logger.Error("run failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	sched := scheduler.New(cfg.RunAt, cfg.TimeZone, run, logger)
	defer sched.Stop()

	logger.Info("running on a daily schedule", zap.String("at", cfg.RunAt))
	if err := sched.Start(); err != nil {
		logger.Error("failed to start scheduler", zap.Error(err))
		os.Exit(1)
	}
}

// runOnce executes the whole pipeline: resolve the location, fetch the
// forecast window, classify it, deliver the recommendation. Any failure
// aborts the run with nothing sent.
func runOnce(cfg *config.AppConfig, resolver *location.Resolver, source forecast.Source,
	mailer *notify.Mailer, logger *zap.Logger) error {
	ctx := context.Background()

	place, err := resolver.Resolve(ctx, cfg.Location)
	if err != nil {
		return fmt.Errorf("resolve location %q: %w", cfg.Location, err)
	}

	window, err := source.FetchWindow(ctx, place.Lat, place.Lon)
	if err != nil {
		return fmt.Errorf("fetch forecast for %s: %w", place.Name, err)
	}

	rec, err := advisor.Advise(window, cfg.TimeZone)
	if err != nil {
		return fmt.Errorf("classify forecast: %w", err)
	}

	if err := mailer.Send(ctx, rec, place.Name); err != nil {
		return err
	}

	logger.Info("recommendation delivered",
		zap.String("location", place.Name),
		zap.Bool("needs_umbrella", rec.NeedsUmbrella),
		zap.Int("points", len(window)),
	)
	return nil
}
