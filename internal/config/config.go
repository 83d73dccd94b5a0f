package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Source selection values for FORECAST_SOURCE.
const (
	SourceOneCall     = "onecall"
	SourceThreeHourly = "3h"
)

var validate = validator.New()

type AppConfig struct {
	// OpenWeatherMap key, shared by geocoding and forecast calls.
	WeatherAPIKey string `validate:"required"`

	// Location is a place-name query or a literal "lat,lon" pair.
	Location string `validate:"required"`

	// ForecastSource picks the hourly or the 3-hourly API.
	ForecastSource string `validate:"oneof=onecall 3h"`

	SMTPServer     string `validate:"required"`
	SMTPPort       int    `validate:"min=1,max=65535"`
	SenderEmail    string `validate:"required,email"`
	SenderPassword string `validate:"required"`
	RecipientEmail string `validate:"required,email"`

	// HTTPTimeout applies to the shared outbound HTTP client.
	HTTPTimeout time.Duration

	// TimeZone is used when rendering point times.
	TimeZone *time.Location

	// RunAt, when set ("HH:MM"), switches to a daily scheduled run.
	RunAt string `validate:"omitempty,datetime=15:04"`
}

// Load reads configuration from environment with sensible defaults. Required
// credentials are validated here so a misconfigured run fails before any
// network call.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		WeatherAPIKey:  os.Getenv("WEATHER_API_KEY"),
		Location:       getenvDefault("LOCATION", "Boston,MA"),
		ForecastSource: getenvDefault("FORECAST_SOURCE", SourceOneCall),
		SMTPServer:     getenvDefault("SMTP_SERVER", "smtp.gmail.com"),
		SenderEmail:    os.Getenv("SENDER_EMAIL"),
		SenderPassword: os.Getenv("SENDER_PASSWORD"),
		RunAt:          os.Getenv("RUN_AT"),
	}

	cfg.SMTPPort = getenvInt("SMTP_PORT", 587)
	cfg.RecipientEmail = getenvDefault("RECIPIENT_EMAIL", cfg.SenderEmail)

	timeoutStr := getenvDefault("HTTP_TIMEOUT", "15s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	cfg.TimeZone = time.Local
	if tz := os.Getenv("TIME_ZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return nil, fmt.Errorf("invalid TIME_ZONE: %w", err)
		}
		cfg.TimeZone = loc
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
