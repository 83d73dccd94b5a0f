package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("WEATHER_API_KEY", "test-key")
	t.Setenv("SENDER_EMAIL", "sender@example.com")
	t.Setenv("SENDER_PASSWORD", "app-password")
}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LOCATION", "FORECAST_SOURCE", "SMTP_SERVER", "SMTP_PORT",
		"RECIPIENT_EMAIL", "HTTP_TIMEOUT", "TIME_ZONE", "RUN_AT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	clearOptional(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Location != "Boston,MA" {
		t.Fatalf("Location = %q", cfg.Location)
	}
	if cfg.ForecastSource != SourceOneCall {
		t.Fatalf("ForecastSource = %q", cfg.ForecastSource)
	}
	if cfg.SMTPServer != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Fatalf("SMTP defaults = %s:%d", cfg.SMTPServer, cfg.SMTPPort)
	}
	if cfg.RecipientEmail != "sender@example.com" {
		t.Fatalf("recipient should default to sender, got %q", cfg.RecipientEmail)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if cfg.TimeZone == nil {
		t.Fatal("TimeZone must never be nil")
	}
}

func TestLoadFailsWithoutRequiredCredentials(t *testing.T) {
	clearOptional(t)
	t.Setenv("WEATHER_API_KEY", "")
	t.Setenv("SENDER_EMAIL", "")
	t.Setenv("SENDER_PASSWORD", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when required credentials are missing")
	}
}

func TestLoadRejectsBadSenderAddress(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("SENDER_EMAIL", "not-an-address")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a malformed sender address")
	}
}

func TestLoadRejectsUnknownForecastSource(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("FORECAST_SOURCE", "psychic")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown forecast source")
	}
}

func TestLoadRejectsBadRunAt(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("RUN_AT", "quarter past seven")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unparseable RUN_AT")
	}
}

func TestLoadAcceptsRunAt(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("RUN_AT", "07:30")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.RunAt != "07:30" {
		t.Fatalf("RunAt = %q", cfg.RunAt)
	}
}

func TestLoadRejectsBadTimeZone(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("TIME_ZONE", "Mars/Olympus_Mons")

	_, err := Load()
	if err == nil {
		t.Fatal("expected an error for an unknown time zone")
	}
	if !strings.Contains(err.Error(), "TIME_ZONE") {
		t.Fatalf("error should name the offending variable, got %q", err)
	}
}

func TestLoadParsesTimeZone(t *testing.T) {
	setRequired(t)
	clearOptional(t)
	t.Setenv("TIME_ZONE", "America/New_York")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TimeZone.String() != "America/New_York" {
		t.Fatalf("TimeZone = %v", cfg.TimeZone)
	}
}
