package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/umbrella-advisor/internal/forecast"
)

func TestOneCallNormalizesHourly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "imperial" {
			t.Errorf("units = %q, want imperial", got)
		}
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want test-key", got)
		}
		fmt.Fprint(w, `{"hourly":[
			{"dt":1700000000,"temp":52.4,"pop":0.12,"weather":[{"main":"Clouds","description":"broken clouds"}]},
			{"dt":1700003600,"temp":50.1,"pop":0.8,"weather":[{"main":"Rain","description":"light rain"}]}
		]}`)
	}))
	defer srv.Close()

	src := NewOneCallSource(srv.Client(), "test-key", zap.NewNop())
	src.baseURL = srv.URL

	window, err := src.FetchWindow(context.Background(), 42.36, -71.06)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 2 {
		t.Fatalf("expected 2 points, got %d", len(window))
	}

	first := window[0]
	if !first.Timestamp.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Fatalf("unexpected timestamp: %v", first.Timestamp)
	}
	if first.Condition != forecast.ConditionClouds || first.Description != "broken clouds" {
		t.Fatalf("unexpected condition: %+v", first)
	}
	if first.POP != 0.12 || first.Temperature != 52.4 {
		t.Fatalf("unexpected numeric fields: %+v", first)
	}
	if window[1].Condition != forecast.ConditionRain {
		t.Fatalf("unexpected second point: %+v", window[1])
	}
}

func TestOneCallCapsWindowAt24Points(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var entries []string
		for i := 0; i < 48; i++ {
			entries = append(entries, fmt.Sprintf(
				`{"dt":%d,"temp":60,"pop":0,"weather":[{"main":"Clear","description":"clear sky"}]}`,
				1700000000+i*3600))
		}
		fmt.Fprintf(w, `{"hourly":[%s]}`, strings.Join(entries, ","))
	}))
	defer srv.Close()

	src := NewOneCallSource(srv.Client(), "test-key", zap.NewNop())
	src.baseURL = srv.URL

	window, err := src.FetchWindow(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(window) != 24 {
		t.Fatalf("expected window capped at 24 points, got %d", len(window))
	}
}

func TestOneCallErrorCarriesStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, `{"cod":401,"message":"Invalid API key"}`)
	}))
	defer srv.Close()

	src := NewOneCallSource(srv.Client(), "bad-key", zap.NewNop())
	src.baseURL = srv.URL

	_, err := src.FetchWindow(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected an error for a 401 response")
	}
	for _, want := range []string{"401", "Invalid API key"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestOneCallEmptyWindowIsMalformedData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hourly":[]}`)
	}))
	defer srv.Close()

	src := NewOneCallSource(srv.Client(), "test-key", zap.NewNop())
	src.baseURL = srv.URL

	_, err := src.FetchWindow(context.Background(), 0, 0)
	if !errors.Is(err, forecast.ErrEmptyWindow) {
		t.Fatalf("expected ErrEmptyWindow, got %v", err)
	}
}

func TestOneCallRequiresAPIKey(t *testing.T) {
	src := NewOneCallSource(http.DefaultClient, "", zap.NewNop())
	if _, err := src.FetchWindow(context.Background(), 0, 0); err == nil {
		t.Fatal("expected an error without an api key")
	}
}
