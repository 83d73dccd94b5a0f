package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/umbrella-advisor/internal/forecast"
)

// hourlyWindowSize caps the One Call window at the next 24 hourly points.
const hourlyWindowSize = 24

// OneCallSource fetches hourly forecasts from the OpenWeatherMap One Call API 3.0.
type OneCallSource struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewOneCallSource(client *http.Client, apiKey string, logger *zap.Logger) *OneCallSource {
	return &OneCallSource{
		name:    "onecall",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		client:  client,
		logger:  logger,
	}
}

func (s *OneCallSource) Name() string {
	return s.name
}

func (s *OneCallSource) FetchWindow(ctx context.Context, lat, lon float64) (forecast.Window, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("onecall api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", s.apiKey)
	values.Set("units", "imperial")
	values.Set("exclude", "minutely,daily,alerts")

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetching hourly forecast", zap.Float64("lat", lat), zap.Float64("lon", lon))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("onecall request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("onecall: %w", err)
	}

	var payload struct {
		Hourly []struct {
			Dt      int64   `json:"dt"`
			Temp    float64 `json:"temp"`
			Pop     float64 `json:"pop"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("onecall decode: %w", err)
	}

	hourly := payload.Hourly
	if len(hourly) > hourlyWindowSize {
		hourly = hourly[:hourlyWindowSize]
	}

	window := make(forecast.Window, 0, len(hourly))
	for _, h := range hourly {
		var main, desc string
		if len(h.Weather) > 0 {
			main = h.Weather[0].Main
			desc = h.Weather[0].Description
		}
		window = append(window, forecast.Point{
			Timestamp:   time.Unix(h.Dt, 0).UTC(),
			Temperature: h.Temp,
			Condition:   forecast.Condition(main),
			Description: desc,
			POP:         h.Pop,
		})
	}

	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("onecall: %w", err)
	}
	return window, nil
}

var _ forecast.Source = (*OneCallSource)(nil)
