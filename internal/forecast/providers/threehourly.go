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

// threeHourlyWindowSize is 8 points of 3 hours each, roughly the next 24 hours.
const threeHourlyWindowSize = 8

// ThreeHourlySource fetches 3-hourly forecasts from the OpenWeatherMap
// data/2.5 forecast API. It is the fallback for accounts without One Call
// access; unlike the hourly API it sometimes omits the precipitation
// probability, which normalizes to 0.
type ThreeHourlySource struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewThreeHourlySource(client *http.Client, apiKey string, logger *zap.Logger) *ThreeHourlySource {
	return &ThreeHourlySource{
		name:    "3h-forecast",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/forecast",
		client:  client,
		logger:  logger,
	}
}

func (s *ThreeHourlySource) Name() string {
	return s.name
}

func (s *ThreeHourlySource) FetchWindow(ctx context.Context, lat, lon float64) (forecast.Window, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("3h-forecast api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	values.Set("appid", s.apiKey)
	values.Set("units", "imperial")
	values.Set("cnt", strconv.Itoa(threeHourlyWindowSize))

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("fetching 3-hourly forecast", zap.Float64("lat", lat), zap.Float64("lon", lon))

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("3h-forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, fmt.Errorf("3h-forecast: %w", err)
	}

	var payload struct {
		List []struct {
			Dt   int64 `json:"dt"`
			Main struct {
				Temp float64 `json:"temp"`
			} `json:"main"`
			// Pop is not guaranteed on this endpoint.
			Pop     *float64 `json:"pop"`
			Weather []struct {
				Main        string `json:"main"`
				Description string `json:"description"`
			} `json:"weather"`
		} `json:"list"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("3h-forecast decode: %w", err)
	}

	list := payload.List
	if len(list) > threeHourlyWindowSize {
		list = list[:threeHourlyWindowSize]
	}

	window := make(forecast.Window, 0, len(list))
	for _, e := range list {
		var main, desc string
		if len(e.Weather) > 0 {
			main = e.Weather[0].Main
			desc = e.Weather[0].Description
		}
		var pop float64
		if e.Pop != nil {
			pop = *e.Pop
		}
		window = append(window, forecast.Point{
			Timestamp:   time.Unix(e.Dt, 0).UTC(),
			Temperature: e.Main.Temp,
			Condition:   forecast.Condition(main),
			Description: desc,
			POP:         pop,
		})
	}

	if err := window.Validate(); err != nil {
		return nil, fmt.Errorf("3h-forecast: %w", err)
	}
	return window, nil
}

var _ forecast.Source = (*ThreeHourlySource)(nil)
