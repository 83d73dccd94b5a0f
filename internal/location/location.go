// Package location resolves a free-form location descriptor into geographic
// coordinates plus a human-readable display name. A descriptor that is a
// literal "lat,lon" pair is used directly; anything else goes through the
// OpenWeatherMap geocoding API.
package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// maxErrorBody bounds how much of an error response body is carried into the
// returned error.
const maxErrorBody = 2048

// ErrNoMatch is returned when the geocoding source knows no place by the
// queried name.
var ErrNoMatch = errors.New("location not found")

// Place is a resolved location.
type Place struct {
	Lat  float64
	Lon  float64
	Name string
}

// Resolver turns location descriptors into Places.
type Resolver struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewResolver(client *http.Client, apiKey string, logger *zap.Logger) *Resolver {
	return &Resolver{
		apiKey:  apiKey,
		baseURL: "http://api.openweathermap.org/geo/1.0/direct",
		client:  client,
		logger:  logger,
	}
}

// Resolve resolves the descriptor. A pair of comma-separated numeric literals
// is taken as latitude and longitude without any network call; everything
// else is geocoded.
func (r *Resolver) Resolve(ctx context.Context, query string) (Place, error) {
	if p, ok := parseCoordinates(query); ok {
		return p, nil
	}
	return r.geocode(ctx, query)
}

// parseCoordinates recognizes literal "lat,lon" descriptors.
func parseCoordinates(query string) (Place, bool) {
	parts := strings.Split(query, ",")
	if len(parts) != 2 {
		return Place{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Place{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Place{}, false
	}
	return Place{
		Lat:  lat,
		Lon:  lon,
		Name: fmt.Sprintf("Coordinates: %s, %s", formatCoord(lat), formatCoord(lon)),
	}, true
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (r *Resolver) geocode(ctx context.Context, query string) (Place, error) {
	if r.apiKey == "" {
		return Place{}, fmt.Errorf("geocoding api key is not configured")
	}

	values := url.Values{}
	values.Set("q", query)
	values.Set("limit", "1")
	values.Set("appid", r.apiKey)

	u := fmt.Sprintf("%s?%s", r.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Place{}, err
	}

	r.logger.Debug("geocoding location", zap.String("query", query))

	resp, err := r.client.Do(req)
	if err != nil {
		return Place{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return Place{}, fmt.Errorf("geocoding: unexpected status %s: %s", resp.Status, string(body))
	}

	var matches []struct {
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
		Name    string  `json:"name"`
		State   string  `json:"state"`
		Country string  `json:"country"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return Place{}, fmt.Errorf("geocoding decode: %w", err)
	}

	if len(matches) == 0 {
		return Place{}, fmt.Errorf("%w: %q; try adding a region qualifier (e.g. \"Boston,MA,US\")", ErrNoMatch, query)
	}

	m := matches[0]
	name := m.Name
	if m.State != "" {
		name += ", " + m.State
	}
	if m.Country != "" {
		name += ", " + m.Country
	}

	r.logger.Debug("resolved location",
		zap.Float64("lat", m.Lat),
		zap.Float64("lon", m.Lon),
		zap.String("name", name),
	)

	return Place{Lat: m.Lat, Lon: m.Lon, Name: name}, nil
}
