package forecast

import "context"

// Source abstracts a forecast data source (e.g. the OpenWeatherMap One Call
// API or the older 3-hourly forecast API). Implementations return a validated
// window for the given coordinates.
type Source interface {
	Name() string
	FetchWindow(ctx context.Context, lat, lon float64) (Window, error)
}
