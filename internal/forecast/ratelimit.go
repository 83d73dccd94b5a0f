package forecast

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedSource wraps a Source with a client-side rate limiter. Scheduled
// runs share one process, so the limiter keeps repeated fetches inside the
// forecast API's free-tier quota.
type RateLimitedSource struct {
	source  Source
	limiter *rate.Limiter
	name    string
}

// NewRateLimitedSource wraps source so fetches never exceed rps sustained
// requests per second, with bursts of up to burst. Fractional rps values
// space calls more than a second apart.
func NewRateLimitedSource(source Source, rps float64, burst int) *RateLimitedSource {
	return &RateLimitedSource{
		source:  source,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
		name:    fmt.Sprintf("%s [Rate Limited]", source.Name()),
	}
}

// Name returns the source name.
func (r *RateLimitedSource) Name() string {
	return r.name
}

// FetchWindow fetches the forecast window, respecting the rate limit.
func (r *RateLimitedSource) FetchWindow(ctx context.Context, lat, lon float64) (Window, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.source.FetchWindow(ctx, lat, lon)
}

var _ Source = (*RateLimitedSource)(nil)
