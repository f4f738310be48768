package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/today-forecast/internal/common"
	"github.com/i474232898/today-forecast/internal/weather"
)

// Option customizes a provider.
type Option func(*base)

// WithBaseURL points the provider at another endpoint (tests, proxies).
func WithBaseURL(u string) Option {
	return func(b *base) { b.baseURL = u }
}

// WithBackoff overrides the retry policy. The default performs no retries.
func WithBackoff(cfg common.BackoffConfig) Option {
	return func(b *base) { b.httpCfg.Backoff = cfg }
}

// base carries what every HTTP-backed provider shares.
type base struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func newBase(name, baseURL, apiKey string, client *http.Client, opts []Option) base {
	b := base{
		name:    name,
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: common.HTTPClientConfig{
			Client: client,
			Backoff: common.BackoffConfig{
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
		},
		circuit: common.NewBreaker(name),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *base) Name() string {
	return b.name
}

func (b *base) get(ctx context.Context, u string) (*http.Response, error) {
	return common.DoWithResilience(ctx, b.httpCfg, b.circuit, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
}

// RateLimited wraps a ForecastProvider with a token-bucket limiter.
type RateLimited struct {
	provider weather.ForecastProvider
	limiter  *rate.Limiter
}

// NewRateLimited allows rps requests per second (fractional for less than
// one per second) with the given burst.
func NewRateLimited(p weather.ForecastProvider, rps float64, burst int) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		provider: p,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *RateLimited) Name() string {
	return r.provider.Name()
}

// FetchForecast waits for the limiter, then forwards to the wrapped provider.
func (r *RateLimited) FetchForecast(ctx context.Context, loc weather.Location, days int) ([]weather.DailyReading, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.FetchForecast(ctx, loc, days)
}
