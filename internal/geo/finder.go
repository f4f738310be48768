package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/today-forecast/internal/common"
)

// SearchFinder queries a MetaWeather compatible location search
// (/api/location/search/?lattlong=lat,long).
type SearchFinder struct {
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewSearchFinder(client *http.Client, baseURL string, backoff common.BackoffConfig) *SearchFinder {
	return &SearchFinder{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: common.HTTPClientConfig{Client: client, Backoff: backoff},
		circuit: common.NewBreaker("location-search"),
	}
}

func (f *SearchFinder) Nearby(ctx context.Context, pos Position) ([]Place, error) {
	values := url.Values{}
	values.Set("lattlong", pos.LattLong())
	u := fmt.Sprintf("%s/api/location/search/?%s", f.baseURL, values.Encode())

	resp, err := common.DoWithResilience(ctx, f.httpCfg, f.circuit, func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, u, nil)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var places []Place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("decode location search: %w", err)
	}
	return places, nil
}

// GeocoderFinder resolves the position with Google reverse geocoding. The
// resulting places carry no WOEID.
type GeocoderFinder struct {
	reverse func(geocoder.Location) ([]geocoder.Address, error)
	timeout time.Duration
}

// NewGeocoderFinder sets the package-wide Google API key used by the
// geocoder library.
func NewGeocoderFinder(apiKey string, timeout time.Duration) *GeocoderFinder {
	geocoder.ApiKey = apiKey
	return &GeocoderFinder{reverse: geocoder.GeocodingReverse, timeout: timeout}
}

func (f *GeocoderFinder) Nearby(ctx context.Context, pos Position) ([]Place, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	type result struct {
		addrs []geocoder.Address
		err   error
	}
	// The geocoder library takes no context.
	done := make(chan result, 1)
	go func() {
		addrs, err := f.reverse(geocoder.Location{Latitude: pos.Lat, Longitude: pos.Long})
		done <- result{addrs, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}
	if res.err != nil {
		return nil, fmt.Errorf("reverse geocoding: %w", res.err)
	}

	places := make([]Place, 0, len(res.addrs))
	for _, a := range res.addrs {
		title := a.City
		if title == "" {
			title = a.FormattedAddress
		}
		if title == "" {
			continue
		}
		places = append(places, Place{
			Title:        title,
			LocationType: "City",
			LattLong:     pos.LattLong(),
		})
	}
	return places, nil
}
