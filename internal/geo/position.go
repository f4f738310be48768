package geo

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// StaticPositioner serves a fixed, operator-granted position. An empty
// value behaves like a device on which location access was refused.
type StaticPositioner struct {
	pos     Position
	granted bool
}

// NewStaticPositioner parses lattLong ("lat,long"); an empty string yields a
// positioner that always fails with ErrPermissionDenied.
func NewStaticPositioner(lattLong string) (*StaticPositioner, error) {
	if strings.TrimSpace(lattLong) == "" {
		return &StaticPositioner{}, nil
	}
	pos, err := ParseLattLong(lattLong)
	if err != nil {
		return nil, err
	}
	return &StaticPositioner{pos: pos, granted: true}, nil
}

func (s *StaticPositioner) Position(context.Context) (Position, error) {
	if !s.granted {
		return Position{}, ErrPermissionDenied
	}
	return s.pos, nil
}

// IPPositioner approximates the position from the public IP address using an
// ip-api.com compatible endpoint.
type IPPositioner struct {
	client *resty.Client
}

func NewIPPositioner(httpClient *http.Client, baseURL string) *IPPositioner {
	client := resty.NewWithClient(httpClient).
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json")
	return &IPPositioner{client: client}
}

type ipLookup struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

func (p *IPPositioner) Position(ctx context.Context) (Position, error) {
	var out ipLookup
	resp, err := p.client.R().
		SetContext(ctx).
		SetResult(&out).
		SetQueryParam("fields", "status,message,lat,lon,city").
		Get("/json")
	if err != nil {
		return Position{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if resp.IsError() {
		return Position{}, fmt.Errorf("%w: ip lookup status %d", ErrUnavailable, resp.StatusCode())
	}
	if out.Status != "success" {
		return Position{}, fmt.Errorf("%w: ip lookup %s", ErrUnavailable, out.Message)
	}
	return Position{Lat: out.Lat, Long: out.Lon}, nil
}
