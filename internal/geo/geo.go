// Package geo turns the device position into a list of nearby named places.
package geo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrPermissionDenied means no position has been granted to the service.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrUnavailable means the position source could not produce a position.
	ErrUnavailable = errors.New("position unavailable")
	// ErrNoPlaces means the position resolved to no known place.
	ErrNoPlaces = errors.New("no places near position")
	// ErrInvalidLattLong is returned for a malformed "lat,long" string.
	ErrInvalidLattLong = errors.New("invalid latt_long")
)

// Place is a named location as returned by a location search, closest first.
type Place struct {
	Title        string `json:"title"`
	LocationType string `json:"location_type,omitempty"`
	WOEID        int64  `json:"woeid"`
	LattLong     string `json:"latt_long"`
	Distance     int    `json:"distance,omitempty"` // metres
}

// Position is a WGS84 coordinate pair.
type Position struct {
	Lat  float64
	Long float64
}

// LattLong formats p the way Place.LattLong carries it.
func (p Position) LattLong() string {
	return strconv.FormatFloat(p.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(p.Long, 'f', -1, 64)
}

// ParseLattLong splits a combined "lat,long" string into its numeric parts.
func ParseLattLong(s string) (Position, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidLattLong, s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Position{}, fmt.Errorf("%w: latitude %q", ErrInvalidLattLong, parts[0])
	}
	long, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || long < -180 || long > 180 {
		return Position{}, fmt.Errorf("%w: longitude %q", ErrInvalidLattLong, parts[1])
	}
	return Position{Lat: lat, Long: long}, nil
}

// Positioner reports where the device is.
type Positioner interface {
	Position(ctx context.Context) (Position, error)
}

// PlaceFinder resolves a position to nearby places, closest first.
type PlaceFinder interface {
	Nearby(ctx context.Context, pos Position) ([]Place, error)
}

// Locator chains a Positioner and a PlaceFinder.
type Locator struct {
	positioner Positioner
	finder     PlaceFinder
}

func NewLocator(positioner Positioner, finder PlaceFinder) *Locator {
	return &Locator{positioner: positioner, finder: finder}
}

// Locate returns the places around the current device position.
func (l *Locator) Locate(ctx context.Context) ([]Place, error) {
	pos, err := l.positioner.Position(ctx)
	if err != nil {
		return nil, err
	}
	places, err := l.finder.Nearby(ctx, pos)
	if err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrNoPlaces
	}
	return places, nil
}
