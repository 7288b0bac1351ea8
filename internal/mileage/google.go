package mileage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

type distanceMatrixClient interface {
	DistanceMatrix(ctx context.Context, r *maps.DistanceMatrixRequest) (*maps.DistanceMatrixResponse, error)
}

// GoogleDistance implements DistanceProvider using the Google Distance Matrix API
type GoogleDistance struct {
	client distanceMatrixClient
}

// NewGoogleDistance creates a new GoogleDistance provider
func NewGoogleDistance(apiKey string) (*GoogleDistance, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("maps api key is required")
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating maps client: %w", err)
	}
	return &GoogleDistance{client: client}, nil
}

// Distance returns the driving distance between startAddress and endAddress
func (g *GoogleDistance) Distance(ctx context.Context, startAddress, endAddress string, units Units) (*Route, error) {
	startAddress = strings.TrimSpace(startAddress)
	endAddress = strings.TrimSpace(endAddress)
	if startAddress == "" || endAddress == "" {
		return nil, fmt.Errorf("%w: start and end address are required", ErrInvalidAddress)
	}

	mapsUnits := maps.UnitsImperial
	if units == UnitsMetric {
		mapsUnits = maps.UnitsMetric
	}

	resp, err := g.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{startAddress},
		Destinations: []string{endAddress},
		Mode:         maps.TravelModeDriving,
		Units:        mapsUnits,
	})
	if err != nil {
		if strings.Contains(err.Error(), "INVALID_REQUEST") || strings.Contains(err.Error(), "NOT_FOUND") {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
		}
		return nil, fmt.Errorf("calling distance matrix: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, ErrNoRoute
	}

	element := resp.Rows[0].Elements[0]
	switch element.Status {
	case "OK":
	case "NOT_FOUND":
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidAddress, startAddress, endAddress)
	default:
		return nil, fmt.Errorf("%w: %s -> %s (%s)", ErrNoRoute, startAddress, endAddress, element.Status)
	}

	route := &Route{DurationLabel: element.Duration.Round(time.Minute).String()}
	if units == UnitsMetric {
		route.Distance = float64(element.Distance.Meters) / 1000
		route.UnitLabel = "km"
	} else {
		route.Distance = float64(element.Distance.Meters) / metersPerMile
		route.UnitLabel = "mi"
	}
	return route, nil
}
