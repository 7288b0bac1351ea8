package mileage

import (
	"context"
	"errors"
)

var (
	// ErrNoRoute is returned when no driving route joins the two addresses
	ErrNoRoute = errors.New("no route found")
	// ErrInvalidAddress is returned when an address cannot be geocoded
	ErrInvalidAddress = errors.New("invalid address")
	// ErrNoProvider is returned by Calculate when no distance provider is configured
	ErrNoProvider = errors.New("no distance provider configured")
)

// Units selects the unit system distances are reported in
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

const metersPerMile = 1609.344

// Route is the distance provider's answer for one origin/destination pair
type Route struct {
	Distance      float64 `json:"distance"`
	UnitLabel     string  `json:"unit_label"`
	DurationLabel string  `json:"duration_label"`
}

// DistanceProvider computes driving distance between two addresses
type DistanceProvider interface {
	Distance(ctx context.Context, startAddress, endAddress string, units Units) (*Route, error)
}
