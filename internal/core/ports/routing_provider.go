package ports

import (
	"context"

	"speedit/internal/core/domain/model/kernel"
)

// TourSummary is the cost of an optimal tour over a set of stops.
type TourSummary struct {
	DistanceKm  float64
	DurationSec float64
}

// Route is a drivable path between two points. Points and CumulativeSec
// run in parallel: CumulativeSec[i] is the driving time from the start to
// Points[i]. Used to interpolate a van's position by elapsed time.
type Route struct {
	Points        []kernel.GeoPoint
	CumulativeSec []float64
}

// RoutingProvider is the outbound contract for routing and geocoding.
// Implementations carry their own timeout and retry handling.
type RoutingProvider interface {
	// OptimizeTour returns the cost of the optimal tour over the stops.
	// The first stop is the vehicle start and end; the rest are visited
	// in any order.
	OptimizeTour(ctx context.Context, stops []kernel.GeoPoint) (TourSummary, error)

	// RouteBetween returns the drivable route from one point to another
	// with per-point cumulative driving times.
	RouteBetween(ctx context.Context, from, to kernel.GeoPoint) (Route, error)

	// Locality reverse-geocodes the point to an administrative locality
	// name. An empty name means the lookup found no locality.
	Locality(ctx context.Context, point kernel.GeoPoint) (string, error)
}
