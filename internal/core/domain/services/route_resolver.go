package services

import (
	"context"
	"strings"
	"time"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/ports"
	"speedit/internal/pkg/errs"
)

// positionSafetyMargin is added to the elapsed time when interpolating a
// van's position along a route, compensating for reporting lag.
const positionSafetyMargin = 5 * time.Minute

// RouteOverheadResolver computes tour costs and resolves van positions
// from movement history. It is a read-only wrapper over the routing
// provider and the movement and stock repositories.
type RouteOverheadResolver struct {
	routing     ports.RoutingProvider
	movements   ports.MovementRepository
	stocks      ports.StockRepository
	inventories ports.InventoryRepository
	now         func() time.Time
}

// NewRouteOverheadResolver creates a resolver. All dependencies are
// required.
func NewRouteOverheadResolver(
	routing ports.RoutingProvider,
	movements ports.MovementRepository,
	stocks ports.StockRepository,
	inventories ports.InventoryRepository,
) (*RouteOverheadResolver, error) {
	if routing == nil {
		return nil, errs.NewValueIsRequiredError("routing")
	}
	if movements == nil {
		return nil, errs.NewValueIsRequiredError("movements")
	}
	if stocks == nil {
		return nil, errs.NewValueIsRequiredError("stocks")
	}
	if inventories == nil {
		return nil, errs.NewValueIsRequiredError("inventories")
	}

	return &RouteOverheadResolver{
		routing:     routing,
		movements:   movements,
		stocks:      stocks,
		inventories: inventories,
		now:         time.Now,
	}, nil
}

// ResolveVanPosition resolves a van's current coordinates.
//
// A van with no completed movement history sits at its home point. With
// history, the last Done movement's destination is the last known point;
// if a future Planned movement exists, the position is interpolated along
// the route toward that movement's other endpoint using elapsed time plus
// a safety margin. Without a scheduled movement the last known point is
// returned as-is.
func (r *RouteOverheadResolver) ResolveVanPosition(
	ctx context.Context,
	van *inventory.Inventory,
) (kernel.GeoPoint, error) {
	if err := van.Validate(); err != nil {
		return kernel.GeoPoint{}, err
	}

	latest, err := r.movements.GetLatestDoneByInventory(ctx, van.ID())
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	if latest == nil {
		return van.Location(), nil
	}

	lastPoint, err := r.endpointPoint(ctx, latest.To(), latest)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	next, err := r.movements.GetNextPlannedByInventory(ctx, van.ID())
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	if next == nil {
		return lastPoint, nil
	}

	target, ok, err := r.otherEndpointPoint(ctx, next, van.ID())
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	if !ok {
		return lastPoint, nil
	}

	route, err := r.routing.RouteBetween(ctx, lastPoint, target)
	if err != nil {
		return kernel.GeoPoint{}, err
	}

	elapsed := r.now().Sub(latest.MoveAt()) + positionSafetyMargin
	return interpolateAlongRoute(route, elapsed.Seconds(), lastPoint, target), nil
}

// BaseStops returns the van's current stop set for tour computations: the
// given resolved position first (vehicle start and end), followed by the
// stop of its next scheduled movement when one resolves to an inventory.
func (r *RouteOverheadResolver) BaseStops(
	ctx context.Context,
	van *inventory.Inventory,
	position kernel.GeoPoint,
) ([]kernel.GeoPoint, error) {
	stops := []kernel.GeoPoint{position}

	next, err := r.movements.GetNextPlannedByInventory(ctx, van.ID())
	if err != nil {
		return nil, err
	}
	if next == nil {
		return stops, nil
	}

	target, ok, err := r.otherEndpointPoint(ctx, next, van.ID())
	if err != nil {
		return nil, err
	}
	if ok {
		stops = append(stops, target)
	}

	return stops, nil
}

// InsertionOverhead returns the marginal cost of visiting the extra stops
// in addition to an already optimized tour over the base stops. The first
// base stop is treated as the vehicle start and end. Overheads are never
// negative.
func (r *RouteOverheadResolver) InsertionOverhead(
	ctx context.Context,
	baseStops []kernel.GeoPoint,
	extraStops ...kernel.GeoPoint,
) (ports.TourSummary, error) {
	if len(baseStops) == 0 {
		return ports.TourSummary{}, errs.NewValueIsRequiredError("baseStops")
	}
	if len(extraStops) == 0 {
		return ports.TourSummary{}, errs.NewValueIsRequiredError("extraStops")
	}

	base, err := r.routing.OptimizeTour(ctx, baseStops)
	if err != nil {
		return ports.TourSummary{}, err
	}

	extended, err := r.routing.OptimizeTour(ctx, append(append([]kernel.GeoPoint{}, baseStops...), extraStops...))
	if err != nil {
		return ports.TourSummary{}, err
	}

	return ports.TourSummary{
		DistanceKm:  max(0, extended.DistanceKm-base.DistanceKm),
		DurationSec: max(0, extended.DurationSec-base.DurationSec),
	}, nil
}

// InDifferentLocalities reports whether two points lie in different
// administrative localities. Lookup failures and empty locality names
// resolve conservatively to false, treating the points as the same area.
func (r *RouteOverheadResolver) InDifferentLocalities(ctx context.Context, a, b kernel.GeoPoint) bool {
	localityA, err := r.routing.Locality(ctx, a)
	if err != nil || localityA == "" {
		return false
	}

	localityB, err := r.routing.Locality(ctx, b)
	if err != nil || localityB == "" {
		return false
	}

	return !strings.EqualFold(localityA, localityB)
}

// endpointPoint resolves a movement endpoint to coordinates. The client
// endpoint has no stored coordinates, so it falls back to the location of
// the inventory holding the movement's stock row.
func (r *RouteOverheadResolver) endpointPoint(
	ctx context.Context,
	endpoint inventory.Endpoint,
	movement *inventory.Movement,
) (kernel.GeoPoint, error) {
	if inventoryID, ok := endpoint.InventoryID(); ok {
		inv, err := r.inventories.Get(ctx, inventoryID)
		if err != nil {
			return kernel.GeoPoint{}, err
		}
		return inv.Location(), nil
	}

	row, err := r.stocks.Get(ctx, movement.StockRowID())
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	inv, err := r.inventories.Get(ctx, row.InventoryID())
	if err != nil {
		return kernel.GeoPoint{}, err
	}
	return inv.Location(), nil
}

// otherEndpointPoint resolves the endpoint of a movement that is not the
// given van. Returns false when neither endpoint resolves to another
// inventory, e.g. a delivery straight to the client.
func (r *RouteOverheadResolver) otherEndpointPoint(
	ctx context.Context,
	movement *inventory.Movement,
	vanID kernel.UUID,
) (kernel.GeoPoint, bool, error) {
	for _, endpoint := range []inventory.Endpoint{movement.To(), movement.From()} {
		inventoryID, ok := endpoint.InventoryID()
		if !ok || inventoryID.IsEqual(vanID) {
			continue
		}
		inv, err := r.inventories.Get(ctx, inventoryID)
		if err != nil {
			return kernel.GeoPoint{}, false, err
		}
		return inv.Location(), true, nil
	}

	return kernel.GeoPoint{}, false, nil
}

// interpolateAlongRoute maps elapsed seconds onto the route's cumulative
// segment times and linearly interpolates between the bracketing points.
// Elapsed time at or past the route's end resolves to the target.
func interpolateAlongRoute(
	route ports.Route,
	elapsedSec float64,
	fallback, target kernel.GeoPoint,
) kernel.GeoPoint {
	if len(route.Points) == 0 || len(route.Points) != len(route.CumulativeSec) {
		return fallback
	}
	if elapsedSec <= route.CumulativeSec[0] {
		return route.Points[0]
	}

	last := len(route.Points) - 1
	if elapsedSec >= route.CumulativeSec[last] {
		return target
	}

	for i := 1; i <= last; i++ {
		if elapsedSec > route.CumulativeSec[i] {
			continue
		}

		prev, next := route.Points[i-1], route.Points[i]
		span := route.CumulativeSec[i] - route.CumulativeSec[i-1]
		if span <= 0 {
			return next
		}

		fraction := (elapsedSec - route.CumulativeSec[i-1]) / span
		lat := prev.Latitude() + (next.Latitude()-prev.Latitude())*fraction
		lon := prev.Longitude() + (next.Longitude()-prev.Longitude())*fraction

		point, err := kernel.NewGeoPoint(lat, lon)
		if err != nil {
			return next
		}
		return point
	}

	return target
}
