package services

import (
	"context"
	"math"
	"sort"
	"time"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/order"
	"speedit/internal/core/ports"
	"speedit/internal/pkg/errs"
)

const (
	// maxCandidatesPerItem caps how many scored paths are surfaced per
	// order item.
	maxCandidatesPerItem = 5

	// fallbackUnitVolumeCc substitutes for products without a catalogued
	// unit volume.
	fallbackUnitVolumeCc = 1000.0

	// handlingVanToClientSec is the fixed unload effort of a direct van
	// delivery.
	handlingVanToClientSec = 300.0

	// handlingWarehouseVanClientSec covers the load plus unload of a
	// warehouse-sourced delivery.
	handlingWarehouseVanClientSec = 600.0

	// handlingNormalizationCapSec bounds the handling term of the score.
	handlingNormalizationCapSec = 600.0

	// splitAbsoluteFloor and splitFractionFloor define what counts as a
	// fragmentary delivery: fewer than the absolute floor of units, or
	// less than the fraction of the requested quantity.
	splitAbsoluteFloor = 5
	splitFractionFloor = 0.20

	// Score weights. Lower scores are better.
	weightTravelTime = 1.0
	weightDistance   = 0.5
	weightHandling   = 0.7
	weightPressure   = 0.8
	weightSplit      = 1.5
)

// CandidateGenerator enumerates and scores feasible fulfillment paths for
// one order item. It reads stock, inventory, and movement state but never
// mutates anything; candidates and their movements live in memory only.
type CandidateGenerator struct {
	resolver    *RouteOverheadResolver
	fillReader  ports.FillLevelReader
	stocks      ports.StockRepository
	inventories ports.InventoryRepository
	products    ports.ProductRepository
	now         func() time.Time
}

// NewCandidateGenerator creates a generator. All dependencies are required.
func NewCandidateGenerator(
	resolver *RouteOverheadResolver,
	fillReader ports.FillLevelReader,
	stocks ports.StockRepository,
	inventories ports.InventoryRepository,
	products ports.ProductRepository,
) (*CandidateGenerator, error) {
	if resolver == nil {
		return nil, errs.NewValueIsRequiredError("resolver")
	}
	if fillReader == nil {
		return nil, errs.NewValueIsRequiredError("fillReader")
	}
	if stocks == nil {
		return nil, errs.NewValueIsRequiredError("stocks")
	}
	if inventories == nil {
		return nil, errs.NewValueIsRequiredError("inventories")
	}
	if products == nil {
		return nil, errs.NewValueIsRequiredError("products")
	}

	return &CandidateGenerator{
		resolver:    resolver,
		fillReader:  fillReader,
		stocks:      stocks,
		inventories: inventories,
		products:    products,
		now:         time.Now,
	}, nil
}

// vanContext caches the per-van facts needed while building candidates:
// resolved position, current stop set, fill level, and derived free
// capacity in units of the requested product.
type vanContext struct {
	van          *inventory.Inventory
	position     kernel.GeoPoint
	baseStops    []kernel.GeoPoint
	fillFraction float64
	freeUnits    int
	inLocality   bool
}

// Generate enumerates feasible fulfillment paths for the order item,
// scores them, and returns the best ones sorted ascending by score. A
// result with no candidates means no eligible stock exists; it is not an
// error.
func (g *CandidateGenerator) Generate(
	ctx context.Context,
	ord *order.Order,
	item *order.OrderItem,
) (allocation.CandidateGenerationResult, error) {
	if err := ord.Validate(); err != nil {
		return allocation.CandidateGenerationResult{}, err
	}
	if err := item.Validate(); err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	result := allocation.CandidateGenerationResult{
		OrderID:           ord.ID(),
		OrderItemID:       item.ID(),
		ProductID:         item.ProductID(),
		RequestedQuantity: item.Quantity(),
	}

	if item.Quantity() <= 0 {
		return result, nil
	}

	rows, err := g.stocks.GetAvailableByProduct(ctx, item.ProductID())
	if err != nil {
		return allocation.CandidateGenerationResult{}, err
	}
	if len(rows) == 0 {
		return result, nil
	}

	unitVolumeCc, err := g.resolveUnitVolume(ctx, item.ProductID())
	if err != nil {
		return allocation.CandidateGenerationResult{}, err
	}

	vans := make(map[string]*vanContext)
	client := ord.ClientLocation()

	var raw []allocation.PathCandidate

	vanStockByInventory := availableAmountByInventory(rows)

	for _, row := range rows {
		holder, err := g.inventories.Get(ctx, row.InventoryID())
		if err != nil {
			return allocation.CandidateGenerationResult{}, err
		}
		if !holder.IsActive() {
			continue
		}

		switch holder.Kind() {
		case inventory.KindVan:
			candidate, ok, err := g.buildVanCandidate(ctx, client, item, row, holder, unitVolumeCc, vans)
			if err != nil {
				return allocation.CandidateGenerationResult{}, err
			}
			if ok {
				raw = append(raw, candidate)
			}
		case inventory.KindWarehouse:
			candidates, err := g.buildWarehouseCandidates(
				ctx, client, item, row, holder, unitVolumeCc, vans, vanStockByInventory)
			if err != nil {
				return allocation.CandidateGenerationResult{}, err
			}
			raw = append(raw, candidates...)
		default:
			// Local stores are loaded by their own operations flow and
			// do not participate in allocation.
		}
	}

	result.Candidates = rankCandidates(raw, item.Quantity())
	return result, nil
}

// buildVanCandidate builds a direct VAN->CLIENT path from one available
// van row, provided the van currently sits in the client's locality and
// has free capacity.
func (g *CandidateGenerator) buildVanCandidate(
	ctx context.Context,
	client kernel.GeoPoint,
	item *order.OrderItem,
	row *inventory.StockRow,
	van *inventory.Inventory,
	unitVolumeCc float64,
	vans map[string]*vanContext,
) (allocation.PathCandidate, bool, error) {
	vc, err := g.vanContext(ctx, van, client, unitVolumeCc, vans)
	if err != nil {
		return allocation.PathCandidate{}, false, err
	}
	if !vc.inLocality {
		return allocation.PathCandidate{}, false, nil
	}

	feasible := minInt(item.Quantity(), minInt(row.Amount(), vc.freeUnits))
	if feasible <= 0 {
		return allocation.PathCandidate{}, false, nil
	}

	overhead, err := g.resolver.InsertionOverhead(ctx, vc.baseStops, client)
	if err != nil {
		return allocation.PathCandidate{}, false, err
	}

	moveAt := NextWorkingInstant(
		g.now().Add(positionSafetyMargin).Add(time.Duration(overhead.DurationSec) * time.Second))

	from, err := inventory.InventoryEndpoint(van.ID())
	if err != nil {
		return allocation.PathCandidate{}, false, err
	}

	unload, err := inventory.NewPlannedMovement(
		kernel.NewUUID(), row.ID(), from, inventory.ClientEndpoint(),
		inventory.Unload, moveAt, float64(feasible)*unitVolumeCc)
	if err != nil {
		return allocation.PathCandidate{}, false, err
	}

	return allocation.PathCandidate{
		StockRowID:        row.ID(),
		SourceInventoryID: van.ID(),
		VanID:             van.ID(),
		Pattern:           allocation.PatternVanToClient,
		FeasibleAmount:    feasible,
		Movements:         []*inventory.Movement{unload},
		Metrics: allocation.CandidateMetrics{
			DistanceKm:      overhead.DistanceKm,
			TravelTimeSec:   overhead.DurationSec,
			HandlingTimeSec: handlingVanToClientSec,
			// Delivering only frees van space.
			Pressure: 0,
		},
	}, true, nil
}

// buildWarehouseCandidates builds WH->VAN->CLIENT paths from one
// warehouse row through every in-locality van that cannot already cover
// the full request from its own stock.
func (g *CandidateGenerator) buildWarehouseCandidates(
	ctx context.Context,
	client kernel.GeoPoint,
	item *order.OrderItem,
	row *inventory.StockRow,
	warehouse *inventory.Inventory,
	unitVolumeCc float64,
	vans map[string]*vanContext,
	vanStockByInventory map[string]int,
) ([]allocation.PathCandidate, error) {
	// Different-city warehouses never participate; there is no multi-hop
	// routing.
	if g.resolver.InDifferentLocalities(ctx, warehouse.Location(), client) {
		return nil, nil
	}

	activeVans, err := g.inventories.GetActiveVans(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []allocation.PathCandidate

	for _, van := range activeVans {
		vanStock := vanStockByInventory[van.ID().String()]
		// A van already holding the full request is served better by its
		// own direct candidate.
		if vanStock >= item.Quantity() {
			continue
		}

		vc, err := g.vanContext(ctx, van, client, unitVolumeCc, vans)
		if err != nil {
			return nil, err
		}
		if !vc.inLocality {
			continue
		}

		feasible := minInt(item.Quantity(), vanStock+row.Amount())
		feasible = minInt(feasible, vc.freeUnits)
		if feasible <= 0 {
			continue
		}

		overhead, err := g.resolver.InsertionOverhead(ctx, vc.baseStops, warehouse.Location(), client)
		if err != nil {
			return nil, err
		}

		loadAt := NextWorkingInstant(g.now().Add(positionSafetyMargin))
		unloadAt := NextWorkingInstant(
			loadAt.Add(time.Duration(overhead.DurationSec/2) * time.Second))

		warehouseEndpoint, err := inventory.InventoryEndpoint(warehouse.ID())
		if err != nil {
			return nil, err
		}
		vanEndpoint, err := inventory.InventoryEndpoint(van.ID())
		if err != nil {
			return nil, err
		}

		estimatedVolume := float64(feasible) * unitVolumeCc

		load, err := inventory.NewPlannedMovement(
			kernel.NewUUID(), row.ID(), warehouseEndpoint, vanEndpoint,
			inventory.Load, loadAt, estimatedVolume)
		if err != nil {
			return nil, err
		}
		unload, err := inventory.NewPlannedMovement(
			kernel.NewUUID(), row.ID(), vanEndpoint, inventory.ClientEndpoint(),
			inventory.Unload, unloadAt, estimatedVolume)
		if err != nil {
			return nil, err
		}

		pressure := math.Min(1.0, vc.fillFraction+estimatedVolume/vanCapacityOrOne(vc.van))

		candidates = append(candidates, allocation.PathCandidate{
			StockRowID:        row.ID(),
			SourceInventoryID: warehouse.ID(),
			VanID:             van.ID(),
			Pattern:           allocation.PatternWarehouseVanClient,
			FeasibleAmount:    feasible,
			Movements:         []*inventory.Movement{load, unload},
			Metrics: allocation.CandidateMetrics{
				DistanceKm:      overhead.DistanceKm,
				TravelTimeSec:   overhead.DurationSec,
				HandlingTimeSec: handlingWarehouseVanClientSec,
				Pressure:        pressure,
			},
		})
	}

	return candidates, nil
}

// vanContext lazily resolves and caches per-van routing facts for the
// duration of one generation call.
func (g *CandidateGenerator) vanContext(
	ctx context.Context,
	van *inventory.Inventory,
	client kernel.GeoPoint,
	unitVolumeCc float64,
	cache map[string]*vanContext,
) (*vanContext, error) {
	if vc, ok := cache[van.ID().String()]; ok {
		return vc, nil
	}

	position, err := g.resolver.ResolveVanPosition(ctx, van)
	if err != nil {
		return nil, err
	}

	baseStops, err := g.resolver.BaseStops(ctx, van, position)
	if err != nil {
		return nil, err
	}

	fillFraction, err := g.fillReader.FillFraction(ctx, van)
	if err != nil {
		return nil, err
	}

	freeVolumeCc := (1.0 - fillFraction) * van.CapacityCc()
	freeUnits := 0
	if freeVolumeCc > 0 && unitVolumeCc > 0 {
		freeUnits = int(math.Floor(freeVolumeCc / unitVolumeCc))
	}

	vc := &vanContext{
		van:          van,
		position:     position,
		baseStops:    baseStops,
		fillFraction: fillFraction,
		freeUnits:    freeUnits,
		inLocality:   !g.resolver.InDifferentLocalities(ctx, position, client),
	}
	cache[van.ID().String()] = vc
	return vc, nil
}

// resolveUnitVolume returns the product's catalogued unit volume or the
// fallback constant when unset.
func (g *CandidateGenerator) resolveUnitVolume(ctx context.Context, productID kernel.UUID) (float64, error) {
	prod, err := g.products.Get(ctx, productID)
	if err != nil {
		return 0, err
	}
	if !prod.HasVolume() {
		return fallbackUnitVolumeCc, nil
	}
	return prod.UnitVolumeCc(), nil
}

// rankCandidates scores the raw candidates, sorts them ascending by
// score, deduplicates by primary stock row, and keeps the best ones.
func rankCandidates(raw []allocation.PathCandidate, requestedQuantity int) []allocation.PathCandidate {
	if len(raw) == 0 {
		return nil
	}

	var maxDistance, maxTravelTime float64
	for _, c := range raw {
		maxDistance = math.Max(maxDistance, c.Metrics.DistanceKm)
		maxTravelTime = math.Max(maxTravelTime, c.Metrics.TravelTimeSec)
	}

	for i := range raw {
		raw[i].Score = scoreCandidate(raw[i], requestedQuantity, maxDistance, maxTravelTime)
	}

	sort.SliceStable(raw, func(i, j int) bool {
		return raw[i].Score < raw[j].Score
	})

	seen := make(map[string]bool, len(raw))
	ranked := make([]allocation.PathCandidate, 0, maxCandidatesPerItem)
	for _, c := range raw {
		key := c.StockRowID.String()
		if seen[key] {
			continue
		}
		seen[key] = true

		ranked = append(ranked, c)
		if len(ranked) == maxCandidatesPerItem {
			break
		}
	}

	return ranked
}

// scoreCandidate computes the provisional weighted cost of a candidate.
// Distance and travel time are normalized against the batch maxima,
// handling time against a fixed cap, and pressure is already 0..1.
func scoreCandidate(c allocation.PathCandidate, requestedQuantity int, maxDistance, maxTravelTime float64) float64 {
	normDistance := 0.0
	if maxDistance > 0 {
		normDistance = c.Metrics.DistanceKm / maxDistance
	}

	normTravelTime := 0.0
	if maxTravelTime > 0 {
		normTravelTime = c.Metrics.TravelTimeSec / maxTravelTime
	}

	normHandling := math.Min(1.0, c.Metrics.HandlingTimeSec/handlingNormalizationCapSec)

	splitPenalty := 0.0
	if c.FeasibleAmount > 0 &&
		(c.FeasibleAmount < splitAbsoluteFloor ||
			float64(c.FeasibleAmount) < splitFractionFloor*float64(requestedQuantity)) {
		splitPenalty = 1.0
	}

	return weightTravelTime*normTravelTime +
		weightDistance*normDistance +
		weightHandling*normHandling +
		weightPressure*c.Metrics.Pressure +
		weightSplit*splitPenalty
}

// availableAmountByInventory sums the available units per holding
// inventory.
func availableAmountByInventory(rows []*inventory.StockRow) map[string]int {
	totals := make(map[string]int, len(rows))
	for _, row := range rows {
		totals[row.InventoryID().String()] += row.Amount()
	}
	return totals
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// vanCapacityOrOne guards against division by a zero van capacity.
func vanCapacityOrOne(van *inventory.Inventory) float64 {
	if van.CapacityCc() <= 0 {
		return 1
	}
	return van.CapacityCc()
}
