package allocation

import (
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
)

// PathPattern labels the shape of a fulfillment path.
type PathPattern string

const (
	// PatternVanToClient delivers directly from a van already holding the
	// product.
	PatternVanToClient PathPattern = "VAN->CLIENT"

	// PatternWarehouseVanClient loads from a warehouse onto a van, then
	// delivers to the client.
	PatternWarehouseVanClient PathPattern = "WH->VAN->CLIENT"
)

// CandidateMetrics is the cost bundle of one path candidate.
type CandidateMetrics struct {
	// DistanceKm is the marginal tour distance of serving the path.
	DistanceKm float64

	// TravelTimeSec is the marginal tour duration of serving the path.
	TravelTimeSec float64

	// HandlingTimeSec is the fixed load and unload effort of the path.
	HandlingTimeSec float64

	// Pressure is the projected van fill fraction (0..1) after the
	// allocation is realized. Direct van deliveries carry zero pressure
	// since unloading only frees space.
	Pressure float64
}

// PathCandidate is one scored fulfillment proposal for an order item. It
// exists only for the duration of a planning call; its movements are
// in-memory templates that the plan committer copies onto the reserved
// stock row at commit time.
type PathCandidate struct {
	// StockRowID is the primary available row the path draws from.
	StockRowID kernel.UUID

	// SourceInventoryID is the inventory holding the primary row.
	SourceInventoryID kernel.UUID

	// VanID is the delivering van.
	VanID kernel.UUID

	// Pattern labels the path shape.
	Pattern PathPattern

	// FeasibleAmount is the maximum number of units the path can deliver,
	// always positive and never above the primary row's amount at
	// generation time.
	FeasibleAmount int

	// Movements realize the path in execution order.
	Movements []*inventory.Movement

	// Metrics is the raw cost bundle.
	Metrics CandidateMetrics

	// Score is the provisional weighted cost, lower is better. Comparable
	// only within the candidate set of one generation call.
	Score float64
}

// CandidateGenerationResult is the outcome of candidate generation for one
// order item. An empty candidate list means no eligible stock exists; it is
// a valid result, not an error.
type CandidateGenerationResult struct {
	OrderID           kernel.UUID
	OrderItemID       kernel.UUID
	ProductID         kernel.UUID
	RequestedQuantity int
	Candidates        []PathCandidate
}

// HasCandidates reports whether any fulfillment path was found.
func (r CandidateGenerationResult) HasCandidates() bool {
	return len(r.Candidates) > 0
}
