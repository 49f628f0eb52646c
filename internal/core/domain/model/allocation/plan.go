package allocation

import "speedit/internal/core/domain/model/kernel"

// AllocationChunk assigns a quantity of one order item to one candidate
// path. The quantity may be below the candidate's feasible amount when the
// planner has already drained part of the underlying stock row for another
// item.
type AllocationChunk struct {
	Candidate PathCandidate
	Quantity  int
}

// OrderItemAllocationPlan is the planned fulfillment of one order item.
type OrderItemAllocationPlan struct {
	OrderItemID       kernel.UUID
	OrderID           kernel.UUID
	ProductID         kernel.UUID
	RequestedQuantity int
	Chunks            []AllocationChunk
}

// AllocatedQuantity sums the quantities of all chunks.
func (p OrderItemAllocationPlan) AllocatedQuantity() int {
	total := 0
	for _, chunk := range p.Chunks {
		total += chunk.Quantity
	}
	return total
}

// IsFullyAllocated reports whether the planned quantity meets the request.
func (p OrderItemAllocationPlan) IsFullyAllocated() bool {
	return p.AllocatedQuantity() >= p.RequestedQuantity
}

// GlobalAllocationPlan is the result of one global planning pass over a
// batch of orders.
type GlobalAllocationPlan struct {
	ItemPlans []OrderItemAllocationPlan

	// FullyAllocated is true iff every item plan meets its requested
	// quantity. Only fully allocated plans may be committed.
	FullyAllocated bool
}
