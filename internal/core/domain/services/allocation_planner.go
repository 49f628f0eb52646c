package services

import (
	"context"
	"sort"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/order"
	"speedit/internal/core/ports"
	"speedit/internal/pkg/errs"
)

// CandidateSource produces scored fulfillment candidates for one order
// item. Implemented by CandidateGenerator.
type CandidateSource interface {
	Generate(ctx context.Context, ord *order.Order, item *order.OrderItem) (allocation.CandidateGenerationResult, error)
}

// GlobalAllocationPlanner assigns stock to every order item of a batch.
// It runs candidate generation per item, then performs a single greedy
// pass over the items with a shared pool of remaining units per stock
// row, so no two items can logically consume more than a row's declared
// amount.
//
// The planner mutates only its per-call counter map; persisted state is
// untouched. Concurrent planning calls do not interfere with each other,
// but they also do not see each other's in-flight reservations, which is
// why the plan committer re-validates every row.
type GlobalAllocationPlanner struct {
	generator CandidateSource
	stocks    ports.StockRepository
}

// NewGlobalAllocationPlanner creates a planner. All dependencies are
// required.
func NewGlobalAllocationPlanner(
	generator CandidateSource,
	stocks ports.StockRepository,
) (*GlobalAllocationPlanner, error) {
	if generator == nil {
		return nil, errs.NewValueIsRequiredError("generator")
	}
	if stocks == nil {
		return nil, errs.NewValueIsRequiredError("stocks")
	}

	return &GlobalAllocationPlanner{
		generator: generator,
		stocks:    stocks,
	}, nil
}

// itemPlanning pairs an order item with its generated candidates while
// the greedy pass runs.
type itemPlanning struct {
	result allocation.CandidateGenerationResult
}

// PlanGlobal builds an allocation plan for all items of the given orders.
//
// Items with fewer candidates are served first, so scarce options are not
// drained by flexible items. Every item plan is included in the result
// even when its demand cannot be met; the FullyAllocated flag reports
// whether the plan as a whole is committable.
func (p *GlobalAllocationPlanner) PlanGlobal(
	ctx context.Context,
	orders []*order.Order,
) (allocation.GlobalAllocationPlan, error) {
	var plannings []itemPlanning

	for _, ord := range orders {
		if err := ord.Validate(); err != nil {
			return allocation.GlobalAllocationPlan{}, err
		}

		for _, item := range ord.Items() {
			result, err := p.generator.Generate(ctx, ord, item)
			if err != nil {
				return allocation.GlobalAllocationPlan{}, err
			}
			plannings = append(plannings, itemPlanning{result: result})
		}
	}

	// Scarcity first: items with fewer options get first pick. The sort
	// is stable so equally constrained items keep their order sequence,
	// which keeps planning deterministic.
	sort.SliceStable(plannings, func(i, j int) bool {
		return len(plannings[i].result.Candidates) < len(plannings[j].result.Candidates)
	})

	remainingUnits := make(map[string]int)
	plan := allocation.GlobalAllocationPlan{FullyAllocated: true}

	for _, planning := range plannings {
		itemPlan, err := p.planItem(ctx, planning.result, remainingUnits)
		if err != nil {
			return allocation.GlobalAllocationPlan{}, err
		}

		if !itemPlan.IsFullyAllocated() {
			plan.FullyAllocated = false
		}
		plan.ItemPlans = append(plan.ItemPlans, itemPlan)
	}

	return plan, nil
}

// planItem walks one item's candidates in score order, draining the
// shared remaining-units pool.
func (p *GlobalAllocationPlanner) planItem(
	ctx context.Context,
	result allocation.CandidateGenerationResult,
	remainingUnits map[string]int,
) (allocation.OrderItemAllocationPlan, error) {
	itemPlan := allocation.OrderItemAllocationPlan{
		OrderItemID:       result.OrderItemID,
		OrderID:           result.OrderID,
		ProductID:         result.ProductID,
		RequestedQuantity: result.RequestedQuantity,
	}

	demand := result.RequestedQuantity

	for _, candidate := range result.Candidates {
		if demand <= 0 {
			break
		}

		remaining, err := p.remainingForRow(ctx, candidate, remainingUnits)
		if err != nil {
			return allocation.OrderItemAllocationPlan{}, err
		}

		take := minInt(demand, minInt(candidate.FeasibleAmount, remaining))
		if take <= 0 {
			continue
		}

		itemPlan.Chunks = append(itemPlan.Chunks, allocation.AllocationChunk{
			Candidate: candidate,
			Quantity:  take,
		})

		remainingUnits[candidate.StockRowID.String()] -= take
		demand -= take
	}

	return itemPlan, nil
}

// remainingForRow lazily seeds the shared counter from the row's
// persisted amount the first time any candidate references it.
func (p *GlobalAllocationPlanner) remainingForRow(
	ctx context.Context,
	candidate allocation.PathCandidate,
	remainingUnits map[string]int,
) (int, error) {
	key := candidate.StockRowID.String()
	if remaining, ok := remainingUnits[key]; ok {
		return remaining, nil
	}

	row, err := p.stocks.Get(ctx, candidate.StockRowID)
	if err != nil {
		return 0, err
	}

	remainingUnits[key] = row.Amount()
	return row.Amount(), nil
}
