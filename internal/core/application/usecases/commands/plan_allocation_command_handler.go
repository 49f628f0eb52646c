package commands

import (
	"context"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/ports"
)

// PlanAllocationCommandHandler produces an allocation plan without
// committing it. The transaction is opened only for repeatable reads and
// is always rolled back.
type PlanAllocationCommandHandler struct {
	uowFactory AllocationUoWFactory
	routing    ports.RoutingProvider
	fillReader ports.FillLevelReader
}

// NewPlanAllocationCommandHandler creates a handler for dry planning runs.
func NewPlanAllocationCommandHandler(
	uowFactory AllocationUoWFactory,
	routing ports.RoutingProvider,
	fillReader ports.FillLevelReader,
) PlanAllocationCommandHandler {
	return PlanAllocationCommandHandler{
		uowFactory: uowFactory,
		routing:    routing,
		fillReader: fillReader,
	}
}

// Handle plans the batch and returns the plan. Persisted state is never
// touched; a plan that cannot cover every item is still returned with
// FullyAllocated set to false.
func (h PlanAllocationCommandHandler) Handle(
	ctx context.Context,
	command PlanAllocationCommand,
) (allocation.GlobalAllocationPlan, error) {
	if err := command.Validate(); err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return planBatch(ctx, uow, h.routing, h.fillReader, command.OrderIDs())
}
