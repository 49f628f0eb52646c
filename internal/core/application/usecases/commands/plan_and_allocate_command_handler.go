package commands

import (
	"context"
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/order"
	"speedit/internal/core/domain/services"
	"speedit/internal/core/ports"
	"speedit/internal/pkg/errs"
)

// ErrNoOrdersToAllocate is returned when the batch resolves to zero
// pending orders.
var ErrNoOrdersToAllocate = errors.New("no orders to allocate")

// PlanAndAllocateCommandHandler orchestrates a full allocation run.
// Plans the batch with the global planner, then commits the plan inside
// a single transaction. An infeasible plan or a commit-time stock
// conflict aborts the whole run with nothing persisted.
//
// Example:
//
//	handler := NewPlanAndAllocateCommandHandler(uowFactory, routing, fillReader)
//	cmd, _ := NewPlanAndAllocateCommand(nil)
//	plan, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoOrdersToAllocate):
//	    log.Println("Nothing pending")
//	case errors.Is(err, ErrNotEnoughStock):
//	    log.Println("Batch cannot be fully covered")
//	case errors.Is(err, ErrStockRowConflict):
//	    log.Println("Concurrent reservation, re-run planning")
//	case err != nil:
//	    log.Printf("Allocation failed: %v", err)
//	}
type PlanAndAllocateCommandHandler struct {
	uowFactory AllocationUoWFactory
	routing    ports.RoutingProvider
	fillReader ports.FillLevelReader
}

// NewPlanAndAllocateCommandHandler creates a handler for allocation runs.
func NewPlanAndAllocateCommandHandler(
	uowFactory AllocationUoWFactory,
	routing ports.RoutingProvider,
	fillReader ports.FillLevelReader,
) PlanAndAllocateCommandHandler {
	return PlanAndAllocateCommandHandler{
		uowFactory: uowFactory,
		routing:    routing,
		fillReader: fillReader,
	}
}

// Handle plans the batch and commits the resulting plan.
// Returns the committed plan on success. On any failure the transaction
// rolls back and no stock or movement change survives.
func (h PlanAndAllocateCommandHandler) Handle(
	ctx context.Context,
	command PlanAndAllocateCommand,
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

	plan, err := planBatch(ctx, uow, h.routing, h.fillReader, command.OrderIDs())
	if err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}

	if !plan.FullyAllocated {
		return allocation.GlobalAllocationPlan{}, ErrNotEnoughStock
	}

	committer, err := NewPlanCommitter(uow)
	if err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}
	if err = committer.CommitGlobalPlan(ctx, plan); err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}

	return plan, nil
}

// planBatch loads the batch orders and runs the global planner over them.
// Shared by the plan-only and plan-and-commit handlers.
func planBatch(
	ctx context.Context,
	uow AllocationUoW,
	routing ports.RoutingProvider,
	fillReader ports.FillLevelReader,
	orderIDs []kernel.UUID,
) (allocation.GlobalAllocationPlan, error) {
	orders, err := loadBatchOrders(ctx, uow, orderIDs)
	if err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}
	if len(orders) == 0 {
		return allocation.GlobalAllocationPlan{}, ErrNoOrdersToAllocate
	}

	planner, err := buildPlanner(uow, routing, fillReader)
	if err != nil {
		return allocation.GlobalAllocationPlan{}, err
	}

	return planner.PlanGlobal(ctx, orders)
}

// loadBatchOrders resolves the explicit batch, or every order awaiting
// allocation when no IDs were given.
func loadBatchOrders(
	ctx context.Context,
	uow AllocationUoW,
	orderIDs []kernel.UUID,
) ([]*order.Order, error) {
	orderRepo := uow.OrderRepository()

	if len(orderIDs) == 0 {
		return orderRepo.GetAllInCreatedStatus(ctx)
	}

	orders := make([]*order.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		ord, err := orderRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if ord.Status() != order.Created {
			return nil, fmt.Errorf("order %s is not awaiting allocation: %w",
				id, errs.ErrValueIsInvalid)
		}
		orders = append(orders, ord)
	}
	return orders, nil
}

// buildPlanner wires the domain services over repositories bound to the
// current transaction.
func buildPlanner(
	uow AllocationUoW,
	routing ports.RoutingProvider,
	fillReader ports.FillLevelReader,
) (*services.GlobalAllocationPlanner, error) {
	resolver, err := services.NewRouteOverheadResolver(
		routing, uow.MovementRepository(), uow.StockRepository(), uow.InventoryRepository())
	if err != nil {
		return nil, err
	}

	generator, err := services.NewCandidateGenerator(
		resolver, fillReader, uow.StockRepository(), uow.InventoryRepository(), uow.ProductRepository())
	if err != nil {
		return nil, err
	}

	return services.NewGlobalAllocationPlanner(generator, uow.StockRepository())
}
