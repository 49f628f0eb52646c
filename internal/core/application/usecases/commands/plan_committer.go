package commands

import (
	"context"
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"
)

var (
	// ErrNotEnoughStock is returned when a plan cannot cover every
	// requested quantity. Nothing is persisted.
	ErrNotEnoughStock = errors.New("not enough stock to fully allocate")

	// ErrStockRowConflict is returned when a stock row was reserved or
	// depleted by another actor between planning and commit. The whole
	// commit aborts; callers must re-run planning.
	ErrStockRowConflict = errors.New("stock row changed between planning and commit")
)

// PlanCommitter turns a fully allocated plan into durable stock and
// movement changes. It re-validates every reservation against current
// persisted stock, so a plan computed against stale data aborts instead
// of overdrawing a row.
//
// The committer writes through repositories bound to one transaction;
// the calling handler owns Begin/Commit/Rollback, which makes the whole
// commit all-or-nothing.
type PlanCommitter struct {
	uow AllocationUoW
}

// NewPlanCommitter creates a committer over repositories bound to the
// given unit of work.
func NewPlanCommitter(uow AllocationUoW) (PlanCommitter, error) {
	if uow == nil {
		return PlanCommitter{}, errs.NewValueIsRequiredError("uow")
	}
	return PlanCommitter{uow: uow}, nil
}

// CommitGlobalPlan applies every chunk of the plan: decrements available
// rows, finds or creates reserved rows, persists planned movements bound
// to the reserved rows, and advances every touched order to Allocated.
//
// A plan that is not fully allocated is rejected up front with
// ErrNotEnoughStock.
func (c PlanCommitter) CommitGlobalPlan(ctx context.Context, plan allocation.GlobalAllocationPlan) error {
	if !plan.FullyAllocated {
		return ErrNotEnoughStock
	}

	touchedOrders := make(map[string]kernel.UUID)

	for _, itemPlan := range plan.ItemPlans {
		for _, chunk := range itemPlan.Chunks {
			if err := c.commitChunk(ctx, itemPlan, chunk); err != nil {
				return err
			}
		}
		touchedOrders[itemPlan.OrderID.String()] = itemPlan.OrderID
	}

	return c.allocateOrders(ctx, touchedOrders)
}

// commitChunk re-validates one reservation against current stock and
// persists it.
func (c PlanCommitter) commitChunk(
	ctx context.Context,
	itemPlan allocation.OrderItemAllocationPlan,
	chunk allocation.AllocationChunk,
) error {
	stockRepo := c.uow.StockRepository()

	row, err := stockRepo.Get(ctx, chunk.Candidate.StockRowID)
	if err != nil {
		return err
	}

	// Another operation reserved the same stock between planning and
	// commit. The benign race is not auto-resolved.
	if !row.IsAvailable() {
		return fmt.Errorf("%w: row %s is already reserved", ErrStockRowConflict, row.ID())
	}
	if row.Amount() < chunk.Quantity {
		return fmt.Errorf("%w: row %s holds %d of %d planned units",
			ErrStockRowConflict, row.ID(), row.Amount(), chunk.Quantity)
	}

	if err = row.Decrement(chunk.Quantity); err != nil {
		return err
	}
	if err = stockRepo.Update(ctx, row); err != nil {
		return err
	}

	reserved, err := c.reserveRow(ctx, itemPlan, row, chunk.Quantity)
	if err != nil {
		return err
	}

	return c.persistMovements(ctx, chunk, reserved)
}

// reserveRow finds or creates the reserved row for (order item, source
// inventory, product) and grows it by the chunk quantity.
func (c PlanCommitter) reserveRow(
	ctx context.Context,
	itemPlan allocation.OrderItemAllocationPlan,
	availableRow *inventory.StockRow,
	quantity int,
) (*inventory.StockRow, error) {
	stockRepo := c.uow.StockRepository()

	reserved, err := stockRepo.FindReserved(
		ctx, itemPlan.OrderItemID, availableRow.InventoryID(), itemPlan.ProductID)
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	if reserved == nil {
		reserved, err = inventory.NewReservedStockRow(
			kernel.NewUUID(), availableRow.InventoryID(), itemPlan.ProductID, itemPlan.OrderItemID)
		if err != nil {
			return nil, err
		}
		if err = reserved.Increment(quantity); err != nil {
			return nil, err
		}
		if err = stockRepo.Add(ctx, reserved); err != nil {
			return nil, err
		}
		return reserved, nil
	}

	if err = reserved.Increment(quantity); err != nil {
		return nil, err
	}
	if err = stockRepo.Update(ctx, reserved); err != nil {
		return nil, err
	}
	return reserved, nil
}

// persistMovements copies the candidate's in-memory movement templates
// onto the reserved row. Fresh identifiers, Planned status.
func (c PlanCommitter) persistMovements(
	ctx context.Context,
	chunk allocation.AllocationChunk,
	reserved *inventory.StockRow,
) error {
	movementRepo := c.uow.MovementRepository()

	for _, template := range chunk.Candidate.Movements {
		movement, err := inventory.NewPlannedMovement(
			kernel.NewUUID(),
			reserved.ID(),
			template.From(),
			template.To(),
			template.Kind(),
			template.MoveAt(),
			template.EstimatedVolumeCc(),
		)
		if err != nil {
			return err
		}
		if err = movementRepo.Add(ctx, movement); err != nil {
			return err
		}
	}

	return nil
}

// allocateOrders advances every touched order to Allocated.
func (c PlanCommitter) allocateOrders(ctx context.Context, touchedOrders map[string]kernel.UUID) error {
	orderRepo := c.uow.OrderRepository()

	for _, orderID := range touchedOrders {
		ord, err := orderRepo.Get(ctx, orderID)
		if err != nil {
			return err
		}
		if err = ord.Allocate(); err != nil {
			return err
		}
		if err = orderRepo.Update(ctx, ord); err != nil {
			return err
		}
	}

	return nil
}
