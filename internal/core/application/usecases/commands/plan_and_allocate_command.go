package commands

import (
	"errors"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/guard"
)

var ErrPlanAndAllocateCommandIsNotConstructed = errors.New(
	"PlanAndAllocateCommand must be created via NewPlanAndAllocateCommand constructor",
)

// PlanAndAllocateCommand requests a full allocation run: candidate
// generation, global planning, and transactional commit.
//
// An empty order ID list means the run covers every order awaiting
// allocation.
//
// Example:
//
//	cmd, err := NewPlanAndAllocateCommand(nil)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewPlanAndAllocateCommandHandler(uowFactory, routing, fillReader)
//	plan, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNotEnoughStock) {
//	    // Nothing was persisted; retry once stock is replenished.
//	}
type PlanAndAllocateCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlanAndAllocateCommand creates a command for the given orders, or
// for all pending orders when the list is empty.
func NewPlanAndAllocateCommand(orderIDs []kernel.UUID) (PlanAndAllocateCommand, error) {
	cmd := PlanAndAllocateCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderIDs(orderIDs); err != nil {
		return PlanAndAllocateCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanAndAllocateCommand) Validate() error {
	return c.guard.Validate(ErrPlanAndAllocateCommandIsNotConstructed)
}

// OrderIDs returns the explicit batch, empty meaning all pending orders.
func (c PlanAndAllocateCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *PlanAndAllocateCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = orderIDs
	return nil
}
