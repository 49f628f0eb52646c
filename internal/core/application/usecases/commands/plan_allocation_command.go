package commands

import (
	"errors"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/guard"
)

var ErrPlanAllocationCommandIsNotConstructed = errors.New(
	"PlanAllocationCommand must be created via NewPlanAllocationCommand constructor",
)

// PlanAllocationCommand requests a dry planning run: candidate
// generation and global planning without committing anything. Useful for
// previewing how a batch would be served.
//
// An empty order ID list means the run covers every order awaiting
// allocation.
type PlanAllocationCommand struct { //nolint:recvcheck //using for validation
	orderIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewPlanAllocationCommand creates a command for the given orders, or
// for all pending orders when the list is empty.
func NewPlanAllocationCommand(orderIDs []kernel.UUID) (PlanAllocationCommand, error) {
	cmd := PlanAllocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderIDs(orderIDs); err != nil {
		return PlanAllocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c PlanAllocationCommand) Validate() error {
	return c.guard.Validate(ErrPlanAllocationCommandIsNotConstructed)
}

// OrderIDs returns the explicit batch, empty meaning all pending orders.
func (c PlanAllocationCommand) OrderIDs() []kernel.UUID {
	return c.orderIDs
}

func (c *PlanAllocationCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.orderIDs = orderIDs
	return nil
}
