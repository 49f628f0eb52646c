package ports

import (
	"context"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
)

// MovementRepository defines the persistence contract for movements.
// Candidate generation reads movement history to resolve van positions;
// the plan committer writes planned movements.
type MovementRepository interface {
	// Add persists a new movement.
	Add(ctx context.Context, movement *inventory.Movement) error

	// GetLatestDoneByInventory retrieves the most recently executed Done
	// movement touching the inventory, or nil when the inventory has no
	// completed history.
	GetLatestDoneByInventory(ctx context.Context, inventoryID kernel.UUID) (*inventory.Movement, error)

	// GetNextPlannedByInventory retrieves the earliest Planned movement
	// touching the inventory, or nil when nothing is scheduled.
	GetNextPlannedByInventory(ctx context.Context, inventoryID kernel.UUID) (*inventory.Movement, error)
}
