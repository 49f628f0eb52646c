package ports

import (
	"context"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
)

// InventoryRepository defines the persistence contract for inventory
// aggregates. Inventories are created and edited by management tooling;
// the allocation engine only reads them.
type InventoryRepository interface {
	// Get retrieves an inventory by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error)

	// GetActiveVans retrieves all active inventories of the Van kind.
	GetActiveVans(ctx context.Context) ([]*inventory.Inventory, error)
}
