package ports

import (
	"context"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
)

// StockRepository defines the persistence contract for stock rows.
// Candidate generation only reads available rows; the plan committer is
// the sole writer.
type StockRepository interface {
	// Add persists a new stock row.
	Add(ctx context.Context, row *inventory.StockRow) error

	// Update persists changes to an existing stock row.
	Update(ctx context.Context, row *inventory.StockRow) error

	// Get retrieves a stock row by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*inventory.StockRow, error)

	// GetAvailableByProduct retrieves all available (unreserved) rows of
	// the product held by active warehouse and van inventories.
	GetAvailableByProduct(ctx context.Context, productID kernel.UUID) ([]*inventory.StockRow, error)

	// FindReserved retrieves the row reserved for the order item at the
	// given inventory and product, or nil when none exists yet. At most
	// one such row exists per triple.
	FindReserved(ctx context.Context, orderItemID, inventoryID, productID kernel.UUID) (*inventory.StockRow, error)

	// GetReservedByOrderItem retrieves all rows reserved for the order item.
	GetReservedByOrderItem(ctx context.Context, orderItemID kernel.UUID) ([]*inventory.StockRow, error)
}
