package ports

import (
	"context"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying orders based on
// their fulfillment state.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items by unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetItem retrieves a single order item by its unique identifier.
	GetItem(ctx context.Context, id kernel.UUID) (*order.OrderItem, error)

	// GetAllInCreatedStatus retrieves all orders awaiting allocation.
	GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error)
}
