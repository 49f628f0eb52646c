package ports

import (
	"context"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/product"
)

// ProductRepository defines the read contract for catalog entries.
type ProductRepository interface {
	// Get retrieves a product by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
