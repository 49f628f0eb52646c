package ports

import (
	"context"

	"speedit/internal/core/domain/model/inventory"
)

// FillLevelReader reports how full a van currently is.
type FillLevelReader interface {
	// FillFraction returns the occupied volume fraction (0..1) of the van
	// relative to its capacity.
	FillFraction(ctx context.Context, van *inventory.Inventory) (float64, error)
}
