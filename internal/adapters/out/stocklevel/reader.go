// Package stocklevel reads van fill levels from the stock tables.
package stocklevel

import (
	"context"
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/inventory"

	"gorm.io/gorm"
)

// fallbackUnitVolumeCc substitutes for products missing from the
// catalogue so an unknown product still occupies space.
const fallbackUnitVolumeCc = 1000.0

// GormFillLevelReader computes a van's occupied volume fraction from its
// current stock rows and the product catalogue.
type GormFillLevelReader struct {
	db *gorm.DB
}

// NewGormFillLevelReader creates a fill level reader over the given
// database connection.
func NewGormFillLevelReader(db *gorm.DB) (*GormFillLevelReader, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	return &GormFillLevelReader{db: db}, nil
}

// FillFraction returns occupied volume divided by capacity, clamped to
// the 0..1 range. Reserved and free rows both occupy space until a
// movement physically removes them.
func (r *GormFillLevelReader) FillFraction(ctx context.Context, van *inventory.Inventory) (float64, error) {
	if van == nil {
		return 0, errors.New("van is required")
	}
	if err := van.Validate(); err != nil {
		return 0, err
	}

	var occupiedCc float64
	err := r.db.WithContext(ctx).
		Table("stock_rows").
		Select("COALESCE(SUM(stock_rows.amount * COALESCE(products.unit_volume_cc, ?)), 0)", fallbackUnitVolumeCc).
		Joins("LEFT JOIN products ON products.id = stock_rows.product_id").
		Where("stock_rows.inventory_id = ?", van.ID().Bytes()).
		Scan(&occupiedCc).Error
	if err != nil {
		return 0, fmt.Errorf("sum occupied volume: %w", err)
	}

	capacity := van.CapacityCc()
	if capacity <= 0 {
		return 1, nil
	}

	fraction := occupiedCc / capacity
	if fraction > 1 {
		fraction = 1
	}
	return fraction, nil
}
