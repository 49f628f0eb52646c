// Package stockrepo provides data transfer objects and mapping functions for
// stock row persistence. A row with a null order item reference is available
// stock; a non-null reference marks the row as reserved.
package stockrepo

import (
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// StockRowDTO represents the database structure for persisting stock rows.
type StockRowDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	InventoryID uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderItemID *uuid.UUID `gorm:"type:uuid;index"`
	Amount      int        `gorm:"type:int;not null"`
}

// TableName specifies the database table name for stock row entities.
func (StockRowDTO) TableName() string {
	return "stock_rows"
}

// fromDomain converts a stock row to its database representation.
func fromDomain(row *inventory.StockRow) StockRowDTO {
	var orderItemID *uuid.UUID
	if id := row.OrderItemID(); id != nil {
		raw := id.Bytes()
		orderItemID = &raw
	}

	return StockRowDTO{
		ID:          row.ID().Bytes(),
		InventoryID: row.InventoryID().Bytes(),
		ProductID:   row.ProductID().Bytes(),
		OrderItemID: orderItemID,
		Amount:      row.Amount(),
	}
}

// toDomain converts a database DTO to a stock row.
func toDomain(dto StockRowDTO) (*inventory.StockRow, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	inventoryID, err := kernel.UUIDFromBytes(dto.InventoryID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	var orderItemID *kernel.UUID
	if dto.OrderItemID != nil {
		itemID, itemErr := kernel.UUIDFromBytes((*dto.OrderItemID)[:])
		if itemErr != nil {
			return nil, itemErr
		}
		orderItemID = &itemID
	}

	return inventory.RestoreStockRow(id, inventoryID, productID, orderItemID, dto.Amount)
}
