package inventory

import (
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"
)

// ErrStockRowIsNotConstructed is returned when a StockRow instance was not
// created through NewStockRow, NewReservedStockRow, or RestoreStockRow.
var ErrStockRowIsNotConstructed = errors.New(
	"StockRow must be created via NewStockRow, NewReservedStockRow, or RestoreStockRow constructor")

// StockRow tracks a quantity of one product held by one inventory. A row
// with no order-item link is available stock, consumable by any future
// reservation; a row linked to an order item is reserved for exactly that
// item.
//
// For a given (inventory, product, order item) triple at most one row
// exists: reservation growth increments the row's amount, it never creates
// duplicates. Rows are never deleted by the engine; a fully consumed row
// keeps existing with amount zero.
type StockRow struct {
	id          kernel.UUID
	inventoryID kernel.UUID
	productID   kernel.UUID
	orderItemID *kernel.UUID
	amount      int

	isConstructed bool
}

// NewStockRow creates an available (unreserved) stock row.
func NewStockRow(id, inventoryID, productID kernel.UUID, amount int) (*StockRow, error) {
	return RestoreStockRow(id, inventoryID, productID, nil, amount)
}

// NewReservedStockRow creates an empty row reserved for an order item.
// The plan committer uses this when a reservation touches an inventory and
// product combination for the first time, then increments the amount.
func NewReservedStockRow(id, inventoryID, productID, orderItemID kernel.UUID) (*StockRow, error) {
	if err := orderItemID.Validate(); err != nil {
		return nil, err
	}
	return RestoreStockRow(id, inventoryID, productID, &orderItemID, 0)
}

// RestoreStockRow reconstructs a row from persistence.
func RestoreStockRow(
	id, inventoryID, productID kernel.UUID,
	orderItemID *kernel.UUID,
	amount int,
) (*StockRow, error) {
	row := &StockRow{
		isConstructed: true,
	}

	if err := errors.Join(
		row.setID(id),
		row.setInventoryID(inventoryID),
		row.setProductID(productID),
		row.setOrderItemID(orderItemID),
		row.setAmount(amount),
	); err != nil {
		return nil, err
	}

	return row, nil
}

// Validate ensures the row was created via a constructor.
func (r *StockRow) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrStockRowIsNotConstructed
	}
	return nil
}

// IsEqual compares rows by identifier.
func (r *StockRow) IsEqual(other *StockRow) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the unique identifier.
func (r *StockRow) ID() kernel.UUID {
	return r.id
}

// InventoryID returns the holding inventory's identifier.
func (r *StockRow) InventoryID() kernel.UUID {
	return r.inventoryID
}

// ProductID returns the stocked product's identifier.
func (r *StockRow) ProductID() kernel.UUID {
	return r.productID
}

// OrderItemID returns the reserving order item, or nil for available stock.
func (r *StockRow) OrderItemID() *kernel.UUID {
	return r.orderItemID
}

// Amount returns the unit count, always >= 0.
func (r *StockRow) Amount() int {
	return r.amount
}

// IsAvailable reports whether the row is unreserved.
func (r *StockRow) IsAvailable() bool {
	return r.orderItemID == nil
}

// Decrement removes qty units from the row. Fails if qty is not positive
// or exceeds the current amount.
func (r *StockRow) Decrement(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	if qty > r.amount {
		return errs.NewValueIsOutOfRangeError("qty", qty, 1, r.amount)
	}
	r.amount -= qty
	return nil
}

// Increment adds qty units to the row. Fails if qty is not positive.
func (r *StockRow) Increment(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	r.amount += qty
	return nil
}

func (r *StockRow) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

func (r *StockRow) setInventoryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.inventoryID = id
	return nil
}

func (r *StockRow) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.productID = id
	return nil
}

func (r *StockRow) setOrderItemID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	r.orderItemID = id
	return nil
}

func (r *StockRow) setAmount(amount int) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%d is negative", amount))
	}
	r.amount = amount
	return nil
}
