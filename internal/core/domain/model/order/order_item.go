package order

import (
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"
)

// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was not
// created through NewOrderItem or RestoreOrderItem.
var ErrOrderItemIsNotConstructed = errors.New(
	"OrderItem must be created via NewOrderItem or RestoreOrderItem constructor")

// OrderItem is a line of an order: a requested quantity of one product.
// Items belong to exactly one order and are the unit of candidate
// generation and allocation.
type OrderItem struct {
	id        kernel.UUID
	orderID   kernel.UUID
	productID kernel.UUID
	quantity  int

	isConstructed bool
}

// NewOrderItem creates an order item with a fresh identifier.
func NewOrderItem(orderID kernel.UUID, productID kernel.UUID, quantity int) (*OrderItem, error) {
	return RestoreOrderItem(kernel.NewUUID(), orderID, productID, quantity)
}

// RestoreOrderItem reconstructs an order item from persistence.
func RestoreOrderItem(id kernel.UUID, orderID kernel.UUID, productID kernel.UUID, quantity int) (*OrderItem, error) {
	item := &OrderItem{
		isConstructed: true,
	}

	if err := errors.Join(
		item.setID(id),
		item.setOrderID(orderID),
		item.setProductID(productID),
		item.setQuantity(quantity),
	); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate ensures the item was created via a constructor.
func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}

// IsEqual compares two items by their unique identifiers.
func (i *OrderItem) IsEqual(other *OrderItem) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// OrderID returns the owning order's identifier.
func (i *OrderItem) OrderID() kernel.UUID {
	return i.orderID
}

// ProductID returns the requested product's identifier.
func (i *OrderItem) ProductID() kernel.UUID {
	return i.productID
}

// Quantity returns the requested number of units.
func (i *OrderItem) Quantity() int {
	return i.quantity
}

func (i *OrderItem) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *OrderItem) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.orderID = id
	return nil
}

func (i *OrderItem) setProductID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.productID = id
	return nil
}

func (i *OrderItem) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	i.quantity = quantity
	return nil
}
