package order

import (
	"errors"

	"speedit/internal/core/domain/model/kernel"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods. This ensures all
// orders are properly validated.
var ErrOrderIsNotConstructed = errors.New(
	"Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a client order in the system. It is the aggregate root
// that manages the fulfillment lifecycle from creation through allocation
// to completion.
//
// Order follows these invariants:
//   - Must have a valid unique identifier
//   - Must have a valid client location
//   - Must have at least one item
//   - Status transitions follow defined business rules
//   - Can only be created through a constructor
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// clientLocation is the delivery destination
	clientLocation kernel.GeoPoint

	// items are the requested product lines (at least one)
	items []*OrderItem

	// status represents the current state in the fulfillment lifecycle
	status Status

	// isConstructed ensures the order was created via a constructor
	isConstructed bool
}

// NewOrder creates a new Order in Created status. This is the only way,
// together with RestoreOrder, to create a valid Order.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - clientLocation: Delivery destination with validated coordinates
//   - items: Requested product lines (at least one, each valid and owned
//     by this order)
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, clientLocation kernel.GeoPoint, items []*OrderItem) (*Order, error) {
	return RestoreOrder(id, clientLocation, items, Created)
}

// RestoreOrder reconstructs an order from persistence with an explicit status.
func RestoreOrder(
	id kernel.UUID,
	clientLocation kernel.GeoPoint,
	items []*OrderItem,
	status Status,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setClientLocation(clientLocation),
		order.setItems(items),
		order.setStatus(status),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed.
// This prevents bypassing validation by directly instantiating the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// ClientLocation returns the delivery destination.
func (o *Order) ClientLocation() kernel.GeoPoint {
	return o.clientLocation
}

// Items returns the requested product lines.
func (o *Order) Items() []*OrderItem {
	return o.items
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Allocate marks the order as allocated once stock has been reserved for
// every item.
//
// This method enforces the following business rules:
//   - The order must be in Created status
//   - Allocation covers the whole order; partial reservations are rolled
//     back before this method is called
//
// Returns:
//   - nil on successful allocation
//   - error if the status transition is not allowed
func (o *Order) Allocate() error {
	newStatus, err := o.status.Allocate()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Complete marks the order as completed (delivered).
//
// This method enforces the following business rules:
//   - The order must be in Allocated status
//   - Completed is a final state with no further transitions
//
// Returns:
//   - nil on successful completion
//   - error if the order is not in Allocated status
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setClientLocation validates and sets the delivery destination.
func (o *Order) setClientLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.clientLocation = location
	return nil
}

// setItems validates and sets the product lines. Every item must be
// constructed and belong to this order.
func (o *Order) setItems(items []*OrderItem) error {
	if len(items) == 0 {
		return errors.New("order must have at least one item")
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if !item.OrderID().IsEqual(o.id) {
			return errors.New("order item belongs to a different order")
		}
	}

	o.items = items
	return nil
}

// setStatus validates and sets the lifecycle status.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
