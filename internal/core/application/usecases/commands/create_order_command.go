package commands

import (
	"errors"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errors.New("order must have at least one item")
	ErrQuantityIsInvalid     = errors.New("quantity must be greater than 0")
)

// OrderItemSpec describes one requested product line of a new order.
type OrderItemSpec struct {
	ProductID kernel.UUID
	Quantity  int
}

// CreateOrderCommand represents a request to register a new client order.
// Encapsulates the delivery destination and the requested product lines.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	client, _ := kernel.NewGeoPoint(24.7136, 46.6753)
//	cmd, err := NewCreateOrderCommand(orderID, client, []OrderItemSpec{
//	    {ProductID: productID, Quantity: 8},
//	})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	clientLocation kernel.GeoPoint
	items          []OrderItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that the order ID and location are valid and every item
// requests a positive quantity of a valid product.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientLocation kernel.GeoPoint,
	items []OrderItemSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientLocation(clientLocation),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ClientLocation returns the delivery destination.
func (c CreateOrderCommand) ClientLocation() kernel.GeoPoint {
	return c.clientLocation
}

// Items returns the requested product lines.
func (c CreateOrderCommand) Items() []OrderItemSpec {
	return c.items
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientLocation(clientLocation kernel.GeoPoint) error {
	if err := clientLocation.Validate(); err != nil {
		return err
	}

	c.clientLocation = clientLocation
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemSpec) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}

	for _, item := range items {
		if err := item.ProductID.Validate(); err != nil {
			return err
		}
		if item.Quantity <= 0 {
			return ErrQuantityIsInvalid
		}
	}

	c.items = items
	return nil
}
