package inventory

import (
	"errors"

	"speedit/internal/core/domain/model/kernel"
)

// ErrEndpointIsNotConstructed is returned for a zero-value Endpoint.
var ErrEndpointIsNotConstructed = errors.New(
	"Endpoint must be created via InventoryEndpoint or ClientEndpoint constructor")

type endpointKind int

const (
	endpointUnknown endpointKind = iota
	endpointInventory
	endpointClient
)

// Endpoint identifies one side of a movement: either a concrete inventory
// or the customer. A tagged union rather than a nullable inventory
// reference, so client deliveries are an explicit variant.
type Endpoint struct {
	kind        endpointKind
	inventoryID kernel.UUID
}

// InventoryEndpoint creates an endpoint at the given inventory.
func InventoryEndpoint(inventoryID kernel.UUID) (Endpoint, error) {
	if err := inventoryID.Validate(); err != nil {
		return Endpoint{}, err
	}
	return Endpoint{kind: endpointInventory, inventoryID: inventoryID}, nil
}

// ClientEndpoint creates the customer-side endpoint.
func ClientEndpoint() Endpoint {
	return Endpoint{kind: endpointClient}
}

// Validate rejects the zero value.
func (e Endpoint) Validate() error {
	if e.kind == endpointUnknown {
		return ErrEndpointIsNotConstructed
	}
	return nil
}

// IsClient reports whether the endpoint is the customer.
func (e Endpoint) IsClient() bool {
	return e.kind == endpointClient
}

// InventoryID returns the inventory identifier and true for an inventory
// endpoint, or a zero UUID and false for the client variant.
func (e Endpoint) InventoryID() (kernel.UUID, bool) {
	if e.kind != endpointInventory {
		return kernel.UUID{}, false
	}
	return e.inventoryID, true
}

// IsEqual compares endpoints by variant and inventory identity.
func (e Endpoint) IsEqual(other Endpoint) bool {
	if e.kind != other.kind {
		return false
	}
	if e.kind == endpointInventory {
		return e.inventoryID.IsEqual(other.inventoryID)
	}
	return true
}
