package inventory

import (
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"
)

// ErrInventoryIsNotConstructed is returned when an Inventory instance was
// not created through NewInventory or RestoreInventory.
var ErrInventoryIsNotConstructed = errors.New(
	"Inventory must be created via NewInventory or RestoreInventory constructor")

// Inventory represents a physical stock-holding unit: a warehouse, a van,
// or a local store. It is the aggregate root for the stock rows it holds.
//
// Invariants:
//   - valid unique identifier and kind
//   - valid geographic location (a van's location is its home base)
//   - capacity strictly positive, in cubic centimetres
//
// The core treats inventories as read-only; they are created and edited by
// management tooling outside this engine.
type Inventory struct {
	id         kernel.UUID
	kind       Kind
	name       string
	location   kernel.GeoPoint
	capacityCc float64
	active     bool

	isConstructed bool
}

// NewInventory creates an active Inventory with validation.
func NewInventory(
	id kernel.UUID,
	kind Kind,
	name string,
	location kernel.GeoPoint,
	capacityCc float64,
) (*Inventory, error) {
	return RestoreInventory(id, kind, name, location, capacityCc, true)
}

// RestoreInventory reconstructs an Inventory from persistence, including
// its active flag.
func RestoreInventory(
	id kernel.UUID,
	kind Kind,
	name string,
	location kernel.GeoPoint,
	capacityCc float64,
	active bool,
) (*Inventory, error) {
	inv := &Inventory{
		active:        active,
		isConstructed: true,
	}

	if err := errors.Join(
		inv.setID(id),
		inv.setKind(kind),
		inv.setName(name),
		inv.setLocation(location),
		inv.setCapacityCc(capacityCc),
	); err != nil {
		return nil, err
	}

	return inv, nil
}

// Validate ensures the Inventory was created via a constructor.
func (i *Inventory) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrInventoryIsNotConstructed
	}
	return nil
}

// IsEqual compares inventories by identifier.
func (i *Inventory) IsEqual(other *Inventory) bool {
	return other != nil && i.id.IsEqual(other.id)
}

// ID returns the unique identifier.
func (i *Inventory) ID() kernel.UUID {
	return i.id
}

// Kind returns the inventory kind.
func (i *Inventory) Kind() Kind {
	return i.kind
}

// Name returns the human-readable location description.
func (i *Inventory) Name() string {
	return i.name
}

// Location returns the geographic position. For vans this is the home base
// the route resolver falls back to when there is no movement history.
func (i *Inventory) Location() kernel.GeoPoint {
	return i.location
}

// CapacityCc returns the volumetric capacity in cubic centimetres.
func (i *Inventory) CapacityCc() float64 {
	return i.capacityCc
}

// IsActive reports whether the unit is in service.
func (i *Inventory) IsActive() bool {
	return i.active
}

// IsVan reports whether the unit is a mobile van.
func (i *Inventory) IsVan() bool {
	return i.kind == KindVan
}

func (i *Inventory) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Inventory) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	i.kind = kind
	return nil
}

func (i *Inventory) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	i.name = name
	return nil
}

func (i *Inventory) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	i.location = location
	return nil
}

func (i *Inventory) setCapacityCc(capacityCc float64) error {
	if capacityCc <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacity is invalid",
			fmt.Errorf("%f is not greater than 0", capacityCc))
	}
	i.capacityCc = capacityCc
	return nil
}
