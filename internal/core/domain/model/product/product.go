// Package product holds the catalog entry aggregate. Products carry the unit
// volume used to estimate cargo sizes and van fill levels.
package product

import (
	"errors"
	"fmt"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"
)

// ErrProductIsNotConstructed is returned when a Product instance was not
// created through NewProduct or RestoreProduct.
var ErrProductIsNotConstructed = errors.New(
	"Product must be created via NewProduct or RestoreProduct constructor")

// Product is a catalog entry. A zero unit volume means the volume is not
// catalogued; consumers substitute a conservative default.
type Product struct {
	id           kernel.UUID
	name         string
	unitVolumeCc float64

	isConstructed bool
}

// NewProduct creates a product with a fresh identifier.
func NewProduct(name string, unitVolumeCc float64) (*Product, error) {
	return RestoreProduct(kernel.NewUUID(), name, unitVolumeCc)
}

// RestoreProduct reconstructs a product from persistence.
func RestoreProduct(id kernel.UUID, name string, unitVolumeCc float64) (*Product, error) {
	p := &Product{
		isConstructed: true,
	}

	if err := errors.Join(
		p.setID(id),
		p.setName(name),
		p.setUnitVolumeCc(unitVolumeCc),
	); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate ensures the product was created via a constructor.
func (p *Product) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProductIsNotConstructed
	}
	return nil
}

// ID returns the unique identifier.
func (p *Product) ID() kernel.UUID {
	return p.id
}

// Name returns the display name.
func (p *Product) Name() string {
	return p.name
}

// UnitVolumeCc returns the volume of one unit in cubic centimetres, or zero
// when the volume is not catalogued.
func (p *Product) UnitVolumeCc() float64 {
	return p.unitVolumeCc
}

// HasVolume reports whether a unit volume is catalogued.
func (p *Product) HasVolume() bool {
	return p.unitVolumeCc > 0
}

func (p *Product) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Product) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	p.name = name
	return nil
}

func (p *Product) setUnitVolumeCc(v float64) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause("unitVolumeCc is invalid",
			fmt.Errorf("%f is negative", v))
	}
	p.unitVolumeCc = v
	return nil
}
