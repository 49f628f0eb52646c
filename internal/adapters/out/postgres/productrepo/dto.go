// Package productrepo provides data transfer objects and mapping functions
// for catalog persistence.
package productrepo

import (
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/product"

	"github.com/google/uuid"
)

// ProductDTO represents the database structure for persisting catalog entries.
type ProductDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null"`
	UnitVolumeCc float64   `gorm:"type:double precision;not null"`
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product to its database representation.
func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID().Bytes(),
		Name:         p.Name(),
		UnitVolumeCc: p.UnitVolumeCc(),
	}
}

// toDomain converts a database DTO to a product.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, dto.UnitVolumeCc)
}
