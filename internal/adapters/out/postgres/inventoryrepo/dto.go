// Package inventoryrepo provides data transfer objects and mapping functions
// for inventory persistence. Inventories are read-only from the allocation
// engine's point of view; writes come from management tooling.
package inventoryrepo

import (
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// InventoryDTO represents the database structure for persisting inventories.
type InventoryDTO struct {
	ID         uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Kind       int         `gorm:"type:int;not null;index"`
	Name       string      `gorm:"type:varchar(255);not null"`
	Location   GeoPointDTO `gorm:"embedded;embeddedPrefix:location_"`
	CapacityCc float64     `gorm:"type:double precision;not null"`
	Active     bool        `gorm:"not null;index"`
}

// TableName specifies the database table name for inventory entities.
func (InventoryDTO) TableName() string {
	return "inventories"
}

// GeoPointDTO represents the embedded home coordinates within the
// inventories table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// fromDomain converts an inventory aggregate to its database representation.
func fromDomain(aggregate *inventory.Inventory) InventoryDTO {
	return InventoryDTO{
		ID:   aggregate.ID().Bytes(),
		Kind: int(aggregate.Kind()),
		Name: aggregate.Name(),
		Location: GeoPointDTO{
			Latitude:  aggregate.Location().Latitude(),
			Longitude: aggregate.Location().Longitude(),
		},
		CapacityCc: aggregate.CapacityCc(),
		Active:     aggregate.IsActive(),
	}
}

// toDomain converts a database DTO to an inventory aggregate.
func toDomain(dto InventoryDTO) (*inventory.Inventory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	return inventory.RestoreInventory(
		id, inventory.Kind(dto.Kind), dto.Name, location, dto.CapacityCc, dto.Active)
}
