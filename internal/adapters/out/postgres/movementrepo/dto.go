// Package movementrepo provides data transfer objects and mapping functions
// for movement persistence. A movement endpoint is stored as a nullable
// inventory reference: null means the client side of a delivery.
package movementrepo

import (
	"time"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// MovementDTO represents the database structure for persisting movements.
type MovementDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StockRowID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	FromInventoryID    *uuid.UUID `gorm:"type:uuid;index"`
	ToInventoryID      *uuid.UUID `gorm:"type:uuid;index"`
	Kind               int        `gorm:"type:int;not null"`
	Status             int        `gorm:"type:int;not null;index"`
	MoveAt             time.Time  `gorm:"not null;index"`
	EstimatedVolumeCc  float64    `gorm:"type:double precision;not null"`
	AssignedOperatorID *uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for movement entities.
func (MovementDTO) TableName() string {
	return "movements"
}

// fromDomain converts a movement to its database representation.
func fromDomain(movement *inventory.Movement) MovementDTO {
	var operatorID *uuid.UUID
	if id := movement.AssignedOperatorID(); id != nil {
		raw := id.Bytes()
		operatorID = &raw
	}

	return MovementDTO{
		ID:                 movement.ID().Bytes(),
		StockRowID:         movement.StockRowID().Bytes(),
		FromInventoryID:    endpointToColumn(movement.From()),
		ToInventoryID:      endpointToColumn(movement.To()),
		Kind:               int(movement.Kind()),
		Status:             int(movement.Status()),
		MoveAt:             movement.MoveAt(),
		EstimatedVolumeCc:  movement.EstimatedVolumeCc(),
		AssignedOperatorID: operatorID,
	}
}

// toDomain converts a database DTO to a movement.
func toDomain(dto MovementDTO) (*inventory.Movement, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	stockRowID, err := kernel.UUIDFromBytes(dto.StockRowID[:])
	if err != nil {
		return nil, err
	}

	from, err := columnToEndpoint(dto.FromInventoryID)
	if err != nil {
		return nil, err
	}
	to, err := columnToEndpoint(dto.ToInventoryID)
	if err != nil {
		return nil, err
	}

	var operatorID *kernel.UUID
	if dto.AssignedOperatorID != nil {
		opID, opErr := kernel.UUIDFromBytes((*dto.AssignedOperatorID)[:])
		if opErr != nil {
			return nil, opErr
		}
		operatorID = &opID
	}

	return inventory.RestoreMovement(
		id, stockRowID, from, to,
		inventory.MovementKind(dto.Kind),
		inventory.MovementStatus(dto.Status),
		dto.MoveAt, dto.EstimatedVolumeCc, operatorID)
}

func endpointToColumn(endpoint inventory.Endpoint) *uuid.UUID {
	if inventoryID, ok := endpoint.InventoryID(); ok {
		raw := inventoryID.Bytes()
		return &raw
	}
	return nil
}

func columnToEndpoint(column *uuid.UUID) (inventory.Endpoint, error) {
	if column == nil {
		return inventory.ClientEndpoint(), nil
	}

	inventoryID, err := kernel.UUIDFromBytes((*column)[:])
	if err != nil {
		return inventory.Endpoint{}, err
	}
	return inventory.InventoryEndpoint(inventoryID)
}
