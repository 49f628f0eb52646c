package movementrepo

import (
	"context"
	"errors"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormMovementRepository implements MovementRepository using GORM.
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GORM movement repository.
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

// Add saves a new movement to the database.
func (r *GormMovementRepository) Add(ctx context.Context, movement *inventory.Movement) error {
	if err := movement.Validate(); err != nil {
		return err
	}

	dto := fromDomain(movement)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetLatestDoneByInventory retrieves the most recently executed Done
// movement touching the inventory, or nil when it has no completed history.
func (r *GormMovementRepository) GetLatestDoneByInventory(
	ctx context.Context,
	inventoryID kernel.UUID,
) (*inventory.Movement, error) {
	return r.firstByInventory(ctx, inventoryID, inventory.Done, "move_at DESC")
}

// GetNextPlannedByInventory retrieves the earliest Planned movement
// touching the inventory, or nil when nothing is scheduled.
func (r *GormMovementRepository) GetNextPlannedByInventory(
	ctx context.Context,
	inventoryID kernel.UUID,
) (*inventory.Movement, error) {
	return r.firstByInventory(ctx, inventoryID, inventory.Planned, "move_at ASC")
}

func (r *GormMovementRepository) firstByInventory(
	ctx context.Context,
	inventoryID kernel.UUID,
	status inventory.MovementStatus,
	ordering string,
) (*inventory.Movement, error) {
	if err := inventoryID.Validate(); err != nil {
		return nil, err
	}

	var dto MovementDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(status)).
		Where("from_inventory_id = ? OR to_inventory_id = ?", inventoryID.Bytes(), inventoryID.Bytes()).
		Order(ordering).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}
