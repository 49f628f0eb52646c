package inventoryrepo

import (
	"context"
	"errors"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormInventoryRepository implements InventoryRepository using GORM.
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GORM inventory repository.
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// Add saves a new inventory to the database.
func (r *GormInventoryRepository) Add(ctx context.Context, aggregate *inventory.Inventory) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an inventory by ID.
func (r *GormInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto InventoryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("inventory", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveVans retrieves all active inventories of the Van kind.
func (r *GormInventoryRepository) GetActiveVans(ctx context.Context) ([]*inventory.Inventory, error) {
	var dtos []InventoryDTO
	if err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "kind = ? AND active = ?", inventory.KindVan, true).Error; err != nil {
		return nil, err
	}

	vans := make([]*inventory.Inventory, 0, len(dtos))
	for _, dto := range dtos {
		van, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		vans = append(vans, van)
	}

	return vans, nil
}
