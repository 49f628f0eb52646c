package stockrepo

import (
	"context"
	"errors"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStockRepository implements StockRepository using GORM.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GORM stock repository.
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// Add saves a new stock row to the database.
func (r *GormStockRepository) Add(ctx context.Context, row *inventory.StockRow) error {
	if err := row.Validate(); err != nil {
		return err
	}

	dto := fromDomain(row)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an existing stock row to the database.
func (r *GormStockRepository) Update(ctx context.Context, row *inventory.StockRow) error {
	if err := row.Validate(); err != nil {
		return err
	}

	dto := fromDomain(row)
	result := r.db.WithContext(ctx).Model(&StockRowDTO{}).Where("id = ?", dto.ID).Updates(map[string]any{
		"order_item_id": dto.OrderItemID,
		"amount":        dto.Amount,
	})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a stock row by ID.
func (r *GormStockRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.StockRow, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockRowDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock row", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailableByProduct retrieves all unreserved, non-empty rows of the
// product held by active warehouse and van inventories.
func (r *GormStockRepository) GetAvailableByProduct(
	ctx context.Context,
	productID kernel.UUID,
) ([]*inventory.StockRow, error) {
	if err := productID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StockRowDTO
	err := r.db.WithContext(ctx).
		Joins("JOIN inventories ON inventories.id = stock_rows.inventory_id").
		Where("stock_rows.product_id = ?", productID.Bytes()).
		Where("stock_rows.order_item_id IS NULL").
		Where("stock_rows.amount > 0").
		Where("inventories.active = ?", true).
		Where("inventories.kind IN ?", []int{int(inventory.KindWarehouse), int(inventory.KindVan)}).
		Order("stock_rows.id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return rowsToDomain(dtos)
}

// FindReserved retrieves the row reserved for the order item at the given
// inventory and product, or nil when none exists yet.
func (r *GormStockRepository) FindReserved(
	ctx context.Context,
	orderItemID, inventoryID, productID kernel.UUID,
) (*inventory.StockRow, error) {
	if err := errors.Join(
		orderItemID.Validate(),
		inventoryID.Validate(),
		productID.Validate(),
	); err != nil {
		return nil, err
	}

	var dto StockRowDTO
	err := r.db.WithContext(ctx).First(&dto,
		"order_item_id = ? AND inventory_id = ? AND product_id = ?",
		orderItemID.Bytes(), inventoryID.Bytes(), productID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetReservedByOrderItem retrieves all rows reserved for the order item.
func (r *GormStockRepository) GetReservedByOrderItem(
	ctx context.Context,
	orderItemID kernel.UUID,
) ([]*inventory.StockRow, error) {
	if err := orderItemID.Validate(); err != nil {
		return nil, err
	}

	var dtos []StockRowDTO
	err := r.db.WithContext(ctx).
		Order("id").
		Find(&dtos, "order_item_id = ?", orderItemID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return rowsToDomain(dtos)
}

func rowsToDomain(dtos []StockRowDTO) ([]*inventory.StockRow, error) {
	rows := make([]*inventory.StockRow, 0, len(dtos))
	for _, dto := range dtos {
		row, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
