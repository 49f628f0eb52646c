package services_test

import (
	"context"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/product"
	"speedit/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockRoutingProvider struct{ mock.Mock }

func (m *MockRoutingProvider) OptimizeTour(ctx context.Context, stops []kernel.GeoPoint) (ports.TourSummary, error) {
	args := m.Called(ctx, stops)
	return args.Get(0).(ports.TourSummary), args.Error(1)
}

func (m *MockRoutingProvider) RouteBetween(ctx context.Context, from, to kernel.GeoPoint) (ports.Route, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(ports.Route), args.Error(1)
}

func (m *MockRoutingProvider) Locality(ctx context.Context, point kernel.GeoPoint) (string, error) {
	args := m.Called(ctx, point)
	return args.String(0), args.Error(1)
}

type MockMovementRepository struct{ mock.Mock }

func (m *MockMovementRepository) Add(ctx context.Context, movement *inventory.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) GetLatestDoneByInventory(
	ctx context.Context,
	inventoryID kernel.UUID,
) (*inventory.Movement, error) {
	args := m.Called(ctx, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Movement), args.Error(1)
}

func (m *MockMovementRepository) GetNextPlannedByInventory(
	ctx context.Context,
	inventoryID kernel.UUID,
) (*inventory.Movement, error) {
	args := m.Called(ctx, inventoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Movement), args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) Add(ctx context.Context, row *inventory.StockRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockStockRepository) Update(ctx context.Context, row *inventory.StockRow) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func (m *MockStockRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.StockRow, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRow), args.Error(1)
}

func (m *MockStockRepository) GetAvailableByProduct(
	ctx context.Context,
	productID kernel.UUID,
) ([]*inventory.StockRow, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockRow), args.Error(1)
}

func (m *MockStockRepository) FindReserved(
	ctx context.Context,
	orderItemID, inventoryID, productID kernel.UUID,
) (*inventory.StockRow, error) {
	args := m.Called(ctx, orderItemID, inventoryID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockRow), args.Error(1)
}

func (m *MockStockRepository) GetReservedByOrderItem(
	ctx context.Context,
	orderItemID kernel.UUID,
) ([]*inventory.StockRow, error) {
	args := m.Called(ctx, orderItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.StockRow), args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Inventory), args.Error(1)
}

func (m *MockInventoryRepository) GetActiveVans(ctx context.Context) ([]*inventory.Inventory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*inventory.Inventory), args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

type MockFillLevelReader struct{ mock.Mock }

func (m *MockFillLevelReader) FillFraction(ctx context.Context, van *inventory.Inventory) (float64, error) {
	args := m.Called(ctx, van)
	return args.Get(0).(float64), args.Error(1)
}
