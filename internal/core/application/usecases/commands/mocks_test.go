package commands_test

import (
	"context"

	"speedit/internal/core/application/usecases/commands"
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/order"
	"speedit/internal/core/domain/model/product"
	"speedit/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	ord, _ := args.Get(0).(*order.Order)
	return ord, args.Error(1)
}

func (m *MockOrderRepository) GetItem(ctx context.Context, id kernel.UUID) (*order.OrderItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*order.OrderItem)
	return item, args.Error(1)
}

func (m *MockOrderRepository) GetAllInCreatedStatus(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
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
	row, _ := args.Get(0).(*inventory.StockRow)
	return row, args.Error(1)
}

func (m *MockStockRepository) GetAvailableByProduct(
	ctx context.Context, productID kernel.UUID,
) ([]*inventory.StockRow, error) {
	args := m.Called(ctx, productID)
	rows, _ := args.Get(0).([]*inventory.StockRow)
	return rows, args.Error(1)
}

func (m *MockStockRepository) FindReserved(
	ctx context.Context, orderItemID, inventoryID, productID kernel.UUID,
) (*inventory.StockRow, error) {
	args := m.Called(ctx, orderItemID, inventoryID, productID)
	row, _ := args.Get(0).(*inventory.StockRow)
	return row, args.Error(1)
}

func (m *MockStockRepository) GetReservedByOrderItem(
	ctx context.Context, orderItemID kernel.UUID,
) ([]*inventory.StockRow, error) {
	args := m.Called(ctx, orderItemID)
	rows, _ := args.Get(0).([]*inventory.StockRow)
	return rows, args.Error(1)
}

type MockMovementRepository struct{ mock.Mock }

func (m *MockMovementRepository) Add(ctx context.Context, movement *inventory.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) GetLatestDoneByInventory(
	ctx context.Context, inventoryID kernel.UUID,
) (*inventory.Movement, error) {
	args := m.Called(ctx, inventoryID)
	movement, _ := args.Get(0).(*inventory.Movement)
	return movement, args.Error(1)
}

func (m *MockMovementRepository) GetNextPlannedByInventory(
	ctx context.Context, inventoryID kernel.UUID,
) (*inventory.Movement, error) {
	args := m.Called(ctx, inventoryID)
	movement, _ := args.Get(0).(*inventory.Movement)
	return movement, args.Error(1)
}

type MockInventoryRepository struct{ mock.Mock }

func (m *MockInventoryRepository) Get(ctx context.Context, id kernel.UUID) (*inventory.Inventory, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*inventory.Inventory)
	return inv, args.Error(1)
}

func (m *MockInventoryRepository) GetActiveVans(ctx context.Context) ([]*inventory.Inventory, error) {
	args := m.Called(ctx)
	vans, _ := args.Get(0).([]*inventory.Inventory)
	return vans, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	args := m.Called(ctx, id)
	prod, _ := args.Get(0).(*product.Product)
	return prod, args.Error(1)
}

type MockRoutingProvider struct{ mock.Mock }

func (m *MockRoutingProvider) OptimizeTour(
	ctx context.Context, stops []kernel.GeoPoint,
) (ports.TourSummary, error) {
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

type MockFillLevelReader struct{ mock.Mock }

func (m *MockFillLevelReader) FillFraction(ctx context.Context, van *inventory.Inventory) (float64, error) {
	args := m.Called(ctx, van)
	return args.Get(0).(float64), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockAllocationUoW struct{ mock.Mock }

func (m *MockAllocationUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockAllocationUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockAllocationUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

func (m *MockAllocationUoW) MovementRepository() ports.MovementRepository {
	args := m.Called()
	return args.Get(0).(ports.MovementRepository)
}

func (m *MockAllocationUoW) InventoryRepository() ports.InventoryRepository {
	args := m.Called()
	return args.Get(0).(ports.InventoryRepository)
}

func (m *MockAllocationUoW) ProductRepository() ports.ProductRepository {
	args := m.Called()
	return args.Get(0).(ports.ProductRepository)
}

type MockAllocationUoWFactory struct{ mock.Mock }

func (m *MockAllocationUoWFactory) Create() commands.AllocationUoW {
	args := m.Called()
	return args.Get(0).(commands.AllocationUoW)
}
