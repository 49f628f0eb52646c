package services_test

import (
	"context"
	"testing"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/order"
	"speedit/internal/core/domain/model/product"
	"speedit/internal/core/domain/services"
	"speedit/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type generatorFixture struct {
	routing     *MockRoutingProvider
	movements   *MockMovementRepository
	stocks      *MockStockRepository
	inventories *MockInventoryRepository
	products    *MockProductRepository
	fillReader  *MockFillLevelReader
	generator   *services.CandidateGenerator
}

func newGeneratorFixture(t *testing.T) *generatorFixture {
	t.Helper()

	f := &generatorFixture{
		routing:     new(MockRoutingProvider),
		movements:   new(MockMovementRepository),
		stocks:      new(MockStockRepository),
		inventories: new(MockInventoryRepository),
		products:    new(MockProductRepository),
		fillReader:  new(MockFillLevelReader),
	}

	resolver, err := services.NewRouteOverheadResolver(f.routing, f.movements, f.stocks, f.inventories)
	require.NoError(t, err)

	generator, err := services.NewCandidateGenerator(
		resolver, f.fillReader, f.stocks, f.inventories, f.products)
	require.NoError(t, err)

	f.generator = generator
	return f
}

// vanIsIdle sets up the movement history for a van that sits at its home
// point with nothing scheduled.
func (f *generatorFixture) vanIsIdle(ctx context.Context, van *inventory.Inventory) {
	f.movements.On("GetLatestDoneByInventory", ctx, van.ID()).Return(nil, nil)
	f.movements.On("GetNextPlannedByInventory", ctx, van.ID()).Return(nil, nil)
}

func newOrderWithItem(t *testing.T, productID kernel.UUID, quantity int) (*order.Order, *order.OrderItem) {
	t.Helper()

	orderID := kernel.NewUUID()
	item, err := order.NewOrderItem(orderID, productID, quantity)
	require.NoError(t, err)

	client, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)

	ord, err := order.NewOrder(orderID, client, []*order.OrderItem{item})
	require.NoError(t, err)
	return ord, item
}

func TestCandidateGenerator_Generate_NoStock(t *testing.T) {
	ctx := t.Context()
	f := newGeneratorFixture(t)

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 8)

	f.stocks.On("GetAvailableByProduct", ctx, productID).Return([]*inventory.StockRow{}, nil).Once()

	result, err := f.generator.Generate(ctx, ord, item)

	require.NoError(t, err)
	assert.False(t, result.HasCandidates())
	assert.Equal(t, 8, result.RequestedQuantity)
	f.products.AssertNotCalled(t, "Get")
	f.stocks.AssertExpectations(t)
}

func TestCandidateGenerator_Generate_VanToClient(t *testing.T) {
	ctx := t.Context()
	f := newGeneratorFixture(t)

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 8)

	prod, err := product.RestoreProduct(productID, "bottled water", 2000)
	require.NoError(t, err)

	van := newVan(t, 24.71, 46.68, 100000)
	row, err := inventory.NewStockRow(kernel.NewUUID(), van.ID(), productID, 10)
	require.NoError(t, err)

	f.stocks.On("GetAvailableByProduct", ctx, productID).Return([]*inventory.StockRow{row}, nil).Once()
	f.products.On("Get", ctx, productID).Return(prod, nil).Once()
	f.inventories.On("Get", ctx, van.ID()).Return(van, nil).Once()
	f.vanIsIdle(ctx, van)
	// Free space: (1 - 0.5) * 100000 cc = 25 units of 2000 cc.
	f.fillReader.On("FillFraction", ctx, van).Return(0.5, nil).Once()
	f.routing.On("Locality", ctx, mock.Anything).Return("Riyadh", nil)
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 5, DurationSec: 600}, nil).Once()
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 7, DurationSec: 900}, nil).Once()

	result, err := f.generator.Generate(ctx, ord, item)

	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)

	candidate := result.Candidates[0]
	assert.Equal(t, allocation.PatternVanToClient, candidate.Pattern)
	assert.Equal(t, 8, candidate.FeasibleAmount)
	assert.True(t, candidate.StockRowID.IsEqual(row.ID()))
	assert.True(t, candidate.VanID.IsEqual(van.ID()))
	assert.Equal(t, 0.0, candidate.Metrics.Pressure)
	assert.InDelta(t, 2.0, candidate.Metrics.DistanceKm, 1e-9)
	assert.InDelta(t, 300.0, candidate.Metrics.TravelTimeSec, 1e-9)

	require.Len(t, candidate.Movements, 1)
	unload := candidate.Movements[0]
	assert.Equal(t, inventory.Unload, unload.Kind())
	assert.Equal(t, inventory.Planned, unload.Status())
	assert.True(t, unload.To().IsClient())
	assert.InDelta(t, 16000.0, unload.EstimatedVolumeCc(), 1e-9)

	// Sole candidate: normalized time and distance are both 1, handling
	// is 300/600, pressure and split are zero.
	assert.InDelta(t, 1.0+0.5+0.7*0.5, candidate.Score, 1e-9)
}

func TestCandidateGenerator_Generate_VanOutsideLocality(t *testing.T) {
	ctx := t.Context()
	f := newGeneratorFixture(t)

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 8)

	prod, err := product.RestoreProduct(productID, "bottled water", 2000)
	require.NoError(t, err)

	van := newVan(t, 21.50, 39.20, 100000)
	row, err := inventory.NewStockRow(kernel.NewUUID(), van.ID(), productID, 10)
	require.NoError(t, err)

	f.stocks.On("GetAvailableByProduct", ctx, productID).Return([]*inventory.StockRow{row}, nil).Once()
	f.products.On("Get", ctx, productID).Return(prod, nil).Once()
	f.inventories.On("Get", ctx, van.ID()).Return(van, nil).Once()
	f.vanIsIdle(ctx, van)
	f.fillReader.On("FillFraction", ctx, van).Return(0.0, nil).Once()
	f.routing.On("Locality", ctx, van.Location()).Return("Jeddah", nil).Once()
	f.routing.On("Locality", ctx, ord.ClientLocation()).Return("Riyadh", nil).Once()

	result, err := f.generator.Generate(ctx, ord, item)

	require.NoError(t, err)
	assert.False(t, result.HasCandidates())
	f.routing.AssertNotCalled(t, "OptimizeTour")
}

func TestCandidateGenerator_Generate_WarehouseViaVan(t *testing.T) {
	ctx := t.Context()
	f := newGeneratorFixture(t)

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 20)

	// No catalogued volume: the fallback of 1000 cc per unit applies.
	prod, err := product.RestoreProduct(productID, "unboxed part", 0)
	require.NoError(t, err)

	warehouse, err := inventory.NewInventory(
		kernel.NewUUID(), inventory.KindWarehouse, "central warehouse", point(t, 24.72, 46.66), 9e7)
	require.NoError(t, err)

	van := newVan(t, 24.71, 46.68, 1000000)
	row, err := inventory.NewStockRow(kernel.NewUUID(), warehouse.ID(), productID, 50)
	require.NoError(t, err)

	f.stocks.On("GetAvailableByProduct", ctx, productID).Return([]*inventory.StockRow{row}, nil).Once()
	f.products.On("Get", ctx, productID).Return(prod, nil).Once()
	f.inventories.On("Get", ctx, warehouse.ID()).Return(warehouse, nil).Once()
	f.inventories.On("GetActiveVans", ctx).Return([]*inventory.Inventory{van}, nil).Once()
	f.vanIsIdle(ctx, van)
	f.fillReader.On("FillFraction", ctx, van).Return(0.0, nil).Once()
	f.routing.On("Locality", ctx, mock.Anything).Return("Riyadh", nil)
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 3, DurationSec: 400}, nil).Once()
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 9, DurationSec: 1400}, nil).Once()

	result, err := f.generator.Generate(ctx, ord, item)

	require.NoError(t, err)
	require.Len(t, result.Candidates, 1)

	candidate := result.Candidates[0]
	assert.Equal(t, allocation.PatternWarehouseVanClient, candidate.Pattern)
	assert.Equal(t, 20, candidate.FeasibleAmount)
	assert.True(t, candidate.StockRowID.IsEqual(row.ID()))
	assert.True(t, candidate.SourceInventoryID.IsEqual(warehouse.ID()))
	assert.True(t, candidate.VanID.IsEqual(van.ID()))

	// 20 units of 1000 cc into a 1e6 cc van.
	assert.InDelta(t, 0.02, candidate.Metrics.Pressure, 1e-9)

	require.Len(t, candidate.Movements, 2)
	load, unload := candidate.Movements[0], candidate.Movements[1]
	assert.Equal(t, inventory.Load, load.Kind())
	assert.Equal(t, inventory.Unload, unload.Kind())
	assert.True(t, unload.To().IsClient())
	assert.False(t, load.MoveAt().After(unload.MoveAt()))
}

func TestCandidateGenerator_Generate_VanWithFullStockDominatesWarehousePath(t *testing.T) {
	ctx := t.Context()
	f := newGeneratorFixture(t)

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 8)

	prod, err := product.RestoreProduct(productID, "bottled water", 2000)
	require.NoError(t, err)

	warehouse, err := inventory.NewInventory(
		kernel.NewUUID(), inventory.KindWarehouse, "central warehouse", point(t, 24.72, 46.66), 9e7)
	require.NoError(t, err)

	van := newVan(t, 24.71, 46.68, 1000000)
	vanRow, err := inventory.NewStockRow(kernel.NewUUID(), van.ID(), productID, 10)
	require.NoError(t, err)
	warehouseRow, err := inventory.NewStockRow(kernel.NewUUID(), warehouse.ID(), productID, 50)
	require.NoError(t, err)

	f.stocks.On("GetAvailableByProduct", ctx, productID).
		Return([]*inventory.StockRow{vanRow, warehouseRow}, nil).Once()
	f.products.On("Get", ctx, productID).Return(prod, nil).Once()
	f.inventories.On("Get", ctx, van.ID()).Return(van, nil).Once()
	f.inventories.On("Get", ctx, warehouse.ID()).Return(warehouse, nil).Once()
	f.inventories.On("GetActiveVans", ctx).Return([]*inventory.Inventory{van}, nil).Once()
	f.vanIsIdle(ctx, van)
	f.fillReader.On("FillFraction", ctx, van).Return(0.0, nil).Once()
	f.routing.On("Locality", ctx, mock.Anything).Return("Riyadh", nil)
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 3, DurationSec: 400}, nil)

	result, err := f.generator.Generate(ctx, ord, item)

	require.NoError(t, err)
	// The van already covers the full request, so the warehouse path is
	// dominated and only the direct candidate survives.
	require.Len(t, result.Candidates, 1)
	assert.Equal(t, allocation.PatternVanToClient, result.Candidates[0].Pattern)
}

func TestCandidateGenerator_Generate_SortedAndDeduplicated(t *testing.T) {
	ctx := t.Context()
	f := newGeneratorFixture(t)

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 10)

	prod, err := product.RestoreProduct(productID, "bottled water", 1000)
	require.NoError(t, err)

	nearVan := newVan(t, 24.71, 46.68, 1000000)
	farVan := newVan(t, 24.60, 46.50, 1000000)
	nearRow, err := inventory.NewStockRow(kernel.NewUUID(), nearVan.ID(), productID, 10)
	require.NoError(t, err)
	farRow, err := inventory.NewStockRow(kernel.NewUUID(), farVan.ID(), productID, 10)
	require.NoError(t, err)

	f.stocks.On("GetAvailableByProduct", ctx, productID).
		Return([]*inventory.StockRow{farRow, nearRow}, nil).Once()
	f.products.On("Get", ctx, productID).Return(prod, nil).Once()
	f.inventories.On("Get", ctx, farVan.ID()).Return(farVan, nil).Once()
	f.inventories.On("Get", ctx, nearVan.ID()).Return(nearVan, nil).Once()
	f.vanIsIdle(ctx, farVan)
	f.vanIsIdle(ctx, nearVan)
	f.fillReader.On("FillFraction", ctx, farVan).Return(0.0, nil).Once()
	f.fillReader.On("FillFraction", ctx, nearVan).Return(0.0, nil).Once()
	f.routing.On("Locality", ctx, mock.Anything).Return("Riyadh", nil)

	// The far van's insertion is twice as expensive.
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 0, DurationSec: 0}, nil).Once()
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 12, DurationSec: 1600}, nil).Once()
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 0, DurationSec: 0}, nil).Once()
	f.routing.On("OptimizeTour", ctx, mock.Anything).
		Return(ports.TourSummary{DistanceKm: 6, DurationSec: 800}, nil).Once()

	result, err := f.generator.Generate(ctx, ord, item)

	require.NoError(t, err)
	require.Len(t, result.Candidates, 2)

	assert.LessOrEqual(t, result.Candidates[0].Score, result.Candidates[1].Score)
	assert.True(t, result.Candidates[0].StockRowID.IsEqual(nearRow.ID()))

	seen := map[string]bool{}
	for _, c := range result.Candidates {
		assert.False(t, seen[c.StockRowID.String()], "stock row surfaced twice")
		seen[c.StockRowID.String()] = true
		assert.Positive(t, c.FeasibleAmount)
		assert.LessOrEqual(t, c.FeasibleAmount, 10)
	}
}
