package services_test

import (
	"context"
	"testing"

	"speedit/internal/core/domain/model/allocation"
	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/order"
	"speedit/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCandidateSource struct{ mock.Mock }

func (m *MockCandidateSource) Generate(
	ctx context.Context,
	ord *order.Order,
	item *order.OrderItem,
) (allocation.CandidateGenerationResult, error) {
	args := m.Called(ctx, ord, item)
	return args.Get(0).(allocation.CandidateGenerationResult), args.Error(1)
}

func candidateFor(rowID kernel.UUID, feasible int, score float64) allocation.PathCandidate {
	return allocation.PathCandidate{
		StockRowID:        rowID,
		SourceInventoryID: kernel.NewUUID(),
		VanID:             kernel.NewUUID(),
		Pattern:           allocation.PatternVanToClient,
		FeasibleAmount:    feasible,
		Score:             score,
	}
}

func newPlanner(t *testing.T, source services.CandidateSource, stocks *MockStockRepository) *services.GlobalAllocationPlanner {
	t.Helper()
	planner, err := services.NewGlobalAllocationPlanner(source, stocks)
	require.NoError(t, err)
	return planner
}

func TestGlobalAllocationPlanner_PlanGlobal_FullyAllocated(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 6)

	inventoryID := kernel.NewUUID()
	row, err := inventory.NewStockRow(kernel.NewUUID(), inventoryID, productID, 10)
	require.NoError(t, err)

	source := new(MockCandidateSource)
	source.On("Generate", ctx, ord, item).Return(allocation.CandidateGenerationResult{
		OrderID:           ord.ID(),
		OrderItemID:       item.ID(),
		ProductID:         productID,
		RequestedQuantity: 6,
		Candidates:        []allocation.PathCandidate{candidateFor(row.ID(), 10, 1.0)},
	}, nil).Once()

	stocks := new(MockStockRepository)
	stocks.On("Get", ctx, row.ID()).Return(row, nil).Once()

	plan, err := newPlanner(t, source, stocks).PlanGlobal(ctx, []*order.Order{ord})

	require.NoError(t, err)
	assert.True(t, plan.FullyAllocated)
	require.Len(t, plan.ItemPlans, 1)
	assert.Equal(t, 6, plan.ItemPlans[0].AllocatedQuantity())
	require.Len(t, plan.ItemPlans[0].Chunks, 1)
	assert.Equal(t, 6, plan.ItemPlans[0].Chunks[0].Quantity)
}

func TestGlobalAllocationPlanner_PlanGlobal_SharedRowContention(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()

	orderID := kernel.NewUUID()
	itemA, err := order.NewOrderItem(orderID, productID, 6)
	require.NoError(t, err)
	itemB, err := order.NewOrderItem(orderID, productID, 6)
	require.NoError(t, err)

	client, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)
	ord, err := order.NewOrder(orderID, client, []*order.OrderItem{itemA, itemB})
	require.NoError(t, err)

	// Both items resolve their only candidate to the same row of 10 units.
	inventoryID := kernel.NewUUID()
	row, err := inventory.NewStockRow(kernel.NewUUID(), inventoryID, productID, 10)
	require.NoError(t, err)

	source := new(MockCandidateSource)
	for _, item := range []*order.OrderItem{itemA, itemB} {
		source.On("Generate", ctx, ord, item).Return(allocation.CandidateGenerationResult{
			OrderID:           ord.ID(),
			OrderItemID:       item.ID(),
			ProductID:         productID,
			RequestedQuantity: 6,
			Candidates:        []allocation.PathCandidate{candidateFor(row.ID(), 6, 1.0)},
		}, nil).Once()
	}

	stocks := new(MockStockRepository)
	// The shared counter is seeded once; the second item sees what is left.
	stocks.On("Get", ctx, row.ID()).Return(row, nil).Once()

	plan, err := newPlanner(t, source, stocks).PlanGlobal(ctx, []*order.Order{ord})

	require.NoError(t, err)
	assert.False(t, plan.FullyAllocated)
	require.Len(t, plan.ItemPlans, 2)

	first, second := plan.ItemPlans[0], plan.ItemPlans[1]
	assert.Equal(t, 6, first.AllocatedQuantity())
	assert.Equal(t, 4, second.AllocatedQuantity())

	totalFromRow := 0
	for _, itemPlan := range plan.ItemPlans {
		for _, chunk := range itemPlan.Chunks {
			if chunk.Candidate.StockRowID.IsEqual(row.ID()) {
				totalFromRow += chunk.Quantity
			}
		}
	}
	assert.LessOrEqual(t, totalFromRow, row.Amount(), "plan must never oversubscribe a row")
	stocks.AssertExpectations(t)
}

func TestGlobalAllocationPlanner_PlanGlobal_ScarceItemsFirst(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()

	orderID := kernel.NewUUID()
	flexibleItem, err := order.NewOrderItem(orderID, productID, 5)
	require.NoError(t, err)
	scarceItem, err := order.NewOrderItem(orderID, productID, 5)
	require.NoError(t, err)

	client, err := kernel.NewGeoPoint(24.7136, 46.6753)
	require.NoError(t, err)
	ord, err := order.NewOrder(orderID, client, []*order.OrderItem{flexibleItem, scarceItem})
	require.NoError(t, err)

	inventoryID := kernel.NewUUID()
	sharedRow, err := inventory.NewStockRow(kernel.NewUUID(), inventoryID, productID, 5)
	require.NoError(t, err)
	spareRow, err := inventory.NewStockRow(kernel.NewUUID(), inventoryID, productID, 5)
	require.NoError(t, err)

	source := new(MockCandidateSource)
	// The flexible item can draw from either row; the scarce item only
	// from the shared one.
	source.On("Generate", ctx, ord, flexibleItem).Return(allocation.CandidateGenerationResult{
		OrderID:           ord.ID(),
		OrderItemID:       flexibleItem.ID(),
		ProductID:         productID,
		RequestedQuantity: 5,
		Candidates: []allocation.PathCandidate{
			candidateFor(sharedRow.ID(), 5, 1.0),
			candidateFor(spareRow.ID(), 5, 2.0),
		},
	}, nil).Once()
	source.On("Generate", ctx, ord, scarceItem).Return(allocation.CandidateGenerationResult{
		OrderID:           ord.ID(),
		OrderItemID:       scarceItem.ID(),
		ProductID:         productID,
		RequestedQuantity: 5,
		Candidates:        []allocation.PathCandidate{candidateFor(sharedRow.ID(), 5, 1.5)},
	}, nil).Once()

	stocks := new(MockStockRepository)
	stocks.On("Get", ctx, sharedRow.ID()).Return(sharedRow, nil).Once()
	stocks.On("Get", ctx, spareRow.ID()).Return(spareRow, nil).Once()

	plan, err := newPlanner(t, source, stocks).PlanGlobal(ctx, []*order.Order{ord})

	require.NoError(t, err)
	assert.True(t, plan.FullyAllocated, "serving the scarce item first leaves the spare row for the flexible one")

	// The scarce item was planned first despite appearing second.
	assert.True(t, plan.ItemPlans[0].OrderItemID.IsEqual(scarceItem.ID()))
	require.Len(t, plan.ItemPlans[0].Chunks, 1)
	assert.True(t, plan.ItemPlans[0].Chunks[0].Candidate.StockRowID.IsEqual(sharedRow.ID()))

	// The flexible item fell through to the spare row.
	require.Len(t, plan.ItemPlans[1].Chunks, 1)
	assert.True(t, plan.ItemPlans[1].Chunks[0].Candidate.StockRowID.IsEqual(spareRow.ID()))
}

func TestGlobalAllocationPlanner_PlanGlobal_NoCandidates(t *testing.T) {
	ctx := t.Context()

	productID := kernel.NewUUID()
	ord, item := newOrderWithItem(t, productID, 4)

	source := new(MockCandidateSource)
	source.On("Generate", ctx, ord, item).Return(allocation.CandidateGenerationResult{
		OrderID:           ord.ID(),
		OrderItemID:       item.ID(),
		ProductID:         productID,
		RequestedQuantity: 4,
	}, nil).Once()

	plan, err := newPlanner(t, source, new(MockStockRepository)).PlanGlobal(ctx, []*order.Order{ord})

	require.NoError(t, err)
	assert.False(t, plan.FullyAllocated)
	require.Len(t, plan.ItemPlans, 1)
	assert.Empty(t, plan.ItemPlans[0].Chunks)
	assert.Equal(t, 0, plan.ItemPlans[0].AllocatedQuantity())
}
