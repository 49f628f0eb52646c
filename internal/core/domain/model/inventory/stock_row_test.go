package inventory_test

import (
	"testing"

	"speedit/internal/core/domain/model/inventory"
	"speedit/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockRow(t *testing.T) {
	row, err := inventory.NewStockRow(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 10)
	require.NoError(t, err)

	assert.True(t, row.IsAvailable())
	assert.Nil(t, row.OrderItemID())
	assert.Equal(t, 10, row.Amount())
}

func TestNewReservedStockRow(t *testing.T) {
	itemID := kernel.NewUUID()
	row, err := inventory.NewReservedStockRow(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), itemID)
	require.NoError(t, err)

	assert.False(t, row.IsAvailable())
	require.NotNil(t, row.OrderItemID())
	assert.True(t, itemID.IsEqual(*row.OrderItemID()))
	assert.Equal(t, 0, row.Amount())
}

func TestRestoreStockRow_NegativeAmount(t *testing.T) {
	_, err := inventory.RestoreStockRow(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), nil, -1)
	require.Error(t, err)
}

func TestStockRow_DecrementIncrement(t *testing.T) {
	row, err := inventory.NewStockRow(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), 10)
	require.NoError(t, err)

	require.NoError(t, row.Decrement(4))
	assert.Equal(t, 6, row.Amount())

	require.Error(t, row.Decrement(7), "cannot take more than the row holds")
	require.Error(t, row.Decrement(0))
	assert.Equal(t, 6, row.Amount())

	require.NoError(t, row.Increment(2))
	assert.Equal(t, 8, row.Amount())
	require.Error(t, row.Increment(-1))

	require.NoError(t, row.Decrement(8))
	assert.Equal(t, 0, row.Amount(), "fully consumed rows persist with amount zero")
}

func TestStockRow_Validate_ZeroValue(t *testing.T) {
	var row inventory.StockRow
	require.ErrorIs(t, row.Validate(), inventory.ErrStockRowIsNotConstructed)
}
