package product_test

import (
	"testing"

	"speedit/internal/core/domain/model/kernel"
	"speedit/internal/core/domain/model/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := product.NewProduct("water 19l", 2000)
	require.NoError(t, err)

	assert.NoError(t, p.ID().Validate())
	assert.Equal(t, "water 19l", p.Name())
	assert.InDelta(t, 2000, p.UnitVolumeCc(), 1e-9)
	assert.True(t, p.HasVolume())
}

func TestNewProduct_EmptyName(t *testing.T) {
	_, err := product.NewProduct("", 2000)
	require.Error(t, err)
}

func TestNewProduct_NegativeVolume(t *testing.T) {
	_, err := product.NewProduct("water 19l", -1)
	require.Error(t, err)
}

func TestNewProduct_ZeroVolumeIsUncatalogued(t *testing.T) {
	p, err := product.NewProduct("mystery box", 0)
	require.NoError(t, err)

	assert.False(t, p.HasVolume())
	assert.Zero(t, p.UnitVolumeCc())
}

func TestRestoreProduct(t *testing.T) {
	id := kernel.NewUUID()
	p, err := product.RestoreProduct(id, "water 19l", 2000)
	require.NoError(t, err)

	assert.True(t, id.IsEqual(p.ID()))
	require.NoError(t, p.Validate())
}

func TestRestoreProduct_InvalidID(t *testing.T) {
	_, err := product.RestoreProduct(kernel.UUID{}, "water 19l", 2000)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestProduct_Validate_ZeroValue(t *testing.T) {
	var p product.Product
	require.ErrorIs(t, p.Validate(), product.ErrProductIsNotConstructed)
}
