package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with normalized SKU", func(t *testing.T) {
		product, err := NewProduct("  wdg-001 ", "Widget", "pcs")

		require.NoError(t, err)
		assert.Equal(t, "WDG-001", product.SKU)
		assert.Equal(t, "Widget", product.Name)
		assert.True(t, product.CostPrice.IsZero())
		assert.True(t, product.ReorderPoint.IsZero())
	})

	t.Run("rejects empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Widget", "pcs")
		require.Error(t, err)
	})

	t.Run("rejects empty unit", func(t *testing.T) {
		_, err := NewProduct("WDG-001", "Widget", " ")
		require.Error(t, err)
	})
}

func TestProduct_SetPrices(t *testing.T) {
	product, err := NewProduct("WDG-001", "Widget", "pcs")
	require.NoError(t, err)

	require.NoError(t, product.SetPrices(decimal.NewFromFloat(2.5), decimal.NewFromFloat(4.99)))
	assert.Equal(t, decimal.NewFromFloat(2.5), product.CostPrice)

	err = product.SetPrices(decimal.NewFromInt(-1), decimal.Zero)
	require.Error(t, err)
}

func TestProduct_SetReorderLevels(t *testing.T) {
	product, err := NewProduct("WDG-001", "Widget", "pcs")
	require.NoError(t, err)

	require.NoError(t, product.SetReorderLevels(decimal.NewFromInt(10), decimal.NewFromInt(50)))
	assert.Equal(t, decimal.NewFromInt(10), product.ReorderPoint)
	assert.Equal(t, decimal.NewFromInt(50), product.ReorderQuantity)

	err = product.SetReorderLevels(decimal.NewFromInt(-1), decimal.Zero)
	require.Error(t, err)
}

func TestProduct_SetCategory(t *testing.T) {
	product, err := NewProduct("WDG-001", "Widget", "pcs")
	require.NoError(t, err)

	categoryID := uuid.New()
	product.SetCategory(&categoryID)
	require.NotNil(t, product.CategoryID)
	assert.Equal(t, categoryID, *product.CategoryID)

	product.SetCategory(nil)
	assert.Nil(t, product.CategoryID)
}
