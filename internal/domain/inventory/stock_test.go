package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestStock(t *testing.T) *Stock {
	t.Helper()
	stock, err := NewStock(uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return stock
}

func TestNewStock(t *testing.T) {
	t.Run("creates empty stock record", func(t *testing.T) {
		productID := uuid.New()
		warehouseID := uuid.New()
		locationID := uuid.New()

		stock, err := NewStock(productID, warehouseID, locationID)

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, stock.ID)
		assert.Equal(t, productID, stock.ProductID)
		assert.Equal(t, warehouseID, stock.WarehouseID)
		assert.Equal(t, locationID, stock.LocationID)
		assert.True(t, stock.Quantity.IsZero())
		assert.True(t, stock.ReservedQuantity.IsZero())
		assert.True(t, stock.AvailableQuantity.IsZero())
	})

	t.Run("fails with nil product ID", func(t *testing.T) {
		stock, err := NewStock(uuid.Nil, uuid.New(), uuid.New())

		require.Error(t, err)
		assert.Nil(t, stock)
	})

	t.Run("fails with nil location ID", func(t *testing.T) {
		stock, err := NewStock(uuid.New(), uuid.New(), uuid.Nil)

		require.Error(t, err)
		assert.Nil(t, stock)
	})
}

func TestStock_Receive(t *testing.T) {
	t.Run("adds quantity and recomputes available", func(t *testing.T) {
		stock := createTestStock(t)

		err := stock.Receive(decimal.NewFromInt(100))

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(100), stock.Quantity)
		assert.Equal(t, decimal.NewFromInt(100), stock.AvailableQuantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		stock := createTestStock(t)

		err := stock.Receive(decimal.Zero)

		require.Error(t, err)
		assert.True(t, stock.Quantity.IsZero())
	})
}

func TestStock_Deduct(t *testing.T) {
	t.Run("removes quantity when available covers it", func(t *testing.T) {
		stock := createTestStock(t)
		require.NoError(t, stock.Receive(decimal.NewFromInt(100)))

		err := stock.Deduct(decimal.NewFromInt(30))

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(70), stock.Quantity)
		assert.Equal(t, decimal.NewFromInt(70), stock.AvailableQuantity)
	})

	t.Run("fails when available is insufficient", func(t *testing.T) {
		stock := createTestStock(t)
		require.NoError(t, stock.Receive(decimal.NewFromInt(10)))

		err := stock.Deduct(decimal.NewFromInt(11))

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, decimal.NewFromInt(10), stock.Quantity)
	})

	t.Run("respects reservations", func(t *testing.T) {
		stock := createTestStock(t)
		require.NoError(t, stock.Receive(decimal.NewFromInt(100)))
		require.NoError(t, stock.SetReserved(decimal.NewFromInt(80)))

		err := stock.Deduct(decimal.NewFromInt(30))

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})
}

func TestStock_AvailableInvariant(t *testing.T) {
	stock := createTestStock(t)

	require.NoError(t, stock.Receive(decimal.NewFromInt(50)))
	require.NoError(t, stock.SetReserved(decimal.NewFromInt(20)))
	assert.Equal(t, decimal.NewFromInt(30), stock.AvailableQuantity)

	require.NoError(t, stock.SetQuantity(decimal.NewFromInt(25)))
	assert.Equal(t, decimal.NewFromInt(5), stock.AvailableQuantity)

	require.NoError(t, stock.SetReserved(decimal.Zero))
	assert.Equal(t, decimal.NewFromInt(25), stock.AvailableQuantity)
}

func TestStock_SetQuantity(t *testing.T) {
	t.Run("sets absolute quantity", func(t *testing.T) {
		stock := createTestStock(t)
		require.NoError(t, stock.Receive(decimal.NewFromInt(100)))

		err := stock.SetQuantity(decimal.NewFromInt(42))

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(42), stock.Quantity)
	})

	t.Run("rejects negative quantity", func(t *testing.T) {
		stock := createTestStock(t)

		err := stock.SetQuantity(decimal.NewFromInt(-1))

		require.Error(t, err)
	})
}

func TestStock_IsZero(t *testing.T) {
	stock := createTestStock(t)
	assert.True(t, stock.IsZero())

	require.NoError(t, stock.Receive(decimal.NewFromInt(1)))
	assert.False(t, stock.IsZero())

	require.NoError(t, stock.Deduct(decimal.NewFromInt(1)))
	assert.True(t, stock.IsZero())
}
