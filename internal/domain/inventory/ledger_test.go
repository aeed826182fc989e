package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLedgerEntry(t *testing.T) {
	productID := uuid.New()
	warehouseID := uuid.New()
	locationID := uuid.New()
	actor := uuid.New()

	t.Run("creates entry with full stock key", func(t *testing.T) {
		entry, err := NewLedgerEntry(
			TransactionTypeReceipt,
			productID, warehouseID, locationID,
			decimal.NewFromInt(10), decimal.NewFromInt(10),
			"RCP2026010001", actor,
		)

		require.NoError(t, err)
		assert.Equal(t, productID, entry.ProductID)
		assert.Equal(t, warehouseID, entry.WarehouseID)
		assert.Equal(t, locationID, entry.LocationID)
		assert.Equal(t, "RCP2026010001", entry.Reference)
		assert.Equal(t, actor, entry.PerformedBy)
		assert.False(t, entry.Timestamp.IsZero())
		assert.True(t, entry.IsInbound())
	})

	t.Run("accepts negative change for outbound movements", func(t *testing.T) {
		entry, err := NewLedgerEntry(
			TransactionTypeDelivery,
			productID, warehouseID, locationID,
			decimal.NewFromInt(-5), decimal.NewFromInt(5),
			"DLV2026010001", actor,
		)

		require.NoError(t, err)
		assert.False(t, entry.IsInbound())
	})

	t.Run("rejects zero quantity change", func(t *testing.T) {
		entry, err := NewLedgerEntry(
			TransactionTypeAdjustment,
			productID, warehouseID, locationID,
			decimal.Zero, decimal.NewFromInt(5),
			"ADJ2026010001", actor,
		)

		require.Error(t, err)
		assert.Nil(t, entry)
	})

	t.Run("rejects negative resulting quantity", func(t *testing.T) {
		_, err := NewLedgerEntry(
			TransactionTypeDelivery,
			productID, warehouseID, locationID,
			decimal.NewFromInt(-5), decimal.NewFromInt(-1),
			"DLV2026010002", actor,
		)

		require.Error(t, err)
	})

	t.Run("rejects missing reference", func(t *testing.T) {
		_, err := NewLedgerEntry(
			TransactionTypeReceipt,
			productID, warehouseID, locationID,
			decimal.NewFromInt(5), decimal.NewFromInt(5),
			"", actor,
		)

		require.Error(t, err)
	})

	t.Run("rejects unknown transaction type", func(t *testing.T) {
		_, err := NewLedgerEntry(
			TransactionType("bogus"),
			productID, warehouseID, locationID,
			decimal.NewFromInt(5), decimal.NewFromInt(5),
			"RCP2026010002", actor,
		)

		require.Error(t, err)
	})

	t.Run("rejects missing actor", func(t *testing.T) {
		_, err := NewLedgerEntry(
			TransactionTypeReceipt,
			productID, warehouseID, locationID,
			decimal.NewFromInt(5), decimal.NewFromInt(5),
			"RCP2026010003", uuid.Nil,
		)

		require.Error(t, err)
	})
}
