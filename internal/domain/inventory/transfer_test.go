package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestTransfer(t *testing.T) *InternalTransfer {
	t.Helper()
	transfer, err := NewInternalTransfer("TRF2026010001", uuid.New(), uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	return transfer
}

func TestNewInternalTransfer(t *testing.T) {
	t.Run("creates draft transfer", func(t *testing.T) {
		transfer := createTestTransfer(t)

		assert.Equal(t, TransferStatusDraft, transfer.Status)
		assert.Empty(t, transfer.Items)
	})

	t.Run("rejects identical source and destination location", func(t *testing.T) {
		locationID := uuid.New()

		_, err := NewInternalTransfer("TRF2026010002", uuid.New(), locationID, uuid.New(), locationID)

		require.Error(t, err)
	})
}

func TestInternalTransfer_Lifecycle(t *testing.T) {
	t.Run("draft to pending to completed", func(t *testing.T) {
		transfer := createTestTransfer(t)
		require.NoError(t, transfer.AddItem(uuid.New(), decimal.NewFromInt(5)))

		require.NoError(t, transfer.Submit())
		assert.Equal(t, TransferStatusPending, transfer.Status)

		actor := uuid.New()
		require.NoError(t, transfer.Complete(actor))
		assert.Equal(t, TransferStatusCompleted, transfer.Status)
		require.NotNil(t, transfer.CompletedBy)
		assert.Equal(t, actor, *transfer.CompletedBy)
	})

	t.Run("cannot submit empty transfer", func(t *testing.T) {
		transfer := createTestTransfer(t)

		err := transfer.Submit()

		require.Error(t, err)
		assert.Equal(t, TransferStatusDraft, transfer.Status)
	})

	t.Run("cannot complete a draft", func(t *testing.T) {
		transfer := createTestTransfer(t)
		require.NoError(t, transfer.AddItem(uuid.New(), decimal.NewFromInt(5)))

		err := transfer.Complete(uuid.New())

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("cannot complete twice", func(t *testing.T) {
		transfer := createTestTransfer(t)
		require.NoError(t, transfer.AddItem(uuid.New(), decimal.NewFromInt(5)))
		require.NoError(t, transfer.Submit())
		require.NoError(t, transfer.Complete(uuid.New()))

		err := transfer.Complete(uuid.New())

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("cannot add items after submit", func(t *testing.T) {
		transfer := createTestTransfer(t)
		require.NoError(t, transfer.AddItem(uuid.New(), decimal.NewFromInt(5)))
		require.NoError(t, transfer.Submit())

		err := transfer.AddItem(uuid.New(), decimal.NewFromInt(1))

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestInternalTransfer_Cancel(t *testing.T) {
	t.Run("cancels a pending transfer", func(t *testing.T) {
		transfer := createTestTransfer(t)
		require.NoError(t, transfer.AddItem(uuid.New(), decimal.NewFromInt(5)))
		require.NoError(t, transfer.Submit())

		require.NoError(t, transfer.Cancel())
		assert.Equal(t, TransferStatusCanceled, transfer.Status)
	})

	t.Run("cannot cancel a completed transfer", func(t *testing.T) {
		transfer := createTestTransfer(t)
		require.NoError(t, transfer.AddItem(uuid.New(), decimal.NewFromInt(5)))
		require.NoError(t, transfer.Submit())
		require.NoError(t, transfer.Complete(uuid.New()))

		err := transfer.Cancel()

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}
