package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/warehouse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type adjustmentFixture struct {
	service    *AdjustmentService
	stockRepo  *fakeStockRepo
	ledgerRepo *fakeLedgerRepo

	product  *catalog.Product
	wh       *warehouse.Warehouse
	location *warehouse.Location
}

func newAdjustmentFixture(t *testing.T) *adjustmentFixture {
	t.Helper()

	product, err := catalog.NewProduct("WDG-001", "Widget", "pcs")
	require.NoError(t, err)
	wh, err := warehouse.NewWarehouse("WH-A", "Main")
	require.NoError(t, err)
	location, err := warehouse.NewLocation(wh.ID, "A-01", warehouse.LocationTypeRack)
	require.NoError(t, err)

	stockRepo := newFakeStockRepo()
	ledgerRepo := newFakeLedgerRepo()
	adjustmentRepo := newFakeAdjustmentRepo()
	scope := NewNoOpTransactionScope(stockRepo, ledgerRepo, nil, adjustmentRepo, nil, nil)

	service := NewAdjustmentService(
		adjustmentRepo,
		stockRepo,
		newFakeProductRepo(product),
		newFakeLocationRepo(location),
		newFakeNumberGenerator(),
		scope,
	)

	return &adjustmentFixture{
		service:    service,
		stockRepo:  stockRepo,
		ledgerRepo: ledgerRepo,
		product:    product,
		wh:         wh,
		location:   location,
	}
}

func (f *adjustmentFixture) seedStock(t *testing.T, quantity int64) {
	t.Helper()
	stock, err := inventory.NewStock(f.product.ID, f.wh.ID, f.location.ID)
	require.NoError(t, err)
	require.NoError(t, stock.Receive(decimal.NewFromInt(quantity)))
	require.NoError(t, f.stockRepo.Save(context.Background(), stock))
}

func TestAdjustmentService_Create(t *testing.T) {
	t.Run("captures the recorded quantity from current stock", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)

		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})

		require.NoError(t, err)
		assert.Equal(t, "ADJ2026010001", created.AdjustmentNumber)
		assert.Equal(t, decimal.NewFromInt(30), created.RecordedQuantity)
		assert.Equal(t, decimal.NewFromInt(-5), created.Difference)
		assert.Equal(t, "pending", created.Status)
	})

	t.Run("missing stock record counts as zero", func(t *testing.T) {
		f := newAdjustmentFixture(t)

		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(7),
			Reason:          "found during move",
		})

		require.NoError(t, err)
		assert.True(t, created.RecordedQuantity.IsZero())
		assert.Equal(t, decimal.NewFromInt(7), created.Difference)
	})

	t.Run("rejects unknown location", func(t *testing.T) {
		f := newAdjustmentFixture(t)

		_, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      uuid.New(),
			CountedQuantity: decimal.NewFromInt(5),
			Reason:          "cycle count",
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestAdjustmentService_Update(t *testing.T) {
	t.Run("revises count and reason while pending", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)

		updated, err := f.service.Update(context.Background(), created.ID, UpdateAdjustmentRequest{
			CountedQuantity: decimal.NewFromInt(27),
			Reason:          "recount after restack",
		})

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(27), updated.CountedQuantity)
		assert.Equal(t, decimal.NewFromInt(-3), updated.Difference)
		assert.Equal(t, decimal.NewFromInt(30), updated.RecordedQuantity)
	})

	t.Run("cannot revise an approved adjustment", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)
		_, err = f.service.Approve(context.Background(), created.ID, uuid.New())
		require.NoError(t, err)

		_, err = f.service.Update(context.Background(), created.ID, UpdateAdjustmentRequest{
			CountedQuantity: decimal.NewFromInt(27),
			Reason:          "recount",
		})

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestAdjustmentService_Delete(t *testing.T) {
	t.Run("removes a pending adjustment", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(context.Background(), created.ID))

		_, err = f.service.GetByID(context.Background(), created.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("removes a rejected adjustment", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)
		_, err = f.service.Reject(context.Background(), created.ID, uuid.New())
		require.NoError(t, err)

		require.NoError(t, f.service.Delete(context.Background(), created.ID))
	})

	t.Run("refuses to remove an approved adjustment", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)
		_, err = f.service.Approve(context.Background(), created.ID, uuid.New())
		require.NoError(t, err)

		err = f.service.Delete(context.Background(), created.ID)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestAdjustmentService_Approve(t *testing.T) {
	t.Run("sets stock to counted value and writes the difference", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)
		actor := uuid.New()

		approved, err := f.service.Approve(context.Background(), created.ID, actor)

		require.NoError(t, err)
		assert.Equal(t, "approved", approved.Status)
		require.NotNil(t, approved.ApprovedBy)
		assert.Equal(t, actor, *approved.ApprovedBy)

		assert.Equal(t, decimal.NewFromInt(25), f.stockRepo.mustQuantity(f.product.ID, f.wh.ID, f.location.ID))

		entries, err := f.ledgerRepo.FindAll(context.Background(), inventory.LedgerFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, inventory.TransactionTypeAdjustment, entries[0].TransactionType)
		assert.Equal(t, decimal.NewFromInt(-5), entries[0].QuantityChange)
		assert.Equal(t, decimal.NewFromInt(25), entries[0].QuantityAfter)
		assert.Equal(t, created.AdjustmentNumber, entries[0].Reference)
	})

	t.Run("creates the stock record when counting finds untracked goods", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(7),
			Reason:          "found during move",
		})
		require.NoError(t, err)

		_, err = f.service.Approve(context.Background(), created.ID, uuid.New())

		require.NoError(t, err)
		assert.Equal(t, decimal.NewFromInt(7), f.stockRepo.mustQuantity(f.product.ID, f.wh.ID, f.location.ID))
	})

	t.Run("second approve fails and has no side effects", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(25),
			Reason:          "cycle count",
		})
		require.NoError(t, err)

		_, err = f.service.Approve(context.Background(), created.ID, uuid.New())
		require.NoError(t, err)

		_, err = f.service.Approve(context.Background(), created.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrInvalidState)

		assert.Equal(t, decimal.NewFromInt(25), f.stockRepo.mustQuantity(f.product.ID, f.wh.ID, f.location.ID))
		count, err := f.ledgerRepo.Count(context.Background(), inventory.LedgerFilter{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("zero difference approves without a ledger entry", func(t *testing.T) {
		f := newAdjustmentFixture(t)
		f.seedStock(t, 30)
		created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
			ProductID:       f.product.ID,
			LocationID:      f.location.ID,
			CountedQuantity: decimal.NewFromInt(30),
			Reason:          "cycle count",
		})
		require.NoError(t, err)

		approved, err := f.service.Approve(context.Background(), created.ID, uuid.New())

		require.NoError(t, err)
		assert.Equal(t, "approved", approved.Status)
		count, err := f.ledgerRepo.Count(context.Background(), inventory.LedgerFilter{})
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestAdjustmentService_Reject(t *testing.T) {
	f := newAdjustmentFixture(t)
	f.seedStock(t, 30)
	created, err := f.service.Create(context.Background(), CreateAdjustmentRequest{
		ProductID:       f.product.ID,
		LocationID:      f.location.ID,
		CountedQuantity: decimal.NewFromInt(25),
		Reason:          "cycle count",
	})
	require.NoError(t, err)

	rejected, err := f.service.Reject(context.Background(), created.ID, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)
	assert.Equal(t, decimal.NewFromInt(30), f.stockRepo.mustQuantity(f.product.ID, f.wh.ID, f.location.ID))
	count, err := f.ledgerRepo.Count(context.Background(), inventory.LedgerFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}
