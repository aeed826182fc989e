package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// StockSummary aggregates stock figures, optionally per warehouse
type StockSummary struct {
	ProductCount   int64
	TotalQuantity  decimal.Decimal
	TotalReserved  decimal.Decimal
	TotalAvailable decimal.Decimal
	TotalValue     decimal.Decimal // sum of quantity * product cost price
}

// LowStockProduct flags a product whose total available quantity across all
// locations has fallen to or below its reorder point
type LowStockProduct struct {
	ProductID       uuid.UUID
	SKU             string
	Name            string
	TotalAvailable  decimal.Decimal
	ReorderPoint    decimal.Decimal
	ReorderQuantity decimal.Decimal
}

// StockRepository defines persistence operations for stock records
type StockRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Stock, error)
	// FindByKey looks up the stock record at the (product, warehouse,
	// location) triple; shared.ErrNotFound when absent.
	FindByKey(ctx context.Context, productID, warehouseID, locationID uuid.UUID) (*Stock, error)
	// FindByKeyForUpdate behaves like FindByKey but takes a row lock so
	// concurrent workflow completions serialize on the same stock record.
	// Only meaningful inside a transaction.
	FindByKeyForUpdate(ctx context.Context, productID, warehouseID, locationID uuid.UUID) (*Stock, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Stock, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, stock *Stock) error
	// Upsert inserts the stock record or, when the key triple already
	// exists, updates the quantity columns of the existing row.
	Upsert(ctx context.Context, stock *Stock) error
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context, warehouseID *uuid.UUID) (*StockSummary, error)
	LowStock(ctx context.Context) ([]LowStockProduct, error)
	// Non-zero checks back the deletion guards on products, warehouses
	// and locations.
	HasNonZeroByProduct(ctx context.Context, productID uuid.UUID) (bool, error)
	HasNonZeroByWarehouse(ctx context.Context, warehouseID uuid.UUID) (bool, error)
	HasNonZeroByLocation(ctx context.Context, locationID uuid.UUID) (bool, error)
}

// LedgerFilter narrows ledger listings
type LedgerFilter struct {
	shared.Filter
	ProductID       *uuid.UUID
	WarehouseID     *uuid.UUID
	TransactionType *TransactionType
	From            *time.Time
	To              *time.Time
}

// LedgerRepository is the append-only store for stock movements
type LedgerRepository interface {
	Append(ctx context.Context, entries ...*LedgerEntry) error
	FindAll(ctx context.Context, filter LedgerFilter) ([]LedgerEntry, error)
	Count(ctx context.Context, filter LedgerFilter) (int64, error)
}

// TransferRepository defines persistence operations for internal transfers
type TransferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*InternalTransfer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]InternalTransfer, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, transfer *InternalTransfer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdjustmentRepository defines persistence operations for stock adjustments
type AdjustmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockAdjustment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]StockAdjustment, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, adjustment *StockAdjustment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
