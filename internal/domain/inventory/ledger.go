package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// TransactionType identifies the document kind that caused a stock movement
type TransactionType string

const (
	TransactionTypeReceipt    TransactionType = "receipt"
	TransactionTypeDelivery   TransactionType = "delivery"
	TransactionTypeTransfer   TransactionType = "transfer"
	TransactionTypeAdjustment TransactionType = "adjustment"
)

// IsValid returns true if the transaction type is one of the known values
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionTypeReceipt, TransactionTypeDelivery, TransactionTypeTransfer, TransactionTypeAdjustment:
		return true
	}
	return false
}

// LedgerEntry is one immutable record in the stock movement ledger. Entries
// carry the full (product, warehouse, location) key plus the number of the
// document that caused the movement, so an auditor can reconstruct what
// changed where. Corrections are made with new entries, never by editing.
type LedgerEntry struct {
	shared.BaseEntity
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_product_time,priority:1"`
	WarehouseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;index"`
	QuantityChange  decimal.Decimal `gorm:"type:decimal(18,4);not null"` // signed delta
	QuantityAfter   decimal.Decimal `gorm:"type:decimal(18,4);not null"` // stock quantity right after the change
	Reference       string          `gorm:"type:varchar(50);not null"`   // source document number
	PerformedBy     uuid.UUID       `gorm:"type:uuid;not null"`
	Timestamp       time.Time       `gorm:"type:timestamptz;not null;index:idx_ledger_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (LedgerEntry) TableName() string {
	return "stock_ledger"
}

// NewLedgerEntry creates a ledger entry for a stock movement
func NewLedgerEntry(
	txType TransactionType,
	productID, warehouseID, locationID uuid.UUID,
	quantityChange, quantityAfter decimal.Decimal,
	reference string,
	performedBy uuid.UUID,
) (*LedgerEntry, error) {
	if !txType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TRANSACTION_TYPE", "Invalid transaction type")
	}
	if productID == uuid.Nil || warehouseID == uuid.Nil || locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STOCK_KEY", "Ledger entries require product, warehouse and location")
	}
	if quantityChange.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}
	if quantityAfter.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Resulting quantity cannot be negative")
	}
	if reference == "" {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Ledger entries require a source document reference")
	}
	if performedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACTOR", "Ledger entries require an actor")
	}

	return &LedgerEntry{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		WarehouseID:     warehouseID,
		LocationID:      locationID,
		TransactionType: txType,
		QuantityChange:  quantityChange,
		QuantityAfter:   quantityAfter,
		Reference:       reference,
		PerformedBy:     performedBy,
		Timestamp:       time.Now(),
	}, nil
}

// IsInbound reports whether the entry increased the stock quantity
func (e *LedgerEntry) IsInbound() bool {
	return e.QuantityChange.IsPositive()
}
