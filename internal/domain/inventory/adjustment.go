package inventory

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// AdjustmentStatus is the state of a stock adjustment document
type AdjustmentStatus string

const (
	AdjustmentStatusPending  AdjustmentStatus = "pending"
	AdjustmentStatusApproved AdjustmentStatus = "approved"
	AdjustmentStatusRejected AdjustmentStatus = "rejected"
)

// StockAdjustment reconciles the recorded quantity with a physical count for
// a single product at a single location. Approving sets the stock quantity
// to the counted value (absolute set, not a relative change). The owning
// warehouse is derived from the location, not stored on the document.
type StockAdjustment struct {
	shared.BaseEntity
	AdjustmentNumber string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	ProductID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	LocationID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	RecordedQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	CountedQuantity  decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	Reason           string           `gorm:"type:varchar(255);not null"`
	Status           AdjustmentStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	ApprovedBy       *uuid.UUID       `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// NewStockAdjustment creates a pending adjustment
func NewStockAdjustment(number string, productID, locationID uuid.UUID, recorded, counted decimal.Decimal, reason string) (*StockAdjustment, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Adjustment number cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}
	if recorded.IsNegative() || counted.IsNegative() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantities cannot be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}

	return &StockAdjustment{
		BaseEntity:       shared.NewBaseEntity(),
		AdjustmentNumber: number,
		ProductID:        productID,
		LocationID:       locationID,
		RecordedQuantity: recorded,
		CountedQuantity:  counted,
		Reason:           reason,
		Status:           AdjustmentStatusPending,
	}, nil
}

// Difference returns countedQuantity - recordedQuantity, the signed delta
// written to the ledger on approval
func (a *StockAdjustment) Difference() decimal.Decimal {
	return a.CountedQuantity.Sub(a.RecordedQuantity)
}

// Revise replaces the counted quantity and reason of a pending adjustment.
// The recorded quantity stays frozen at its creation-time value.
func (a *StockAdjustment) Revise(counted decimal.Decimal, reason string) error {
	if a.Status != AdjustmentStatusPending {
		return shared.ErrInvalidState
	}
	if counted.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted quantity cannot be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return shared.NewDomainError("INVALID_REASON", "Adjustment reason is required")
	}
	a.CountedQuantity = counted
	a.Reason = reason
	a.Touch()
	return nil
}

// Approve moves the adjustment to approved. The caller applies the stock
// mutation and ledger entry in the same transaction.
func (a *StockAdjustment) Approve(actor uuid.UUID) error {
	if a.Status != AdjustmentStatusPending {
		return shared.ErrInvalidState
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Approving requires an actor")
	}
	a.Status = AdjustmentStatusApproved
	a.ApprovedBy = &actor
	a.Touch()
	return nil
}

// Reject moves the adjustment to rejected with no stock or ledger effect
func (a *StockAdjustment) Reject(actor uuid.UUID) error {
	if a.Status != AdjustmentStatusPending {
		return shared.ErrInvalidState
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Rejecting requires an actor")
	}
	a.Status = AdjustmentStatusRejected
	a.ApprovedBy = &actor
	a.Touch()
	return nil
}
