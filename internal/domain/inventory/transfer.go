package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// TransferStatus is the state of an internal transfer document
type TransferStatus string

const (
	TransferStatusDraft     TransferStatus = "draft"
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCanceled  TransferStatus = "canceled"
)

// TransferItem is one product line on an internal transfer
type TransferItem struct {
	shared.BaseEntity
	TransferID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (TransferItem) TableName() string {
	return "transfer_items"
}

// InternalTransfer moves stock between two warehouse locations. Completing
// deducts every item from the source location and adds it at the
// destination, writing a ledger entry pair per item.
type InternalTransfer struct {
	shared.BaseEntity
	TransferNumber         string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	SourceWarehouseID      uuid.UUID      `gorm:"type:uuid;not null"`
	SourceLocationID       uuid.UUID      `gorm:"type:uuid;not null"`
	DestinationWarehouseID uuid.UUID      `gorm:"type:uuid;not null"`
	DestinationLocationID  uuid.UUID      `gorm:"type:uuid;not null"`
	Status                 TransferStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	Notes                  string         `gorm:"type:varchar(500)"`
	CompletedBy            *uuid.UUID     `gorm:"type:uuid"`

	Items []TransferItem `gorm:"foreignKey:TransferID"`
}

// TableName returns the table name for GORM
func (InternalTransfer) TableName() string {
	return "internal_transfers"
}

// NewInternalTransfer creates a draft transfer between two locations
func NewInternalTransfer(number string, sourceWarehouseID, sourceLocationID, destWarehouseID, destLocationID uuid.UUID) (*InternalTransfer, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Transfer number cannot be empty")
	}
	if sourceWarehouseID == uuid.Nil || sourceLocationID == uuid.Nil ||
		destWarehouseID == uuid.Nil || destLocationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Transfers require source and destination warehouse and location")
	}
	if sourceLocationID == destLocationID {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Source and destination locations must differ")
	}

	return &InternalTransfer{
		BaseEntity:             shared.NewBaseEntity(),
		TransferNumber:         number,
		SourceWarehouseID:      sourceWarehouseID,
		SourceLocationID:       sourceLocationID,
		DestinationWarehouseID: destWarehouseID,
		DestinationLocationID:  destLocationID,
		Status:                 TransferStatusDraft,
		Items:                  make([]TransferItem, 0),
	}, nil
}

// AddItem appends a product line; only draft transfers can change
func (t *InternalTransfer) AddItem(productID uuid.UUID, quantity decimal.Decimal) error {
	if t.Status != TransferStatusDraft {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	t.Items = append(t.Items, TransferItem{
		BaseEntity: shared.NewBaseEntity(),
		TransferID: t.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	t.Touch()
	return nil
}

// Submit moves a draft transfer to pending, making it eligible for completion
func (t *InternalTransfer) Submit() error {
	if t.Status != TransferStatusDraft {
		return shared.ErrInvalidState
	}
	if len(t.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Transfer has no items")
	}
	t.Status = TransferStatusPending
	t.Touch()
	return nil
}

// Complete moves a pending transfer to completed. The caller applies the
// stock movements and ledger entries in the same transaction.
func (t *InternalTransfer) Complete(actor uuid.UUID) error {
	if t.Status != TransferStatusPending {
		return shared.ErrInvalidState
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Completing requires an actor")
	}
	t.Status = TransferStatusCompleted
	t.CompletedBy = &actor
	t.Touch()
	return nil
}

// Cancel aborts a draft or pending transfer
func (t *InternalTransfer) Cancel() error {
	if t.Status != TransferStatusDraft && t.Status != TransferStatusPending {
		return shared.ErrInvalidState
	}
	t.Status = TransferStatusCanceled
	t.Touch()
	return nil
}

// CanUpdate reports whether the document still accepts edits
func (t *InternalTransfer) CanUpdate() bool {
	return t.Status == TransferStatusDraft || t.Status == TransferStatusPending
}
