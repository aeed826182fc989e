package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// ReceiptStatus is the state of an inbound receipt document
type ReceiptStatus string

const (
	ReceiptStatusDraft    ReceiptStatus = "draft"
	ReceiptStatusWaiting  ReceiptStatus = "waiting"
	ReceiptStatusReady    ReceiptStatus = "ready"
	ReceiptStatusDone     ReceiptStatus = "done"
	ReceiptStatusCanceled ReceiptStatus = "canceled"
)

// ReceiptItem is one product line on a receipt, bound for a target location
// inside the receipt's warehouse
type ReceiptItem struct {
	shared.BaseEntity
	ReceiptID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null"`
	LocationID uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ReceiptItem) TableName() string {
	return "receipt_items"
}

// Receipt is an inbound document for goods arriving into a warehouse.
// Validating it is the terminal transition that books every line item into
// stock and the ledger; it is not reversible.
type Receipt struct {
	shared.BaseEntity
	ReceiptNumber     string        `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierName      string        `gorm:"type:varchar(200);not null"`
	SupplierReference string        `gorm:"type:varchar(100)"`
	WarehouseID       uuid.UUID     `gorm:"type:uuid;not null;index"`
	Status            ReceiptStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	ValidatedBy       *uuid.UUID    `gorm:"type:uuid"`

	Items []ReceiptItem `gorm:"foreignKey:ReceiptID"`
}

// TableName returns the table name for GORM
func (Receipt) TableName() string {
	return "receipts"
}

// NewReceipt creates a draft receipt for a warehouse
func NewReceipt(number, supplierName string, warehouseID uuid.UUID) (*Receipt, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Receipt number cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier name cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}

	return &Receipt{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: number,
		SupplierName:  supplierName,
		WarehouseID:   warehouseID,
		Status:        ReceiptStatusDraft,
		Items:         make([]ReceiptItem, 0),
	}, nil
}

// AddItem appends a product line; only editable receipts can change
func (r *Receipt) AddItem(productID, locationID uuid.UUID, quantity, unitPrice decimal.Decimal) error {
	if !r.CanUpdate() {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return shared.NewDomainError("INVALID_LOCATION", "Target location ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	r.Items = append(r.Items, ReceiptItem{
		BaseEntity: shared.NewBaseEntity(),
		ReceiptID:  r.ID,
		ProductID:  productID,
		LocationID: locationID,
		Quantity:   quantity,
		UnitPrice:  unitPrice,
	})
	r.Touch()
	return nil
}

// Submit moves a draft receipt to waiting
func (r *Receipt) Submit() error {
	if r.Status != ReceiptStatusDraft {
		return shared.ErrInvalidState
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Receipt has no items")
	}
	r.Status = ReceiptStatusWaiting
	r.Touch()
	return nil
}

// MarkReady moves a waiting receipt to ready
func (r *Receipt) MarkReady() error {
	if r.Status != ReceiptStatusWaiting {
		return shared.ErrInvalidState
	}
	r.Status = ReceiptStatusReady
	r.Touch()
	return nil
}

// Validate moves the receipt to done. Only waiting or ready receipts can be
// validated. The caller books the stock and ledger effects in the same
// transaction.
func (r *Receipt) Validate(actor uuid.UUID) error {
	if r.Status != ReceiptStatusWaiting && r.Status != ReceiptStatusReady {
		return shared.ErrInvalidState
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Validating requires an actor")
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Receipt has no items")
	}
	r.Status = ReceiptStatusDone
	r.ValidatedBy = &actor
	r.Touch()
	return nil
}

// Cancel aborts the receipt; done receipts cannot be canceled
func (r *Receipt) Cancel() error {
	if r.Status == ReceiptStatusDone || r.Status == ReceiptStatusCanceled {
		return shared.ErrInvalidState
	}
	r.Status = ReceiptStatusCanceled
	r.Touch()
	return nil
}

// CanUpdate reports whether the document still accepts edits
func (r *Receipt) CanUpdate() bool {
	return r.Status != ReceiptStatusDone && r.Status != ReceiptStatusCanceled
}

// CanDelete reports whether the document may be deleted
func (r *Receipt) CanDelete() bool {
	return r.Status != ReceiptStatusDone
}
