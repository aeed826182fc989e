package trade

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// DeliveryStatus is the state of an outbound delivery order.
// The progression is draft -> picking -> packing -> ready -> done; picking
// and packing advance automatically as line quantities are filled.
type DeliveryStatus string

const (
	DeliveryStatusDraft   DeliveryStatus = "draft"
	DeliveryStatusPicking DeliveryStatus = "picking"
	DeliveryStatusPacking DeliveryStatus = "packing"
	DeliveryStatusReady   DeliveryStatus = "ready"
	DeliveryStatusDone    DeliveryStatus = "done"
)

// DeliveryItem is one product line on a delivery order with its picking and
// packing progress
type DeliveryItem struct {
	shared.BaseEntity
	DeliveryID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PickedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	PackedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (DeliveryItem) TableName() string {
	return "delivery_items"
}

// DeliveryOrder is an outbound document for goods leaving to a customer.
// Stock is deducted only when the order completes from the ready state.
type DeliveryOrder struct {
	shared.BaseEntity
	DeliveryNumber  string         `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerName    string         `gorm:"type:varchar(200);not null"`
	CustomerAddress string         `gorm:"type:varchar(500)"`
	Status          DeliveryStatus `gorm:"type:varchar(20);not null;default:'draft'"`
	CompletedBy     *uuid.UUID     `gorm:"type:uuid"`

	Items []DeliveryItem `gorm:"foreignKey:DeliveryID"`
}

// TableName returns the table name for GORM
func (DeliveryOrder) TableName() string {
	return "delivery_orders"
}

// NewDeliveryOrder creates a draft delivery order
func NewDeliveryOrder(number, customerName string) (*DeliveryOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Delivery number cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}

	return &DeliveryOrder{
		BaseEntity:     shared.NewBaseEntity(),
		DeliveryNumber: number,
		CustomerName:   customerName,
		Status:         DeliveryStatusDraft,
		Items:          make([]DeliveryItem, 0),
	}, nil
}

// AddItem appends a product line; only draft orders can change their lines
func (d *DeliveryOrder) AddItem(productID uuid.UUID, quantity decimal.Decimal) error {
	if d.Status != DeliveryStatusDraft {
		return shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	d.Items = append(d.Items, DeliveryItem{
		BaseEntity: shared.NewBaseEntity(),
		DeliveryID: d.ID,
		ProductID:  productID,
		Quantity:   quantity,
	})
	d.Touch()
	return nil
}

// UpdatePicking records picked quantities per product. A draft order moves
// to picking on the first update; once every item is fully picked the order
// advances to packing.
func (d *DeliveryOrder) UpdatePicking(picked map[uuid.UUID]decimal.Decimal) error {
	if d.Status != DeliveryStatusDraft && d.Status != DeliveryStatusPicking {
		return shared.ErrInvalidState
	}
	if len(d.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Delivery order has no items")
	}

	for i := range d.Items {
		qty, ok := picked[d.Items[i].ProductID]
		if !ok {
			continue
		}
		if qty.IsNegative() || qty.GreaterThan(d.Items[i].Quantity) {
			return shared.NewDomainError("INVALID_QUANTITY", "Picked quantity must be between zero and the ordered quantity")
		}
		d.Items[i].PickedQuantity = qty
		d.Items[i].Touch()
	}

	if d.Status == DeliveryStatusDraft {
		d.Status = DeliveryStatusPicking
	}
	if d.allPicked() {
		d.Status = DeliveryStatusPacking
	}
	d.Touch()
	return nil
}

// UpdatePacking records packed quantities per product. Once every item is
// fully packed the order advances to ready.
func (d *DeliveryOrder) UpdatePacking(packed map[uuid.UUID]decimal.Decimal) error {
	if d.Status != DeliveryStatusPacking {
		return shared.ErrInvalidState
	}

	for i := range d.Items {
		qty, ok := packed[d.Items[i].ProductID]
		if !ok {
			continue
		}
		if qty.IsNegative() || qty.GreaterThan(d.Items[i].Quantity) {
			return shared.NewDomainError("INVALID_QUANTITY", "Packed quantity must be between zero and the ordered quantity")
		}
		d.Items[i].PackedQuantity = qty
		d.Items[i].Touch()
	}

	if d.allPacked() {
		d.Status = DeliveryStatusReady
	}
	d.Touch()
	return nil
}

// Complete moves a ready order to done. The caller deducts stock and writes
// the ledger entries in the same transaction.
func (d *DeliveryOrder) Complete(actor uuid.UUID) error {
	if d.Status != DeliveryStatusReady {
		return shared.ErrInvalidState
	}
	if actor == uuid.Nil {
		return shared.NewDomainError("INVALID_ACTOR", "Completing requires an actor")
	}
	d.Status = DeliveryStatusDone
	d.CompletedBy = &actor
	d.Touch()
	return nil
}

// Reopen returns an unshipped order to draft so its lines can be replaced.
// Picking and packing progress recorded so far is discarded together with
// the replaced lines.
func (d *DeliveryOrder) Reopen() error {
	if d.Status == DeliveryStatusDone {
		return shared.ErrInvalidState
	}
	d.Status = DeliveryStatusDraft
	d.Touch()
	return nil
}

// CanUpdate reports whether the document still accepts edits
func (d *DeliveryOrder) CanUpdate() bool {
	return d.Status != DeliveryStatusDone
}

func (d *DeliveryOrder) allPicked() bool {
	for i := range d.Items {
		if d.Items[i].PickedQuantity.LessThan(d.Items[i].Quantity) {
			return false
		}
	}
	return true
}

func (d *DeliveryOrder) allPacked() bool {
	for i := range d.Items {
		if d.Items[i].PackedQuantity.LessThan(d.Items[i].Quantity) {
			return false
		}
	}
	return true
}
