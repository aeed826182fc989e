package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// Stock is the mutable balance for one product at one warehouse location.
// The composite key (ProductID, WarehouseID, LocationID) is enforced by a
// unique index; the invariant AvailableQuantity = Quantity - ReservedQuantity
// is recomputed by every mutator.
type Stock struct {
	shared.BaseEntity
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse_location,priority:1"`
	WarehouseID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse_location,priority:2"`
	LocationID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_product_warehouse_location,priority:3"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReservedQuantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AvailableQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (Stock) TableName() string {
	return "stocks"
}

// NewStock creates an empty stock record for a product at a location
func NewStock(productID, warehouseID, locationID uuid.UUID) (*Stock, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	if locationID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_LOCATION", "Location ID cannot be empty")
	}

	return &Stock{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		WarehouseID:       warehouseID,
		LocationID:        locationID,
		Quantity:          decimal.Zero,
		ReservedQuantity:  decimal.Zero,
		AvailableQuantity: decimal.Zero,
	}, nil
}

func (s *Stock) recompute() {
	s.AvailableQuantity = s.Quantity.Sub(s.ReservedQuantity)
	s.Touch()
}

// Receive adds quantity to the stock (inbound goods)
func (s *Stock) Receive(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	s.Quantity = s.Quantity.Add(quantity)
	s.recompute()
	return nil
}

// Deduct removes quantity from the stock. Fails with INSUFFICIENT_STOCK when
// the available quantity would not cover the request.
func (s *Stock) Deduct(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if s.AvailableQuantity.LessThan(quantity) {
		return shared.ErrInsufficientStock
	}
	s.Quantity = s.Quantity.Sub(quantity)
	s.recompute()
	return nil
}

// CanFulfill reports whether the available quantity covers the request
func (s *Stock) CanFulfill(quantity decimal.Decimal) bool {
	return s.AvailableQuantity.GreaterThanOrEqual(quantity)
}

// SetQuantity sets the on-hand quantity to an absolute value. Used by the
// adjustment workflow and the administrative override.
func (s *Stock) SetQuantity(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	s.Quantity = quantity
	s.recompute()
	return nil
}

// SetReserved sets the reserved quantity to an absolute value
func (s *Stock) SetReserved(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Reserved quantity cannot be negative")
	}
	s.ReservedQuantity = quantity
	s.recompute()
	return nil
}

// IsZero reports whether the stock holds nothing at all
func (s *Stock) IsZero() bool {
	return s.Quantity.IsZero() && s.ReservedQuantity.IsZero()
}
