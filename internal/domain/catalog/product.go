package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// Product represents a stock-keeping unit in the catalog.
// Products are never deleted automatically; deletion is blocked by the
// application layer while non-zero stock exists for the SKU.
type Product struct {
	shared.BaseEntity
	SKU             string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(200);not null"`
	Description     string          `gorm:"type:text"`
	CategoryID      *uuid.UUID      `gorm:"type:uuid;index"`
	Unit            string          `gorm:"type:varchar(20);not null"` // e.g. "pcs", "kg", "box"
	CostPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SellingPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderPoint    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	Category *Category `gorm:"foreignKey:CategoryID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(sku, name, unit string) (*Product, error) {
	if err := validateSKU(sku); err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if strings.TrimSpace(unit) == "" {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit of measure cannot be empty")
	}

	return &Product{
		BaseEntity:      shared.NewBaseEntity(),
		SKU:             strings.ToUpper(strings.TrimSpace(sku)),
		Name:            name,
		Unit:            unit,
		CostPrice:       decimal.Zero,
		SellingPrice:    decimal.Zero,
		ReorderPoint:    decimal.Zero,
		ReorderQuantity: decimal.Zero,
	}, nil
}

// SetPrices sets cost and selling prices
func (p *Product) SetPrices(costPrice, sellingPrice decimal.Decimal) error {
	if costPrice.IsNegative() || sellingPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.CostPrice = costPrice
	p.SellingPrice = sellingPrice
	p.Touch()
	return nil
}

// SetReorderLevels sets the reorder point and the quantity to reorder
func (p *Product) SetReorderLevels(point, quantity decimal.Decimal) error {
	if point.IsNegative() || quantity.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Reorder levels cannot be negative")
	}
	p.ReorderPoint = point
	p.ReorderQuantity = quantity
	p.Touch()
	return nil
}

// SetCategory assigns the product to a category; nil clears the assignment
func (p *Product) SetCategory(categoryID *uuid.UUID) {
	p.CategoryID = categoryID
	p.Touch()
}

// Rename updates the display name
func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Touch()
	return nil
}

func validateSKU(sku string) error {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 50 {
		return shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 50 characters")
	}
	return nil
}
