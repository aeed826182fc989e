package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/trade"
)

// ReceiptItemRequest is one product line in a receipt request
type ReceiptItemRequest struct {
	ProductID  uuid.UUID       `json:"product_id" binding:"required"`
	LocationID uuid.UUID       `json:"location_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// CreateReceiptRequest creates a draft receipt
type CreateReceiptRequest struct {
	SupplierName      string               `json:"supplier_name" binding:"required,min=1,max=200"`
	SupplierReference string               `json:"supplier_reference" binding:"max=100"`
	WarehouseID       uuid.UUID            `json:"warehouse_id" binding:"required"`
	Items             []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateReceiptRequest replaces the header fields and items of an editable
// receipt
type UpdateReceiptRequest struct {
	SupplierName      string               `json:"supplier_name" binding:"required,min=1,max=200"`
	SupplierReference string               `json:"supplier_reference" binding:"max=100"`
	Items             []ReceiptItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReceiptItemResponse is one product line in a receipt response
type ReceiptItemResponse struct {
	ProductID  uuid.UUID       `json:"product_id"`
	LocationID uuid.UUID       `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

// ReceiptResponse represents a receipt in API responses
type ReceiptResponse struct {
	ID                uuid.UUID             `json:"id"`
	ReceiptNumber     string                `json:"receipt_number"`
	SupplierName      string                `json:"supplier_name"`
	SupplierReference string                `json:"supplier_reference,omitempty"`
	WarehouseID       uuid.UUID             `json:"warehouse_id"`
	Status            string                `json:"status"`
	ValidatedBy       *uuid.UUID            `json:"validated_by,omitempty"`
	Items             []ReceiptItemResponse `json:"items"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

// ToReceiptResponse converts a domain Receipt to ReceiptResponse
func ToReceiptResponse(r *trade.Receipt) ReceiptResponse {
	items := make([]ReceiptItemResponse, 0, len(r.Items))
	for i := range r.Items {
		items = append(items, ReceiptItemResponse{
			ProductID:  r.Items[i].ProductID,
			LocationID: r.Items[i].LocationID,
			Quantity:   r.Items[i].Quantity,
			UnitPrice:  r.Items[i].UnitPrice,
		})
	}
	return ReceiptResponse{
		ID:                r.ID,
		ReceiptNumber:     r.ReceiptNumber,
		SupplierName:      r.SupplierName,
		SupplierReference: r.SupplierReference,
		WarehouseID:       r.WarehouseID,
		Status:            string(r.Status),
		ValidatedBy:       r.ValidatedBy,
		Items:             items,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// DeliveryItemRequest is one product line in a delivery order request
type DeliveryItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateDeliveryRequest creates a draft delivery order
type CreateDeliveryRequest struct {
	CustomerName    string                `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerAddress string                `json:"customer_address" binding:"max=500"`
	Items           []DeliveryItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateDeliveryRequest replaces the customer fields and items of an
// unshipped delivery order
type UpdateDeliveryRequest struct {
	CustomerName    string                `json:"customer_name" binding:"required,min=1,max=200"`
	CustomerAddress string                `json:"customer_address" binding:"max=500"`
	Items           []DeliveryItemRequest `json:"items" binding:"required,min=1,dive"`
}

// DeliveryProgressRequest records picked or packed quantities per product
type DeliveryProgressRequest struct {
	Items []DeliveryProgressItem `json:"items" binding:"required,min=1,dive"`
}

// DeliveryProgressItem is the progress of one product line
type DeliveryProgressItem struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CompleteDeliveryRequest names the stock key the delivery ships from
type CompleteDeliveryRequest struct {
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	LocationID  uuid.UUID `json:"location_id" binding:"required"`
}

// DeliveryItemResponse is one product line in a delivery order response
type DeliveryItemResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	PickedQuantity decimal.Decimal `json:"picked_quantity"`
	PackedQuantity decimal.Decimal `json:"packed_quantity"`
}

// DeliveryResponse represents a delivery order in API responses
type DeliveryResponse struct {
	ID              uuid.UUID              `json:"id"`
	DeliveryNumber  string                 `json:"delivery_number"`
	CustomerName    string                 `json:"customer_name"`
	CustomerAddress string                 `json:"customer_address,omitempty"`
	Status          string                 `json:"status"`
	CompletedBy     *uuid.UUID             `json:"completed_by,omitempty"`
	Items           []DeliveryItemResponse `json:"items"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// ToDeliveryResponse converts a domain DeliveryOrder to DeliveryResponse
func ToDeliveryResponse(d *trade.DeliveryOrder) DeliveryResponse {
	items := make([]DeliveryItemResponse, 0, len(d.Items))
	for i := range d.Items {
		items = append(items, DeliveryItemResponse{
			ProductID:      d.Items[i].ProductID,
			Quantity:       d.Items[i].Quantity,
			PickedQuantity: d.Items[i].PickedQuantity,
			PackedQuantity: d.Items[i].PackedQuantity,
		})
	}
	return DeliveryResponse{
		ID:              d.ID,
		DeliveryNumber:  d.DeliveryNumber,
		CustomerName:    d.CustomerName,
		CustomerAddress: d.CustomerAddress,
		Status:          string(d.Status),
		CompletedBy:     d.CompletedBy,
		Items:           items,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
