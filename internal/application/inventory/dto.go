package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stockmaster/backend/internal/domain/inventory"
)

// StockResponse represents a stock record in API responses
type StockResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	LocationID        uuid.UUID       `json:"location_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToStockResponse converts a domain Stock to StockResponse
func ToStockResponse(s *inventory.Stock) StockResponse {
	return StockResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		WarehouseID:       s.WarehouseID,
		LocationID:        s.LocationID,
		Quantity:          s.Quantity,
		ReservedQuantity:  s.ReservedQuantity,
		AvailableQuantity: s.AvailableQuantity,
		UpdatedAt:         s.UpdatedAt,
	}
}

// StockListFilter represents filter options for stock listings
type StockListFilter struct {
	ProductID   *uuid.UUID `form:"product_id"`
	WarehouseID *uuid.UUID `form:"warehouse_id"`
	LocationID  *uuid.UUID `form:"location_id"`
	Page        int        `form:"page" binding:"omitempty,min=1"`
	PageSize    int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// OverrideStockRequest sets quantity columns of a stock record directly.
// This is the administrative escape hatch; it writes no ledger entry.
type OverrideStockRequest struct {
	ProductID        uuid.UUID        `json:"product_id" binding:"required"`
	WarehouseID      uuid.UUID        `json:"warehouse_id" binding:"required"`
	LocationID       uuid.UUID        `json:"location_id" binding:"required"`
	Quantity         *decimal.Decimal `json:"quantity"`
	ReservedQuantity *decimal.Decimal `json:"reserved_quantity"`
}

// StockSummaryResponse aggregates stock figures, optionally per warehouse
type StockSummaryResponse struct {
	ProductCount   int64           `json:"product_count"`
	TotalQuantity  decimal.Decimal `json:"total_quantity"`
	TotalReserved  decimal.Decimal `json:"total_reserved"`
	TotalAvailable decimal.Decimal `json:"total_available"`
	TotalValue     decimal.Decimal `json:"total_value"`
}

// LowStockResponse flags a product at or below its reorder point
type LowStockResponse struct {
	ProductID       uuid.UUID       `json:"product_id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	TotalAvailable  decimal.Decimal `json:"total_available"`
	ReorderPoint    decimal.Decimal `json:"reorder_point"`
	ReorderQuantity decimal.Decimal `json:"reorder_quantity"`
}

// LedgerListFilter represents filter options for ledger listings
type LedgerListFilter struct {
	ProductID       *uuid.UUID `form:"product_id"`
	WarehouseID     *uuid.UUID `form:"warehouse_id"`
	TransactionType *string    `form:"transaction_type" binding:"omitempty,oneof=receipt delivery transfer adjustment"`
	From            *time.Time `form:"from" time_format:"2006-01-02"`
	To              *time.Time `form:"to" time_format:"2006-01-02"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// LedgerEntryResponse represents one ledger entry in API responses
type LedgerEntryResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	WarehouseID     uuid.UUID       `json:"warehouse_id"`
	LocationID      uuid.UUID       `json:"location_id"`
	TransactionType string          `json:"transaction_type"`
	QuantityChange  decimal.Decimal `json:"quantity_change"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	Reference       string          `json:"reference"`
	PerformedBy     uuid.UUID       `json:"performed_by"`
	Timestamp       time.Time       `json:"timestamp"`
}

// ToLedgerEntryResponse converts a domain LedgerEntry to LedgerEntryResponse
func ToLedgerEntryResponse(e *inventory.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:              e.ID,
		ProductID:       e.ProductID,
		WarehouseID:     e.WarehouseID,
		LocationID:      e.LocationID,
		TransactionType: string(e.TransactionType),
		QuantityChange:  e.QuantityChange,
		QuantityAfter:   e.QuantityAfter,
		Reference:       e.Reference,
		PerformedBy:     e.PerformedBy,
		Timestamp:       e.Timestamp,
	}
}

// TransferItemRequest is one product line in a transfer request
type TransferItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateTransferRequest creates a draft internal transfer
type CreateTransferRequest struct {
	SourceWarehouseID      uuid.UUID             `json:"source_warehouse_id" binding:"required"`
	SourceLocationID       uuid.UUID             `json:"source_location_id" binding:"required"`
	DestinationWarehouseID uuid.UUID             `json:"destination_warehouse_id" binding:"required"`
	DestinationLocationID  uuid.UUID             `json:"destination_location_id" binding:"required"`
	Notes                  string                `json:"notes" binding:"max=500"`
	Items                  []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransferItemResponse is one product line in a transfer response
type TransferItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// TransferResponse represents an internal transfer in API responses
type TransferResponse struct {
	ID                     uuid.UUID              `json:"id"`
	TransferNumber         string                 `json:"transfer_number"`
	SourceWarehouseID      uuid.UUID              `json:"source_warehouse_id"`
	SourceLocationID       uuid.UUID              `json:"source_location_id"`
	DestinationWarehouseID uuid.UUID              `json:"destination_warehouse_id"`
	DestinationLocationID  uuid.UUID              `json:"destination_location_id"`
	Status                 string                 `json:"status"`
	Notes                  string                 `json:"notes,omitempty"`
	CompletedBy            *uuid.UUID             `json:"completed_by,omitempty"`
	Items                  []TransferItemResponse `json:"items"`
	CreatedAt              time.Time              `json:"created_at"`
	UpdatedAt              time.Time              `json:"updated_at"`
}

// ToTransferResponse converts a domain InternalTransfer to TransferResponse
func ToTransferResponse(t *inventory.InternalTransfer) TransferResponse {
	items := make([]TransferItemResponse, 0, len(t.Items))
	for i := range t.Items {
		items = append(items, TransferItemResponse{
			ProductID: t.Items[i].ProductID,
			Quantity:  t.Items[i].Quantity,
		})
	}
	return TransferResponse{
		ID:                     t.ID,
		TransferNumber:         t.TransferNumber,
		SourceWarehouseID:      t.SourceWarehouseID,
		SourceLocationID:       t.SourceLocationID,
		DestinationWarehouseID: t.DestinationWarehouseID,
		DestinationLocationID:  t.DestinationLocationID,
		Status:                 string(t.Status),
		Notes:                  t.Notes,
		CompletedBy:            t.CompletedBy,
		Items:                  items,
		CreatedAt:              t.CreatedAt,
		UpdatedAt:              t.UpdatedAt,
	}
}

// CreateAdjustmentRequest opens a pending stock adjustment. The recorded
// quantity is captured from the current stock record server-side.
type CreateAdjustmentRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	LocationID      uuid.UUID       `json:"location_id" binding:"required"`
	CountedQuantity decimal.Decimal `json:"counted_quantity" binding:"required"`
	Reason          string          `json:"reason" binding:"required,min=1,max=255"`
}

// UpdateAdjustmentRequest revises the counted quantity and reason of a
// pending adjustment
type UpdateAdjustmentRequest struct {
	CountedQuantity decimal.Decimal `json:"counted_quantity" binding:"required"`
	Reason          string          `json:"reason" binding:"required,min=1,max=255"`
}

// AdjustmentResponse represents a stock adjustment in API responses
type AdjustmentResponse struct {
	ID               uuid.UUID       `json:"id"`
	AdjustmentNumber string          `json:"adjustment_number"`
	ProductID        uuid.UUID       `json:"product_id"`
	LocationID       uuid.UUID       `json:"location_id"`
	RecordedQuantity decimal.Decimal `json:"recorded_quantity"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	Difference       decimal.Decimal `json:"difference"`
	Reason           string          `json:"reason"`
	Status           string          `json:"status"`
	ApprovedBy       *uuid.UUID      `json:"approved_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToAdjustmentResponse converts a domain StockAdjustment to AdjustmentResponse
func ToAdjustmentResponse(a *inventory.StockAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:               a.ID,
		AdjustmentNumber: a.AdjustmentNumber,
		ProductID:        a.ProductID,
		LocationID:       a.LocationID,
		RecordedQuantity: a.RecordedQuantity,
		CountedQuantity:  a.CountedQuantity,
		Difference:       a.Difference(),
		Reason:           a.Reason,
		Status:           string(a.Status),
		ApprovedBy:       a.ApprovedBy,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
