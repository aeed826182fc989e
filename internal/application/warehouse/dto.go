package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// CreateWarehouseRequest creates a warehouse
type CreateWarehouseRequest struct {
	Code      string     `json:"code" binding:"required,min=1,max=50"`
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Address   string     `json:"address" binding:"max=500"`
	City      string     `json:"city" binding:"max=100"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

// UpdateWarehouseRequest updates warehouse fields; the code is immutable
type UpdateWarehouseRequest struct {
	Name      string     `json:"name" binding:"required,min=1,max=200"`
	Address   string     `json:"address" binding:"max=500"`
	City      string     `json:"city" binding:"max=100"`
	ManagerID *uuid.UUID `json:"manager_id"`
}

// WarehouseResponse represents a warehouse in API responses
type WarehouseResponse struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Address   string     `json:"address,omitempty"`
	City      string     `json:"city,omitempty"`
	ManagerID *uuid.UUID `json:"manager_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ToWarehouseResponse converts a domain Warehouse to WarehouseResponse
func ToWarehouseResponse(w *warehouse.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		City:      w.City,
		ManagerID: w.ManagerID,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// CreateLocationRequest creates a location inside a warehouse
type CreateLocationRequest struct {
	Code     string `json:"code" binding:"required,min=1,max=50"`
	Type     string `json:"type" binding:"required,oneof=rack shelf zone"`
	Capacity *int   `json:"capacity"`
}

// UpdateLocationRequest updates a location
type UpdateLocationRequest struct {
	Type     string `json:"type" binding:"required,oneof=rack shelf zone"`
	Capacity *int   `json:"capacity"`
}

// LocationResponse represents a location in API responses
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Code        string    `json:"code"`
	Type        string    `json:"type"`
	Capacity    *int      `json:"capacity,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToLocationResponse converts a domain Location to LocationResponse
func ToLocationResponse(l *warehouse.Location) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Code:        l.Code,
		Type:        string(l.Type),
		Capacity:    l.Capacity,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}
