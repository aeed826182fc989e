package warehouse

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// Warehouse represents a physical storage facility. Deletion is blocked by
// the application layer while the warehouse owns locations or non-zero stock.
type Warehouse struct {
	shared.BaseEntity
	Code      string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name      string     `gorm:"type:varchar(200);not null"`
	Address   string     `gorm:"type:varchar(500)"`
	City      string     `gorm:"type:varchar(100)"`
	ManagerID *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (Warehouse) TableName() string {
	return "warehouses"
}

// NewWarehouse creates a new warehouse
func NewWarehouse(code, name string) (*Warehouse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Warehouse code cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Warehouse name cannot be empty")
	}

	return &Warehouse{
		BaseEntity: shared.NewBaseEntity(),
		Code:       strings.ToUpper(code),
		Name:       name,
	}, nil
}

// SetAddress updates the address fields
func (w *Warehouse) SetAddress(address, city string) {
	w.Address = address
	w.City = city
	w.Touch()
}

// AssignManager sets the managing user; nil clears the assignment
func (w *Warehouse) AssignManager(managerID *uuid.UUID) {
	w.ManagerID = managerID
	w.Touch()
}
