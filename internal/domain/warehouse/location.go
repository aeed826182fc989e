package warehouse

import (
	"strings"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/shared"
)

// LocationType classifies a storage location within a warehouse
type LocationType string

const (
	LocationTypeRack  LocationType = "rack"
	LocationTypeShelf LocationType = "shelf"
	LocationTypeZone  LocationType = "zone"
)

// IsValid returns true if the location type is one of the known values
func (t LocationType) IsValid() bool {
	switch t {
	case LocationTypeRack, LocationTypeShelf, LocationTypeZone:
		return true
	}
	return false
}

// Location is a storage spot inside exactly one warehouse. The code is
// unique within the owning warehouse. Capacity is informational only and
// not enforced anywhere.
type Location struct {
	shared.BaseEntity
	WarehouseID uuid.UUID    `gorm:"type:uuid;not null;uniqueIndex:idx_location_warehouse_code,priority:1"`
	Code        string       `gorm:"type:varchar(50);not null;uniqueIndex:idx_location_warehouse_code,priority:2"`
	Type        LocationType `gorm:"type:varchar(20);not null"`
	Capacity    *int         `gorm:""`

	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID"`
}

// TableName returns the table name for GORM
func (Location) TableName() string {
	return "locations"
}

// NewLocation creates a new location inside a warehouse
func NewLocation(warehouseID uuid.UUID, code string, locType LocationType) (*Location, error) {
	if warehouseID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WAREHOUSE", "Warehouse ID cannot be empty")
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Location code cannot be empty")
	}
	if !locType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Location type must be rack, shelf or zone")
	}

	return &Location{
		BaseEntity:  shared.NewBaseEntity(),
		WarehouseID: warehouseID,
		Code:        strings.ToUpper(code),
		Type:        locType,
	}, nil
}

// BelongsTo reports whether the location is owned by the given warehouse
func (l *Location) BelongsTo(warehouseID uuid.UUID) bool {
	return l.WarehouseID == warehouseID
}

// SetCapacity sets the informational capacity; nil clears it
func (l *Location) SetCapacity(capacity *int) error {
	if capacity != nil && *capacity < 0 {
		return shared.NewDomainError("INVALID_CAPACITY", "Capacity cannot be negative")
	}
	l.Capacity = capacity
	l.Touch()
	return nil
}
