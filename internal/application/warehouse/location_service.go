package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// LocationService handles storage locations inside warehouses
type LocationService struct {
	locationRepo  warehouse.LocationRepository
	warehouseRepo warehouse.WarehouseRepository
	stockRepo     inventory.StockRepository
}

// NewLocationService creates a new LocationService
func NewLocationService(
	locationRepo warehouse.LocationRepository,
	warehouseRepo warehouse.WarehouseRepository,
	stockRepo inventory.StockRepository,
) *LocationService {
	return &LocationService{
		locationRepo:  locationRepo,
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
	}
}

// Create creates a location inside a warehouse; the code must be unique
// within that warehouse
func (s *LocationService) Create(ctx context.Context, warehouseID uuid.UUID, req CreateLocationRequest) (*LocationResponse, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, err
	}

	exists, err := s.locationRepo.ExistsByCode(ctx, warehouseID, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	location, err := warehouse.NewLocation(warehouseID, req.Code, warehouse.LocationType(req.Type))
	if err != nil {
		return nil, err
	}
	if err := location.SetCapacity(req.Capacity); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// Update updates a location's type and capacity; the code is immutable
func (s *LocationService) Update(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	locType := warehouse.LocationType(req.Type)
	if !locType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Location type must be rack, shelf or zone")
	}
	location.Type = locType
	if err := location.SetCapacity(req.Capacity); err != nil {
		return nil, err
	}

	if err := s.locationRepo.Save(ctx, location); err != nil {
		return nil, err
	}

	response := ToLocationResponse(location)
	return &response, nil
}

// GetByID returns one location
func (s *LocationService) GetByID(ctx context.Context, id uuid.UUID) (*LocationResponse, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToLocationResponse(location)
	return &response, nil
}

// ListByWarehouse returns the locations of one warehouse
func (s *LocationService) ListByWarehouse(ctx context.Context, warehouseID uuid.UUID, filter shared.Filter) ([]LocationResponse, int64, error) {
	if _, err := s.warehouseRepo.FindByID(ctx, warehouseID); err != nil {
		return nil, 0, err
	}

	locations, err := s.locationRepo.FindByWarehouse(ctx, warehouseID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.locationRepo.CountByWarehouse(ctx, warehouseID)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LocationResponse, 0, len(locations))
	for i := range locations {
		responses = append(responses, ToLocationResponse(&locations[i]))
	}
	return responses, total, nil
}

// Delete removes a location unless non-zero stock sits on it
func (s *LocationService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locationRepo.FindByID(ctx, id); err != nil {
		return err
	}

	hasStock, err := s.stockRepo.HasNonZeroByLocation(ctx, id)
	if err != nil {
		return err
	}
	if hasStock {
		return shared.NewDomainError("LOCATION_IN_USE", "Location still has stock and cannot be deleted")
	}

	return s.locationRepo.Delete(ctx, id)
}
