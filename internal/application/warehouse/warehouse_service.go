package warehouse

import (
	"context"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// WarehouseService handles warehouse master data
type WarehouseService struct {
	warehouseRepo warehouse.WarehouseRepository
	locationRepo  warehouse.LocationRepository
	stockRepo     inventory.StockRepository
}

// NewWarehouseService creates a new WarehouseService
func NewWarehouseService(
	warehouseRepo warehouse.WarehouseRepository,
	locationRepo warehouse.LocationRepository,
	stockRepo inventory.StockRepository,
) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		stockRepo:     stockRepo,
	}
}

// Create creates a warehouse with a unique code
func (s *WarehouseService) Create(ctx context.Context, req CreateWarehouseRequest) (*WarehouseResponse, error) {
	exists, err := s.warehouseRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrAlreadyExists
	}

	wh, err := warehouse.NewWarehouse(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	wh.SetAddress(req.Address, req.City)
	wh.AssignManager(req.ManagerID)

	if err := s.warehouseRepo.Save(ctx, wh); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(wh)
	return &response, nil
}

// Update updates warehouse fields; the code is immutable
func (s *WarehouseService) Update(ctx context.Context, id uuid.UUID, req UpdateWarehouseRequest) (*WarehouseResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wh.Name = req.Name
	wh.SetAddress(req.Address, req.City)
	wh.AssignManager(req.ManagerID)

	if err := s.warehouseRepo.Save(ctx, wh); err != nil {
		return nil, err
	}

	response := ToWarehouseResponse(wh)
	return &response, nil
}

// GetByID returns one warehouse
func (s *WarehouseService) GetByID(ctx context.Context, id uuid.UUID) (*WarehouseResponse, error) {
	wh, err := s.warehouseRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToWarehouseResponse(wh)
	return &response, nil
}

// List returns warehouses with the total count
func (s *WarehouseService) List(ctx context.Context, filter shared.Filter) ([]WarehouseResponse, int64, error) {
	warehouses, err := s.warehouseRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.warehouseRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]WarehouseResponse, 0, len(warehouses))
	for i := range warehouses {
		responses = append(responses, ToWarehouseResponse(&warehouses[i]))
	}
	return responses, total, nil
}

// Delete removes a warehouse unless it still owns locations or non-zero
// stock
func (s *WarehouseService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.warehouseRepo.FindByID(ctx, id); err != nil {
		return err
	}

	locationCount, err := s.locationRepo.CountByWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if locationCount > 0 {
		return shared.NewDomainError("WAREHOUSE_IN_USE", "Warehouse still has locations and cannot be deleted")
	}

	hasStock, err := s.stockRepo.HasNonZeroByWarehouse(ctx, id)
	if err != nil {
		return err
	}
	if hasStock {
		return shared.NewDomainError("WAREHOUSE_IN_USE", "Warehouse still has stock and cannot be deleted")
	}

	return s.warehouseRepo.Delete(ctx, id)
}
