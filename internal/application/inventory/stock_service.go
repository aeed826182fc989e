package inventory

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/catalog"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/warehouse"
)

// StockService handles stock queries, the administrative override and the
// movement ledger listing.
type StockService struct {
	stockRepo     inventory.StockRepository
	ledgerRepo    inventory.LedgerRepository
	productRepo   catalog.ProductRepository
	warehouseRepo warehouse.WarehouseRepository
	locationRepo  warehouse.LocationRepository
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockRepository,
	ledgerRepo inventory.LedgerRepository,
	productRepo catalog.ProductRepository,
	warehouseRepo warehouse.WarehouseRepository,
	locationRepo warehouse.LocationRepository,
) *StockService {
	return &StockService{
		stockRepo:     stockRepo,
		ledgerRepo:    ledgerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
	}
}

// List returns stock records matching the filter with the total count
func (s *StockService) List(ctx context.Context, filter StockListFilter) ([]StockResponse, int64, error) {
	domainFilter := toStockDomainFilter(filter)

	stocks, err := s.stockRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stockRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockResponse, 0, len(stocks))
	for i := range stocks {
		responses = append(responses, ToStockResponse(&stocks[i]))
	}
	return responses, total, nil
}

// GetByKey returns the stock record at a (product, warehouse, location) triple
func (s *StockService) GetByKey(ctx context.Context, productID, warehouseID, locationID uuid.UUID) (*StockResponse, error) {
	stock, err := s.stockRepo.FindByKey(ctx, productID, warehouseID, locationID)
	if err != nil {
		return nil, err
	}
	response := ToStockResponse(stock)
	return &response, nil
}

// Override creates or updates a stock record with absolute quantity values.
// It validates that the referenced product, warehouse and location exist and
// that the location belongs to the warehouse. No ledger entry is written;
// this is the administrative correction path outside the document workflows.
func (s *StockService) Override(ctx context.Context, req OverrideStockRequest) (*StockResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, req.ProductID); err != nil {
		return nil, err
	}
	if _, err := s.warehouseRepo.FindByID(ctx, req.WarehouseID); err != nil {
		return nil, err
	}
	location, err := s.locationRepo.FindByID(ctx, req.LocationID)
	if err != nil {
		return nil, err
	}
	if !location.BelongsTo(req.WarehouseID) {
		return nil, shared.NewDomainError("LOCATION_MISMATCH", "Location does not belong to the given warehouse")
	}

	stock, err := s.stockRepo.FindByKey(ctx, req.ProductID, req.WarehouseID, req.LocationID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		stock, err = inventory.NewStock(req.ProductID, req.WarehouseID, req.LocationID)
		if err != nil {
			return nil, err
		}
	}

	if req.Quantity != nil {
		if err := stock.SetQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.ReservedQuantity != nil {
		if err := stock.SetReserved(*req.ReservedQuantity); err != nil {
			return nil, err
		}
	}

	if err := s.stockRepo.Upsert(ctx, stock); err != nil {
		return nil, err
	}

	response := ToStockResponse(stock)
	return &response, nil
}

// Summary returns aggregated stock figures, scoped to one warehouse when
// warehouseID is non-nil
func (s *StockService) Summary(ctx context.Context, warehouseID *uuid.UUID) (*StockSummaryResponse, error) {
	if warehouseID != nil {
		if _, err := s.warehouseRepo.FindByID(ctx, *warehouseID); err != nil {
			return nil, err
		}
	}

	summary, err := s.stockRepo.Summary(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	return &StockSummaryResponse{
		ProductCount:   summary.ProductCount,
		TotalQuantity:  summary.TotalQuantity,
		TotalReserved:  summary.TotalReserved,
		TotalAvailable: summary.TotalAvailable,
		TotalValue:     summary.TotalValue,
	}, nil
}

// LowStock returns products whose total available quantity is at or below
// their reorder point
func (s *StockService) LowStock(ctx context.Context) ([]LowStockResponse, error) {
	products, err := s.stockRepo.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]LowStockResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, LowStockResponse{
			ProductID:       p.ProductID,
			SKU:             p.SKU,
			Name:            p.Name,
			TotalAvailable:  p.TotalAvailable,
			ReorderPoint:    p.ReorderPoint,
			ReorderQuantity: p.ReorderQuantity,
		})
	}
	return responses, nil
}

// ListLedger returns ledger entries matching the filter with the total count
func (s *StockService) ListLedger(ctx context.Context, filter LedgerListFilter) ([]LedgerEntryResponse, int64, error) {
	domainFilter := toLedgerDomainFilter(filter)

	entries, err := s.ledgerRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ledgerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]LedgerEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToLedgerEntryResponse(&entries[i]))
	}
	return responses, total, nil
}

// ExportStockCSV renders the stock records matching the filter as a CSV
// file with resolved product, warehouse and location names. The output is
// UTF-8 with a BOM and semicolon-delimited so spreadsheet tools open it
// without an import dialog.
func (s *StockService) ExportStockCSV(ctx context.Context, filter StockListFilter) ([]byte, error) {
	domainFilter := toStockDomainFilter(filter)
	domainFilter.Page = 0
	domainFilter.PageSize = 0 // no pagination for exports

	stocks, err := s.stockRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	products, warehouses, locations, err := s.resolveStockNames(ctx, stocks)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF}) // UTF-8 BOM for spreadsheet tools
	w := csv.NewWriter(&buf)
	w.Comma = ';'

	header := []string{"SKU", "Product", "Warehouse", "Location", "Quantity", "Reserved", "Available"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for i := range stocks {
		st := &stocks[i]
		var sku, productName string
		if p, ok := products[st.ProductID]; ok {
			sku = p.SKU
			productName = p.Name
		}
		var warehouseName string
		if wh, ok := warehouses[st.WarehouseID]; ok {
			warehouseName = wh.Name
		}
		var locationCode string
		if loc, ok := locations[st.LocationID]; ok {
			locationCode = loc.Code
		}

		record := []string{
			sku,
			productName,
			warehouseName,
			locationCode,
			st.Quantity.String(),
			st.ReservedQuantity.String(),
			st.AvailableQuantity.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *StockService) resolveStockNames(ctx context.Context, stocks []inventory.Stock) (
	map[uuid.UUID]catalog.Product,
	map[uuid.UUID]warehouse.Warehouse,
	map[uuid.UUID]warehouse.Location,
	error,
) {
	productIDs := make([]uuid.UUID, 0, len(stocks))
	warehouseIDs := make([]uuid.UUID, 0, len(stocks))
	locationIDs := make([]uuid.UUID, 0, len(stocks))
	seenProducts := make(map[uuid.UUID]bool)
	seenWarehouses := make(map[uuid.UUID]bool)
	seenLocations := make(map[uuid.UUID]bool)
	for i := range stocks {
		if !seenProducts[stocks[i].ProductID] {
			seenProducts[stocks[i].ProductID] = true
			productIDs = append(productIDs, stocks[i].ProductID)
		}
		if !seenWarehouses[stocks[i].WarehouseID] {
			seenWarehouses[stocks[i].WarehouseID] = true
			warehouseIDs = append(warehouseIDs, stocks[i].WarehouseID)
		}
		if !seenLocations[stocks[i].LocationID] {
			seenLocations[stocks[i].LocationID] = true
			locationIDs = append(locationIDs, stocks[i].LocationID)
		}
	}

	products := make(map[uuid.UUID]catalog.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		for i := range found {
			products[found[i].ID] = found[i]
		}
	}

	warehouses := make(map[uuid.UUID]warehouse.Warehouse, len(warehouseIDs))
	if len(warehouseIDs) > 0 {
		found, err := s.warehouseRepo.FindByIDs(ctx, warehouseIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		for i := range found {
			warehouses[found[i].ID] = found[i]
		}
	}

	locations := make(map[uuid.UUID]warehouse.Location, len(locationIDs))
	if len(locationIDs) > 0 {
		found, err := s.locationRepo.FindByIDs(ctx, locationIDs)
		if err != nil {
			return nil, nil, nil, err
		}
		for i := range found {
			locations[found[i].ID] = found[i]
		}
	}

	return products, warehouses, locations, nil
}

func toStockDomainFilter(filter StockListFilter) shared.Filter {
	domainFilter := shared.NewFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.ProductID != nil {
		domainFilter = domainFilter.WithFilter("product_id", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		domainFilter = domainFilter.WithFilter("warehouse_id", *filter.WarehouseID)
	}
	if filter.LocationID != nil {
		domainFilter = domainFilter.WithFilter("location_id", *filter.LocationID)
	}
	return domainFilter
}

func toLedgerDomainFilter(filter LedgerListFilter) inventory.LedgerFilter {
	domainFilter := inventory.LedgerFilter{Filter: shared.NewFilter()}
	domainFilter.OrderBy = "timestamp"
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	domainFilter.ProductID = filter.ProductID
	domainFilter.WarehouseID = filter.WarehouseID
	if filter.TransactionType != nil {
		txType := inventory.TransactionType(*filter.TransactionType)
		domainFilter.TransactionType = &txType
	}
	domainFilter.From = filter.From
	domainFilter.To = filter.To
	return domainFilter
}
