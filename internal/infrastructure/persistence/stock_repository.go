package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockRepository implements StockRepository using GORM
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

// FindByID finds a stock record by its ID
func (r *GormStockRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	if err := r.db.WithContext(ctx).First(&stock, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByKey finds the stock record at the (product, warehouse, location) triple
func (r *GormStockRepository) FindByKey(ctx context.Context, productID, warehouseID, locationID uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	if err := r.db.WithContext(ctx).
		Where("product_id = ? AND warehouse_id = ? AND location_id = ?", productID, warehouseID, locationID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindByKeyForUpdate locks the stock row with SELECT FOR UPDATE so concurrent
// workflow completions serialize on the same record
func (r *GormStockRepository) FindByKeyForUpdate(ctx context.Context, productID, warehouseID, locationID uuid.UUID) (*inventory.Stock, error) {
	var stock inventory.Stock
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND warehouse_id = ? AND location_id = ?", productID, warehouseID, locationID).
		First(&stock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &stock, nil
}

// FindAll finds all stock records matching the filter
func (r *GormStockRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Stock, error) {
	var stocks []inventory.Stock
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.Stock{}), filter)
	query = applyOrdering(query, filter, "created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&stocks).Error; err != nil {
		return nil, err
	}
	return stocks, nil
}

// Count counts stock records matching the filter
func (r *GormStockRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.Stock{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a stock record
func (r *GormStockRepository) Save(ctx context.Context, stock *inventory.Stock) error {
	return r.db.WithContext(ctx).Save(stock).Error
}

// Upsert inserts the stock record or updates the quantity columns of the
// existing row at the same key triple
func (r *GormStockRepository) Upsert(ctx context.Context, stock *inventory.Stock) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "product_id"},
				{Name: "warehouse_id"},
				{Name: "location_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"quantity", "reserved_quantity", "available_quantity", "updated_at",
			}),
		}).
		Create(stock).Error
}

// Delete deletes a stock record
func (r *GormStockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Stock{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Summary aggregates quantities, optionally scoped to one warehouse. The
// total value weighs each stock line with the product cost price.
func (r *GormStockRepository) Summary(ctx context.Context, warehouseID *uuid.UUID) (*inventory.StockSummary, error) {
	var summary inventory.StockSummary
	query := r.db.WithContext(ctx).
		Model(&inventory.Stock{}).
		Select(`COUNT(DISTINCT stocks.product_id) AS product_count,
			COALESCE(SUM(stocks.quantity), 0) AS total_quantity,
			COALESCE(SUM(stocks.reserved_quantity), 0) AS total_reserved,
			COALESCE(SUM(stocks.available_quantity), 0) AS total_available,
			COALESCE(SUM(stocks.quantity * products.cost_price), 0) AS total_value`).
		Joins("JOIN products ON products.id = stocks.product_id")
	if warehouseID != nil {
		query = query.Where("stocks.warehouse_id = ?", *warehouseID)
	}

	if err := query.Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// LowStock lists products whose total available quantity across all
// locations has fallen to or below their reorder point
func (r *GormStockRepository) LowStock(ctx context.Context) ([]inventory.LowStockProduct, error) {
	var results []inventory.LowStockProduct
	err := r.db.WithContext(ctx).
		Model(&inventory.Stock{}).
		Select(`products.id AS product_id,
			products.sku AS sku,
			products.name AS name,
			COALESCE(SUM(stocks.available_quantity), 0) AS total_available,
			products.reorder_point AS reorder_point,
			products.reorder_quantity AS reorder_quantity`).
		Joins("JOIN products ON products.id = stocks.product_id").
		Where("products.reorder_point > 0").
		Group("products.id, products.sku, products.name, products.reorder_point, products.reorder_quantity").
		Having("COALESCE(SUM(stocks.available_quantity), 0) <= products.reorder_point").
		Order("products.sku ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// HasNonZeroByProduct reports whether the product holds stock anywhere
func (r *GormStockRepository) HasNonZeroByProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	return r.hasNonZero(ctx, "product_id = ?", productID)
}

// HasNonZeroByWarehouse reports whether the warehouse holds any stock
func (r *GormStockRepository) HasNonZeroByWarehouse(ctx context.Context, warehouseID uuid.UUID) (bool, error) {
	return r.hasNonZero(ctx, "warehouse_id = ?", warehouseID)
}

// HasNonZeroByLocation reports whether the location holds any stock
func (r *GormStockRepository) HasNonZeroByLocation(ctx context.Context, locationID uuid.UUID) (bool, error) {
	return r.hasNonZero(ctx, "location_id = ?", locationID)
}

func (r *GormStockRepository) hasNonZero(ctx context.Context, condition string, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&inventory.Stock{}).
		Where(condition, id).
		Where("quantity <> 0 OR reserved_quantity <> 0").
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormStockRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			query = query.Where("product_id = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		case "location_id":
			query = query.Where("location_id = ?", value)
		}
	}
	return query
}

// Ensure GormStockRepository implements StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
