package persistence

import (
	"context"

	"github.com/stockmaster/backend/internal/domain/inventory"
	"gorm.io/gorm"
)

// GormLedgerRepository implements LedgerRepository using GORM. The ledger is
// append-only, no update or delete path exists.
type GormLedgerRepository struct {
	db *gorm.DB
}

// NewGormLedgerRepository creates a new GormLedgerRepository
func NewGormLedgerRepository(db *gorm.DB) *GormLedgerRepository {
	return &GormLedgerRepository{db: db}
}

// Append writes one or more ledger entries
func (r *GormLedgerRepository) Append(ctx context.Context, entries ...*inventory.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(entries).Error
}

// FindAll finds ledger entries matching the filter, newest first by default
func (r *GormLedgerRepository) FindAll(ctx context.Context, filter inventory.LedgerFilter) ([]inventory.LedgerEntry, error) {
	var entries []inventory.LedgerEntry
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.LedgerEntry{}), filter)
	query = applyOrdering(query, filter.Filter, "timestamp DESC")
	query = applyPagination(query, filter.Filter)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts ledger entries matching the filter
func (r *GormLedgerRepository) Count(ctx context.Context, filter inventory.LedgerFilter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.LedgerEntry{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormLedgerRepository) applyConditions(query *gorm.DB, filter inventory.LedgerFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *filter.WarehouseID)
	}
	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.From != nil {
		query = query.Where("timestamp >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("timestamp <= ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("reference ILIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Ensure GormLedgerRepository implements LedgerRepository
var _ inventory.LedgerRepository = (*GormLedgerRepository)(nil)
