package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormReceiptRepository implements ReceiptRepository using GORM
type GormReceiptRepository struct {
	db *gorm.DB
}

// NewGormReceiptRepository creates a new GormReceiptRepository
func NewGormReceiptRepository(db *gorm.DB) *GormReceiptRepository {
	return &GormReceiptRepository{db: db}
}

// FindByID finds a receipt with its items by ID
func (r *GormReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Receipt, error) {
	var receipt trade.Receipt
	if err := r.db.WithContext(ctx).Preload("Items").First(&receipt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindByNumber finds a receipt by its document number
func (r *GormReceiptRepository) FindByNumber(ctx context.Context, number string) (*trade.Receipt, error) {
	var receipt trade.Receipt
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("receipt_number = ?", number).
		First(&receipt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &receipt, nil
}

// FindAll finds receipts matching the filter
func (r *GormReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Receipt, error) {
	var receipts []trade.Receipt
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.Receipt{}), filter).Preload("Items")
	query = applyOrdering(query, filter, "created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&receipts).Error; err != nil {
		return nil, err
	}
	return receipts, nil
}

// Count counts receipts matching the filter
func (r *GormReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.Receipt{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the receipt and replaces its item lines with the ones on the
// aggregate
func (r *GormReceiptRepository) Save(ctx context.Context, receipt *trade.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRemovedItems(tx, &trade.ReceiptItem{}, "receipt_id", receipt.ID, itemIDs(receipt.Items)); err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(receipt).Error
	})
}

// Delete deletes a receipt together with its items
func (r *GormReceiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.ReceiptItem{}, "receipt_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.Receipt{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormReceiptRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number ILIKE ? OR supplier_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "warehouse_id":
			query = query.Where("warehouse_id = ?", value)
		}
	}

	return query
}

// Ensure GormReceiptRepository implements ReceiptRepository
var _ trade.ReceiptRepository = (*GormReceiptRepository)(nil)
