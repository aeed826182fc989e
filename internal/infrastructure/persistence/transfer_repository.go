package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/inventory"
	"github.com/stockmaster/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormTransferRepository implements TransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID finds a transfer with its items by ID
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InternalTransfer, error) {
	var transfer inventory.InternalTransfer
	if err := r.db.WithContext(ctx).Preload("Items").First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &transfer, nil
}

// FindAll finds transfers matching the filter
func (r *GormTransferRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InternalTransfer, error) {
	var transfers []inventory.InternalTransfer
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.InternalTransfer{}), filter).Preload("Items")
	query = applyOrdering(query, filter, "created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Count counts transfers matching the filter
func (r *GormTransferRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&inventory.InternalTransfer{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the transfer and replaces its item lines with the ones on
// the aggregate
func (r *GormTransferRepository) Save(ctx context.Context, transfer *inventory.InternalTransfer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRemovedItems(tx, &inventory.TransferItem{}, "transfer_id", transfer.ID, itemIDs(transfer.Items)); err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(transfer).Error
	})
}

// Delete deletes a transfer together with its items
func (r *GormTransferRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&inventory.TransferItem{}, "transfer_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&inventory.InternalTransfer{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormTransferRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("transfer_number ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source_warehouse_id":
			query = query.Where("source_warehouse_id = ?", value)
		case "destination_warehouse_id":
			query = query.Where("destination_warehouse_id = ?", value)
		}
	}

	return query
}

// Ensure GormTransferRepository implements TransferRepository
var _ inventory.TransferRepository = (*GormTransferRepository)(nil)
