package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/shared"
	"github.com/stockmaster/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormDeliveryOrderRepository implements DeliveryOrderRepository using GORM
type GormDeliveryOrderRepository struct {
	db *gorm.DB
}

// NewGormDeliveryOrderRepository creates a new GormDeliveryOrderRepository
func NewGormDeliveryOrderRepository(db *gorm.DB) *GormDeliveryOrderRepository {
	return &GormDeliveryOrderRepository{db: db}
}

// FindByID finds a delivery order with its items by ID
func (r *GormDeliveryOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.DeliveryOrder, error) {
	var order trade.DeliveryOrder
	if err := r.db.WithContext(ctx).Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindByNumber finds a delivery order by its document number
func (r *GormDeliveryOrderRepository) FindByNumber(ctx context.Context, number string) (*trade.DeliveryOrder, error) {
	var order trade.DeliveryOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_number = ?", number).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds delivery orders matching the filter
func (r *GormDeliveryOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]trade.DeliveryOrder, error) {
	var orders []trade.DeliveryOrder
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.DeliveryOrder{}), filter).Preload("Items")
	query = applyOrdering(query, filter, "created_at DESC")
	query = applyPagination(query, filter)

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts delivery orders matching the filter
func (r *GormDeliveryOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyConditions(r.db.WithContext(ctx).Model(&trade.DeliveryOrder{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save persists the order and replaces its item lines with the ones on the
// aggregate
func (r *GormDeliveryOrderRepository) Save(ctx context.Context, order *trade.DeliveryOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteRemovedItems(tx, &trade.DeliveryItem{}, "delivery_id", order.ID, itemIDs(order.Items)); err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(order).Error
	})
}

// Delete deletes a delivery order together with its items
func (r *GormDeliveryOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&trade.DeliveryItem{}, "delivery_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&trade.DeliveryOrder{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormDeliveryOrderRepository) applyConditions(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("delivery_number ILIKE ? OR customer_name ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormDeliveryOrderRepository implements DeliveryOrderRepository
var _ trade.DeliveryOrderRepository = (*GormDeliveryOrderRepository)(nil)
