package persistence

import (
	"github.com/google/uuid"
	"github.com/stockmaster/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// itemIDs collects the IDs of the item lines currently on a document
// aggregate
func itemIDs[T any, PT interface {
	*T
	shared.Entity
}](items []T) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for i := range items {
		ids = append(ids, PT(&items[i]).GetID())
	}
	return ids
}

// deleteRemovedItems removes item rows of the parent document that are no
// longer present on the aggregate. Documents replace their item lines
// wholesale on update.
func deleteRemovedItems(tx *gorm.DB, model any, parentColumn string, parentID uuid.UUID, keep []uuid.UUID) error {
	query := tx.Where(parentColumn+" = ?", parentID)
	if len(keep) > 0 {
		query = query.Where("id NOT IN ?", keep)
	}
	return query.Delete(model).Error
}
