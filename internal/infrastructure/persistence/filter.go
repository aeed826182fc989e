package persistence

import (
	"strings"

	"github.com/stockmaster/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// allowedOrderColumns guards ORDER BY against injection: only plain
// column identifiers survive.
func safeOrderColumn(column string) bool {
	for _, r := range column {
		if r >= 'a' && r <= 'z' || r == '_' || r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return column != ""
}

// applyOrdering applies the filter's ordering, falling back to the given
// default clause
func applyOrdering(query *gorm.DB, filter shared.Filter, defaultOrder string) *gorm.DB {
	if filter.OrderBy != "" && safeOrderColumn(filter.OrderBy) {
		dir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			dir = "DESC"
		}
		return query.Order(filter.OrderBy + " " + dir)
	}
	if defaultOrder != "" {
		return query.Order(defaultOrder)
	}
	return query
}

// applyPagination applies offset and limit. A non-positive page size means
// no pagination, which the CSV export relies on.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}
