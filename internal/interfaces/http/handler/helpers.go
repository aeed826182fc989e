package handler

// Pagination defaults mirrored from shared.NewFilter
const (
	defaultPage     = 1
	defaultPageSize = 20
)

func pageOrDefault(page int) int {
	if page <= 0 {
		return defaultPage
	}
	return page
}

func pageSizeOrDefault(pageSize int) int {
	if pageSize <= 0 {
		return defaultPageSize
	}
	return pageSize
}
