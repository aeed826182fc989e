package shared

import "context"

// Filter holds common listing options: pagination, ordering, search and
// per-repository equality filters.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]any
}

// NewFilter returns a filter with sane pagination defaults
func NewFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
}

// Offset returns the row offset for the current page
func (f Filter) Offset() int {
	if f.Page <= 0 || f.PageSize <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// WithFilter adds an equality filter and returns the filter for chaining
func (f Filter) WithFilter(key string, value any) Filter {
	if f.Filters == nil {
		f.Filters = make(map[string]any)
	}
	f.Filters[key] = value
	return f
}

// DocumentNumberGenerator issues human-readable document numbers of the form
// {prefix}{YYYYMM}{NNNN}. Implementations must be safe under concurrent use:
// two concurrent calls for the same prefix and month never return the same
// number.
type DocumentNumberGenerator interface {
	Next(ctx context.Context, prefix string) (string, error)
}
