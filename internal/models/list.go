package models

// ListQuery carries the server-driven list parameters: a free-text search,
// exact-match filters, and the requested page window. Repositories translate
// it into ILIKE/equality predicates plus LIMIT/OFFSET.
type ListQuery struct {
	Search   string            `json:"search"`
	Filters  map[string]string `json:"filters,omitempty"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// Offset returns the SQL offset for the query's page window.
func (q ListQuery) Offset() int {
	if q.Page < 1 {
		return 0
	}
	return (q.Page - 1) * q.PageSize
}

// Filter returns the named filter value, or "" when the field is unset.
func (q ListQuery) Filter(field string) string {
	if q.Filters == nil {
		return ""
	}
	return q.Filters[field]
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// NewPagination derives the response window from a query and the filtered
// total. An empty result still reports one page so pagers have something to
// render against.
func NewPagination(q ListQuery, total int) Pagination {
	pages := 1
	if q.PageSize > 0 {
		pages = (total + q.PageSize - 1) / q.PageSize
		if pages < 1 {
			pages = 1
		}
	}
	return Pagination{
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}
