// Package listview implements the console's list-controller pattern: a fixed
// record set narrowed by a search string and exact-match filters, then sliced
// into fixed-size pages. Controller works over in-memory records; Remote
// drives a server-backed list with the same state transitions.
package listview

import (
	"strings"
)

// Config configures a Controller instance.
type Config[T any] struct {
	// PageSize is fixed for the controller's lifetime. Each page picks its
	// own size; there is no shared default.
	PageSize int

	// SearchFields returns the designated text fields a search query is
	// matched against. A nil func disables search (every record matches).
	SearchFields func(T) []string

	// FilterField returns the record's value for a named filter field.
	// A nil func disables filtering.
	FilterField func(T, string) string
}

// Controller derives a paged, filtered view over an in-memory record set.
// Derived outputs are recomputed on every read, so a state change is never
// observed torn.
type Controller[T any] struct {
	records []T
	cfg     Config[T]

	search  string
	filters map[string]string
	page    int
}

// New creates a Controller over records. Panics if PageSize < 1; the page
// size is a per-instance compile-time choice, not user input.
func New[T any](records []T, cfg Config[T]) *Controller[T] {
	if cfg.PageSize < 1 {
		panic("listview: page size must be at least 1")
	}
	return &Controller[T]{
		records: records,
		cfg:     cfg,
		filters: make(map[string]string),
		page:    1,
	}
}

// ApplySearch sets the search query and resets the current page to 1.
// Matching is case-insensitive substring containment against the designated
// search fields; an empty query matches every record.
func (c *Controller[T]) ApplySearch(query string) {
	c.search = query
	c.page = 1
}

// ApplyFilter merges the given fields into the filter state and resets the
// current page to 1. Fields absent from partial are left unchanged; a field
// set to "" clears that constraint. Non-empty fields are exact-match ANDed
// with the search predicate.
func (c *Controller[T]) ApplyFilter(partial map[string]string) {
	for field, value := range partial {
		if value == "" {
			delete(c.filters, field)
			continue
		}
		c.filters[field] = value
	}
	c.page = 1
}

// GoToPage sets the current page without bounds-checking. Out-of-range pages
// yield an empty VisibleRecords slice; disabling invalid targets is the
// presentation layer's job. Filters are not reset.
func (c *Controller[T]) GoToPage(n int) {
	c.page = n
}

// Page returns the current page number.
func (c *Controller[T]) Page() int {
	return c.page
}

// PageSize returns the fixed page size.
func (c *Controller[T]) PageSize() int {
	return c.cfg.PageSize
}

// FilteredCount returns the number of records matching the active predicates.
func (c *Controller[T]) FilteredCount() int {
	return len(c.filtered())
}

// TotalPages returns max(1, ceil(FilteredCount/PageSize)). Zero matches still
// report one page so pagers and empty states have something to render.
func (c *Controller[T]) TotalPages() int {
	pages := (c.FilteredCount() + c.cfg.PageSize - 1) / c.cfg.PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// VisibleRecords returns the current page's slice of the filtered set, in the
// filtered set's original relative order. No sorting is applied.
func (c *Controller[T]) VisibleRecords() []T {
	filtered := c.filtered()

	start := (c.page - 1) * c.cfg.PageSize
	if start < 0 || start >= len(filtered) {
		return []T{}
	}

	end := start + c.cfg.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// filtered applies search + filters in a single stable pass.
func (c *Controller[T]) filtered() []T {
	out := make([]T, 0, len(c.records))
	for _, rec := range c.records {
		if c.matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (c *Controller[T]) matches(rec T) bool {
	if c.search != "" && c.cfg.SearchFields != nil {
		query := strings.ToLower(c.search)
		found := false
		for _, field := range c.cfg.SearchFields(rec) {
			if strings.Contains(strings.ToLower(field), query) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.cfg.FilterField != nil {
		for field, want := range c.filters {
			if c.cfg.FilterField(rec, field) != want {
				return false
			}
		}
	}
	return true
}
