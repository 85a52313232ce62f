package listview

import (
	"context"
	"sync"
)

// Query carries the list state sent to a server-driven data source.
type Query struct {
	Search   string
	Filters  map[string]string
	Page     int
	PageSize int
}

// Result is one page returned by a server-driven data source.
type Result[T any] struct {
	Items      []T
	TotalItems int
	TotalPages int
}

// Fetcher loads one page for a query. It is called from a goroutine per
// trigger; implementations must be safe for concurrent calls.
type Fetcher[T any] func(ctx context.Context, q Query) (Result[T], error)

// Snapshot is a consistent view of a Remote controller's state. While a
// fetch is in flight Loading is true and Records is empty: stale results are
// never shown alongside a pending reload.
type Snapshot[T any] struct {
	Records    []T
	TotalItems int
	TotalPages int
	Page       int
	Loading    bool
	Err        error
}

// Remote drives a server-backed list with the same transitions as
// Controller. Every trigger is tagged with a monotonically increasing
// sequence; a response carrying a stale sequence is discarded, so concurrent
// triggers cannot interleave into a torn view. In-flight fetches are not
// cancelled; after Close their responses are dropped.
type Remote[T any] struct {
	fetch    Fetcher[T]
	pageSize int

	mu      sync.Mutex
	seq     uint64 // latest issued trigger
	applied uint64 // latest trigger whose response landed
	closed  bool

	search  string
	filters map[string]string
	page    int

	items      []T
	totalItems int
	totalPages int
	err        error
}

// NewRemote creates a Remote controller. Panics if pageSize < 1.
func NewRemote[T any](fetch Fetcher[T], pageSize int) *Remote[T] {
	if pageSize < 1 {
		panic("listview: page size must be at least 1")
	}
	return &Remote[T]{
		fetch:    fetch,
		pageSize: pageSize,
		filters:  make(map[string]string),
		page:     1,
	}
}

// ApplySearch sets the search query, resets the page to 1, and triggers a
// fetch.
func (r *Remote[T]) ApplySearch(ctx context.Context, query string) {
	r.mu.Lock()
	r.search = query
	r.page = 1
	r.trigger(ctx)
	r.mu.Unlock()
}

// ApplyFilter merges the given fields into the filter state, resets the page
// to 1, and triggers a fetch. A field set to "" clears that constraint.
func (r *Remote[T]) ApplyFilter(ctx context.Context, partial map[string]string) {
	r.mu.Lock()
	for field, value := range partial {
		if value == "" {
			delete(r.filters, field)
			continue
		}
		r.filters[field] = value
	}
	r.page = 1
	r.trigger(ctx)
	r.mu.Unlock()
}

// GoToPage sets the current page without bounds-checking and triggers a
// fetch. Filters are not reset.
func (r *Remote[T]) GoToPage(ctx context.Context, n int) {
	r.mu.Lock()
	r.page = n
	r.trigger(ctx)
	r.mu.Unlock()
}

// Refresh re-issues the current query. This is the manual retry path after a
// fetch error; there is no automatic retry.
func (r *Remote[T]) Refresh(ctx context.Context) {
	r.mu.Lock()
	r.trigger(ctx)
	r.mu.Unlock()
}

// Close drops any responses still in flight. It does not cancel them.
func (r *Remote[T]) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}

// Snapshot returns the controller's current view.
func (r *Remote[T]) Snapshot() Snapshot[T] {
	r.mu.Lock()
	defer r.mu.Unlock()

	loading := r.applied != r.seq
	snap := Snapshot[T]{
		Page:    r.page,
		Loading: loading,
		Err:     r.err,
	}
	if !loading {
		snap.Records = r.items
		snap.TotalItems = r.totalItems
		snap.TotalPages = r.totalPages
	}
	return snap
}

// trigger issues a fetch for the current state. Caller must hold r.mu.
func (r *Remote[T]) trigger(ctx context.Context) {
	if r.closed {
		return
	}

	r.seq++
	seq := r.seq
	r.err = nil

	q := Query{
		Search:   r.search,
		Filters:  copyFilters(r.filters),
		Page:     r.page,
		PageSize: r.pageSize,
	}

	go r.run(ctx, seq, q)
}

func (r *Remote[T]) run(ctx context.Context, seq uint64, q Query) {
	result, err := r.fetch(ctx, q)

	r.mu.Lock()
	defer r.mu.Unlock()

	// Last-issued wins: drop responses for superseded triggers and anything
	// arriving after Close.
	if r.closed || seq != r.seq {
		return
	}

	r.applied = seq
	if err != nil {
		r.err = err
		return
	}

	r.items = result.Items
	r.totalItems = result.TotalItems
	r.totalPages = result.TotalPages
	if r.totalPages < 1 {
		r.totalPages = 1
	}
}

func copyFilters(filters map[string]string) map[string]string {
	out := make(map[string]string, len(filters))
	for k, v := range filters {
		out[k] = v
	}
	return out
}
