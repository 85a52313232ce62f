package listview_test

import (
	"fmt"
	"testing"

	"github.com/admin-console-api/pkg/listview"
)

type person struct {
	Name   string
	Email  string
	Status string
}

func personConfig(pageSize int) listview.Config[person] {
	return listview.Config[person]{
		PageSize:     pageSize,
		SearchFields: func(p person) []string { return []string{p.Name, p.Email} },
		FilterField: func(p person, field string) string {
			if field == "status" {
				return p.Status
			}
			return ""
		},
	}
}

func people(n int) []person {
	out := make([]person, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, person{
			Name:   fmt.Sprintf("Person %02d", i),
			Email:  fmt.Sprintf("person%02d@example.com", i),
			Status: "Active",
		})
	}
	return out
}

func TestElevenRecordsSplitAcrossTwoPages(t *testing.T) {
	ctrl := listview.New(people(11), personConfig(9))

	if got := ctrl.TotalPages(); got != 2 {
		t.Fatalf("TotalPages() = %d, want 2", got)
	}
	if got := len(ctrl.VisibleRecords()); got != 9 {
		t.Errorf("page 1 has %d records, want 9", got)
	}

	ctrl.GoToPage(2)
	if got := len(ctrl.VisibleRecords()); got != 2 {
		t.Errorf("page 2 has %d records, want 2", got)
	}
}

func TestPagesConcatenateToFilteredSet(t *testing.T) {
	records := people(23)
	ctrl := listview.New(records, personConfig(5))

	var seen []person
	for p := 1; p <= ctrl.TotalPages(); p++ {
		ctrl.GoToPage(p)
		seen = append(seen, ctrl.VisibleRecords()...)
	}

	if len(seen) != len(records) {
		t.Fatalf("concatenated pages have %d records, want %d", len(seen), len(records))
	}
	for i, p := range seen {
		if p != records[i] {
			t.Errorf("record %d = %v, want %v (order not stable)", i, p, records[i])
		}
	}
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	records := []person{
		{Name: "Priya Kumar", Email: "priya@example.com"},
		{Name: "PRIYANKA R", Email: "pr@example.com"},
		{Name: "Bob Smith", Email: "bob@example.com"},
	}
	ctrl := listview.New(records, personConfig(10))

	ctrl.ApplySearch("priya")
	if got := ctrl.FilteredCount(); got != 2 {
		t.Fatalf("FilteredCount() = %d, want 2", got)
	}

	// Match against any search field, not just the first
	ctrl.ApplySearch("bob@")
	if got := ctrl.FilteredCount(); got != 1 {
		t.Errorf("FilteredCount() = %d, want 1", got)
	}
}

func TestApplySearchIsIdempotent(t *testing.T) {
	ctrl := listview.New(people(30), personConfig(10))

	ctrl.ApplySearch("person 0")
	first := ctrl.VisibleRecords()
	ctrl.ApplySearch("person 0")
	second := ctrl.VisibleRecords()

	if len(first) != len(second) {
		t.Fatalf("repeated search changed results: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record %d differs after repeated search", i)
		}
	}
}

func TestFilterChangeResetsToFirstPage(t *testing.T) {
	ctrl := listview.New(people(50), personConfig(10))

	ctrl.GoToPage(3)
	if got := ctrl.Page(); got != 3 {
		t.Fatalf("Page() = %d, want 3", got)
	}

	ctrl.ApplyFilter(map[string]string{"status": "Active"})
	if got := ctrl.Page(); got != 1 {
		t.Errorf("Page() after filter = %d, want 1", got)
	}

	ctrl.GoToPage(4)
	ctrl.ApplySearch("person")
	if got := ctrl.Page(); got != 1 {
		t.Errorf("Page() after search = %d, want 1", got)
	}
}

func TestFiltersAreExactMatchAndConjunctive(t *testing.T) {
	records := []person{
		{Name: "A", Email: "a@x.com", Status: "Active"},
		{Name: "B", Email: "b@x.com", Status: "Inactive"},
		{Name: "AB", Email: "ab@x.com", Status: "Active"},
	}
	ctrl := listview.New(records, personConfig(10))

	ctrl.ApplyFilter(map[string]string{"status": "Active"})
	if got := ctrl.FilteredCount(); got != 2 {
		t.Fatalf("FilteredCount() = %d, want 2", got)
	}

	// Search ANDs with the filter
	ctrl.ApplySearch("ab")
	if got := ctrl.FilteredCount(); got != 1 {
		t.Errorf("FilteredCount() with search+filter = %d, want 1", got)
	}

	// Empty value clears the filter
	ctrl.ApplySearch("")
	ctrl.ApplyFilter(map[string]string{"status": ""})
	if got := ctrl.FilteredCount(); got != 3 {
		t.Errorf("FilteredCount() after clearing = %d, want 3", got)
	}
}

func TestZeroMatchesStillReportOnePage(t *testing.T) {
	ctrl := listview.New(people(20), personConfig(10))

	ctrl.ApplySearch("no such person")
	if got := ctrl.FilteredCount(); got != 0 {
		t.Fatalf("FilteredCount() = %d, want 0", got)
	}
	if got := ctrl.TotalPages(); got != 1 {
		t.Errorf("TotalPages() = %d, want 1", got)
	}
	if got := ctrl.VisibleRecords(); len(got) != 0 {
		t.Errorf("VisibleRecords() has %d records, want 0", len(got))
	}
}

func TestGoToPagePastEndShowsNothing(t *testing.T) {
	ctrl := listview.New(people(5), personConfig(10))

	// Navigation is not clamped; an out-of-range page is simply empty
	ctrl.GoToPage(7)
	if got := ctrl.Page(); got != 7 {
		t.Errorf("Page() = %d, want 7", got)
	}
	if got := ctrl.VisibleRecords(); len(got) != 0 {
		t.Errorf("VisibleRecords() has %d records, want 0", len(got))
	}
}

func TestEmptyRecordSet(t *testing.T) {
	ctrl := listview.New([]person{}, personConfig(10))

	if got := ctrl.TotalPages(); got != 1 {
		t.Errorf("TotalPages() = %d, want 1", got)
	}
	if got := ctrl.VisibleRecords(); got == nil || len(got) != 0 {
		t.Errorf("VisibleRecords() = %v, want empty non-nil slice", got)
	}
}

func TestNewPanicsOnInvalidPageSize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for page size 0")
		}
	}()
	listview.New([]person{}, personConfig(0))
}
