package analytics

import (
	"errors"
	"testing"

	"github.com/rpattn/infraboard/internal/domain"
)

// sampleTable mirrors the five-record worked example: locations {A,A,B,B,C},
// statuses {Done,Done,Pending,Done,Pending}, costs {10,20,30,5,15}.
func sampleTable() domain.Table {
	return domain.Table{
		{SequenceNumber: 1, Name: "P1", Location: "A", Status: "Done", Sector: "Roads", Year: "2020", TotalCost: 10},
		{SequenceNumber: 2, Name: "P2", Location: "A", Status: "Done", Sector: "Roads", Year: "2021", TotalCost: 20},
		{SequenceNumber: 3, Name: "P3", Location: "B", Status: "Pending", Sector: "Roads", Year: "2020", TotalCost: 30},
		{SequenceNumber: 4, Name: "P4", Location: "B", Status: "Done", Sector: "Roads", Year: "2022", TotalCost: 5},
		{SequenceNumber: 5, Name: "P5", Location: "C", Status: "Pending", Sector: "Roads", Year: "2021", TotalCost: 15},
	}
}

func TestApplyFiltersAllPredicatesInactiveIsIdentity(t *testing.T) {
	table := sampleTable()
	filter := domain.Filter{}.
		WithPredicate(domain.ColumnLocation, domain.MatchAll).
		WithPredicate(domain.ColumnStatus, domain.MatchAll)

	view, err := ApplyFilters(table, filter)
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}
	if len(view) != len(table) {
		t.Fatalf("expected identity view of %d records, got %d", len(table), len(view))
	}
	for i := range table {
		if view[i] != table[i] {
			t.Fatalf("record %d differs from input", i)
		}
	}
}

func TestApplyFiltersConjunctionPreservesOrder(t *testing.T) {
	view, err := ApplyFilters(sampleTable(), domain.Filter{}.WithPredicate(domain.ColumnStatus, "Done"))
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}

	if len(view) != 3 {
		t.Fatalf("expected 3 records, got %d", len(view))
	}
	wantNames := []string{"P1", "P2", "P4"}
	for i, want := range wantNames {
		if view[i].Name != want {
			t.Fatalf("record %d = %s, want %s (original order must be retained)", i, view[i].Name, want)
		}
	}

	narrower := domain.Filter{}.
		WithPredicate(domain.ColumnStatus, "Done").
		WithPredicate(domain.ColumnLocation, "B")
	view, err = ApplyFilters(sampleTable(), narrower)
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}
	if len(view) != 1 || view[0].Name != "P4" {
		t.Fatalf("expected single record P4, got %+v", view)
	}
}

func TestApplyFiltersNeverGrowsTheView(t *testing.T) {
	table := sampleTable()
	filters := []domain.Filter{
		{},
		domain.Filter{}.WithPredicate(domain.ColumnStatus, "Done"),
		domain.Filter{}.WithPredicate(domain.ColumnLocation, "A"),
		domain.Filter{}.WithPredicate(domain.ColumnYear, "2021"),
		domain.Filter{}.WithPredicate(domain.ColumnStatus, "nonexistent"),
	}

	for i, filter := range filters {
		view, err := ApplyFilters(table, filter)
		if err != nil {
			t.Fatalf("filter %d returned error: %v", i, err)
		}
		if len(view) > len(table) {
			t.Fatalf("filter %d produced %d records from %d", i, len(view), len(table))
		}
	}
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	table := sampleTable()
	view, err := ApplyFilters(table, domain.Filter{}.WithPredicate(domain.ColumnStatus, "Done"))
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}

	view[0].Name = "changed"

	if table[0].Name != "P1" {
		t.Fatalf("input table was mutated")
	}
}

func TestApplyFiltersUnknownColumn(t *testing.T) {
	_, err := ApplyFilters(sampleTable(), domain.Filter{}.WithPredicate("total_cost", "10"))
	if !errors.Is(err, domain.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	_, err = ApplyFilters(sampleTable(), domain.Filter{}.WithPredicate("no_such_column", "x"))
	if !errors.Is(err, domain.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}
}

func TestComputeMetricsWorkedExample(t *testing.T) {
	view, err := ApplyFilters(sampleTable(), domain.Filter{}.WithPredicate(domain.ColumnStatus, "Done"))
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}

	metrics := ComputeMetrics(view)
	if metrics.ProjectCount != 3 {
		t.Fatalf("ProjectCount = %d, want 3", metrics.ProjectCount)
	}
	if metrics.TotalCost != 35 {
		t.Fatalf("TotalCost = %v, want 35", metrics.TotalCost)
	}
	if metrics.SectorCount != 1 {
		t.Fatalf("SectorCount = %d, want 1", metrics.SectorCount)
	}
}

func TestComputeMetricsEmptyView(t *testing.T) {
	metrics := ComputeMetrics(nil)
	if metrics.ProjectCount != 0 || metrics.TotalCost != 0 || metrics.SectorCount != 0 {
		t.Fatalf("empty view must yield zero metrics, got %+v", metrics)
	}
}

func TestComputeMetricsCountsMissingSectorOnce(t *testing.T) {
	view := domain.Table{
		{Sector: "Roads"},
		{Sector: ""},
		{Sector: ""},
		{Sector: "Rail"},
	}

	metrics := ComputeMetrics(view)
	if metrics.SectorCount != 3 {
		t.Fatalf("SectorCount = %d, want 3 (Roads, Rail, missing)", metrics.SectorCount)
	}
}

func TestApplyFiltersNoMatchesYieldsEmptyViewNotError(t *testing.T) {
	view, err := ApplyFilters(sampleTable(), domain.Filter{}.WithPredicate(domain.ColumnLocation, "Nowhere"))
	if err != nil {
		t.Fatalf("ApplyFilters returned error: %v", err)
	}
	if len(view) != 0 {
		t.Fatalf("expected empty view, got %d records", len(view))
	}

	metrics := ComputeMetrics(view)
	if metrics.ProjectCount != 0 || metrics.TotalCost != 0 {
		t.Fatalf("degenerate view must produce zero metrics, got %+v", metrics)
	}
}
