package analytics

import (
	"errors"
	"testing"

	"github.com/rpattn/infraboard/internal/domain"
)

// crossTabView builds a view whose locations produce row totals
// [3,1,4,1,5] in first-appearance order L1..L5.
func crossTabView(t *testing.T) domain.Table {
	t.Helper()
	var view domain.Table
	counts := map[string]int{"L1": 3, "L2": 1, "L3": 4, "L4": 1, "L5": 5}
	for _, location := range []string{"L1", "L2", "L3", "L4", "L5"} {
		for i := 0; i < counts[location]; i++ {
			resource := "High"
			if i%2 == 1 {
				resource = "Low"
			}
			view = append(view, domain.Project{Location: location, ResourceManagement: resource})
		}
	}
	return view
}

func TestComputeCrossTabRowTotalsAndOrder(t *testing.T) {
	view := crossTabView(t)

	crossTab, err := ComputeCrossTab(view, domain.ColumnLocation, domain.ColumnResourceManagement)
	if err != nil {
		t.Fatalf("ComputeCrossTab returned error: %v", err)
	}

	wantTotals := []int{5, 4, 3, 1, 1}
	if len(crossTab.Rows) != len(wantTotals) {
		t.Fatalf("expected %d rows, got %d", len(wantTotals), len(crossTab.Rows))
	}
	for i, want := range wantTotals {
		if crossTab.Rows[i].Total != want {
			t.Fatalf("row %d total = %d, want %d", i, crossTab.Rows[i].Total, want)
		}
	}

	// Equal totals keep first-appearance order: L2 before L4.
	if crossTab.Rows[3].Label != "L2" || crossTab.Rows[4].Label != "L4" {
		t.Fatalf("tie order broken: got %s then %s, want L2 then L4",
			crossTab.Rows[3].Label, crossTab.Rows[4].Label)
	}
}

func TestComputeCrossTabTotalsMatchRowSumsAndViewSize(t *testing.T) {
	view := crossTabView(t)

	crossTab, err := ComputeCrossTab(view, domain.ColumnLocation, domain.ColumnResourceManagement)
	if err != nil {
		t.Fatalf("ComputeCrossTab returned error: %v", err)
	}

	grandTotal := 0
	for _, row := range crossTab.Rows {
		rowSum := 0
		for _, count := range row.Counts {
			rowSum += count
		}
		if rowSum != row.Total {
			t.Fatalf("row %s: counts sum to %d, total says %d", row.Label, rowSum, row.Total)
		}
		grandTotal += row.Total
	}
	if grandTotal != len(view) {
		t.Fatalf("grand total = %d, want view size %d", grandTotal, len(view))
	}
}

func TestComputeCrossTabZeroFillsAbsentCombinations(t *testing.T) {
	view := domain.Table{
		{Location: "A", Logistics: "High"},
		{Location: "B", Logistics: "Low"},
	}

	crossTab, err := ComputeCrossTab(view, domain.ColumnLocation, domain.ColumnLogistics)
	if err != nil {
		t.Fatalf("ComputeCrossTab returned error: %v", err)
	}

	for _, row := range crossTab.Rows {
		for _, category := range crossTab.Categories {
			if _, ok := row.Counts[category]; !ok {
				t.Fatalf("row %s missing zero-filled entry for %s", row.Label, category)
			}
		}
	}

	var rowA CrossTabRow
	for _, row := range crossTab.Rows {
		if row.Label == "A" {
			rowA = row
		}
	}
	if rowA.Counts["Low"] != 0 {
		t.Fatalf("absent combination must report 0, got %d", rowA.Counts["Low"])
	}
}

func TestComputeCrossTabMissingCategories(t *testing.T) {
	view := domain.Table{
		{Location: "A", WorkForce: ""},
		{Location: "A", WorkForce: "High"},
	}

	crossTab, err := ComputeCrossTab(view, domain.ColumnLocation, domain.ColumnWorkForce)
	if err != nil {
		t.Fatalf("ComputeCrossTab returned error: %v", err)
	}

	if len(crossTab.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(crossTab.Rows))
	}
	if crossTab.Rows[0].Total != 2 {
		t.Fatalf("missing categorical values must still be counted, total = %d", crossTab.Rows[0].Total)
	}
	if crossTab.Rows[0].Counts[domain.MissingCategory] != 1 {
		t.Fatalf("expected 1 record in the missing bucket, got %d",
			crossTab.Rows[0].Counts[domain.MissingCategory])
	}
}

func TestComputeCrossTabEmptyView(t *testing.T) {
	crossTab, err := ComputeCrossTab(nil, domain.ColumnLocation, domain.ColumnLogistics)
	if err != nil {
		t.Fatalf("empty view must not fail: %v", err)
	}
	if len(crossTab.Rows) != 0 || len(crossTab.Categories) != 0 {
		t.Fatalf("expected zero-row matrix, got %+v", crossTab)
	}
}

func TestComputeCrossTabUnknownColumns(t *testing.T) {
	view := domain.Table{{Location: "A"}}

	if _, err := ComputeCrossTab(view, "bogus", domain.ColumnLogistics); !errors.Is(err, domain.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn for row column, got %v", err)
	}
	if _, err := ComputeCrossTab(view, domain.ColumnLocation, domain.ColumnTotalCost); !errors.Is(err, domain.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn for numeric column, got %v", err)
	}
}
