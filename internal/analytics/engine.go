package analytics

import (
	"fmt"

	"github.com/rpattn/infraboard/internal/domain"
)

// ApplyFilters returns the subsequence of the table satisfying every active
// predicate. Original record order is retained and the input table is never
// mutated; callers always receive a fresh slice.
func ApplyFilters(table domain.Table, filter domain.Filter) (domain.Table, error) {
	for _, p := range filter.Active() {
		if !domain.IsCategorical(p.Column) {
			return nil, fmt.Errorf("filter predicate: %w: %s", domain.ErrUnknownColumn, p.Column)
		}
	}

	if filter.IsEmpty() {
		view := make(domain.Table, len(table))
		copy(view, table)
		return view, nil
	}

	view := make(domain.Table, 0, len(table))
	for _, project := range table {
		ok, err := filter.Matches(project)
		if err != nil {
			return nil, err
		}
		if ok {
			view = append(view, project)
		}
	}
	return view, nil
}

// Metrics are the scalar summary figures for a filtered view.
type Metrics struct {
	ProjectCount int     `json:"project_count"`
	TotalCost    float64 `json:"total_cost"`
	SectorCount  int     `json:"sector_count"`
}

// ComputeMetrics derives the scalar metrics for a view. Missing project
// costs were already coerced to zero at load time, so the sum is total over
// all records. An empty view yields zero-valued metrics, not an error.
func ComputeMetrics(view domain.Table) Metrics {
	metrics := Metrics{ProjectCount: len(view)}

	sectors := make(map[string]struct{})
	for _, project := range view {
		metrics.TotalCost += project.TotalCost
		sectors[categoryLabel(project.Sector)] = struct{}{}
	}
	metrics.SectorCount = len(sectors)
	return metrics
}

// categoryLabel maps an absent categorical value to the explicit missing
// bucket so no record silently drops out of an aggregation.
func categoryLabel(value string) string {
	if value == "" {
		return domain.MissingCategory
	}
	return value
}
