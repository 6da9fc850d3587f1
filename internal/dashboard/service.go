package dashboard

import (
	"fmt"

	"github.com/rpattn/infraboard/internal/analytics"
	"github.com/rpattn/infraboard/internal/dataset"
	"github.com/rpattn/infraboard/internal/domain"
)

// FilterColumns are the columns exposed as sidebar filters. The engine
// supports any categorical column; the dashboard currently surfaces these.
var FilterColumns = []string{
	domain.ColumnLocation,
	domain.ColumnStatus,
	domain.ColumnSector,
	domain.ColumnYear,
}

// resourceColumns are the four resource-analysis dimensions, each rendered
// as a distribution pie plus a per-location cross tabulation.
var resourceColumns = []string{
	domain.ColumnResourceManagement,
	domain.ColumnLogistics,
	domain.ColumnMachineryMobilization,
	domain.ColumnWorkForce,
}

// TableSource supplies the loaded record table. dataset.Cache is the
// production implementation.
type TableSource interface {
	Get() (dataset.Result, error)
}

// Service assembles render-ready dashboard views. It owns no data: the
// record table comes from the source and is handed to each engine operation
// explicitly.
type Service struct {
	source TableSource
}

// NewService creates a dashboard service backed by a table source.
func NewService(source TableSource) *Service {
	return &Service{source: source}
}

// Snapshot is one full recomputation pass over the filtered view:
// scalar metrics, the chart source aggregations, the four resource cross
// tabulations, and the filtered detail rows.
type Snapshot struct {
	Metrics            analytics.Metrics                    `json:"metrics"`
	CostBySector       []analytics.CategoryTotal            `json:"cost_by_sector"`
	CostByStatus       []analytics.CategoryTotal            `json:"cost_by_status"`
	ProjectsByLocation []analytics.CategoryTotal            `json:"projects_by_location"`
	ResourceBreakdowns map[string][]analytics.CategoryTotal `json:"resource_breakdowns"`
	LocationCrossTabs  map[string]*analytics.CrossTab       `json:"location_cross_tabs"`
	Projects           domain.Table                         `json:"projects"`
	Errors             []string                             `json:"errors,omitempty"`
}

// Snapshot computes every derived view for the given filter in one pass.
// A failure in a single aggregation is collected into Snapshot.Errors and
// does not prevent the remaining aggregations from completing; only a
// failure to produce the filtered view itself aborts the pass.
func (s *Service) Snapshot(filter domain.Filter) (*Snapshot, error) {
	result, err := s.source.Get()
	if err != nil {
		return nil, err
	}

	view, err := analytics.ApplyFilters(result.Table, filter)
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Metrics:            analytics.ComputeMetrics(view),
		ResourceBreakdowns: make(map[string][]analytics.CategoryTotal, len(resourceColumns)),
		LocationCrossTabs:  make(map[string]*analytics.CrossTab, len(resourceColumns)),
		Projects:           view,
	}

	if totals, err := analytics.GroupedSum(view, domain.ColumnSector, domain.ColumnTotalCost); err != nil {
		snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("cost by sector: %v", err))
	} else {
		snapshot.CostBySector = totals
	}

	if totals, err := analytics.GroupedSum(view, domain.ColumnStatus, domain.ColumnTotalCost); err != nil {
		snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("cost by status: %v", err))
	} else {
		snapshot.CostByStatus = totals
	}

	if totals, err := analytics.GroupedCount(view, domain.ColumnLocation); err != nil {
		snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("projects by location: %v", err))
	} else {
		analytics.SortByValueDesc(totals)
		snapshot.ProjectsByLocation = totals
	}

	for _, column := range resourceColumns {
		if totals, err := analytics.GroupedCount(view, column); err != nil {
			snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("%s breakdown: %v", column, err))
		} else {
			analytics.SortByValueDesc(totals)
			snapshot.ResourceBreakdowns[column] = totals
		}

		if crossTab, err := analytics.ComputeCrossTab(view, domain.ColumnLocation, column); err != nil {
			snapshot.Errors = append(snapshot.Errors, fmt.Sprintf("%s by location: %v", column, err))
		} else {
			snapshot.LocationCrossTabs[column] = crossTab
		}
	}

	return snapshot, nil
}

// FilterOptions returns the option list for every filter column, always
// derived from the full, unfiltered table.
func (s *Service) FilterOptions() (map[string][]string, error) {
	result, err := s.source.Get()
	if err != nil {
		return nil, err
	}

	options := make(map[string][]string, len(FilterColumns))
	for _, column := range FilterColumns {
		values, err := analytics.FilterOptions(result.Table, column)
		if err != nil {
			return nil, err
		}
		options[column] = values
	}
	return options, nil
}

// Projects returns the filtered detail rows.
func (s *Service) Projects(filter domain.Filter) (domain.Table, error) {
	result, err := s.source.Get()
	if err != nil {
		return nil, err
	}
	return analytics.ApplyFilters(result.Table, filter)
}

// LoadIssues exposes the row-level repairs recorded during the source load.
func (s *Service) LoadIssues() ([]dataset.LoadIssue, error) {
	result, err := s.source.Get()
	if err != nil {
		return nil, err
	}
	return result.Issues, nil
}
