package analytics

import (
	"fmt"
	"sort"

	"github.com/rpattn/infraboard/internal/domain"
)

// CrossTab is a two-dimensional count matrix over two categorical columns,
// with a derived per-row total used for ranking.
type CrossTab struct {
	RowColumn  string        `json:"row_column"`
	ColColumn  string        `json:"col_column"`
	Categories []string      `json:"categories"`
	Rows       []CrossTabRow `json:"rows"`
}

// CrossTabRow is one matrix row. Counts holds a zero-filled entry for every
// category in the parent's Categories, so absent combinations report 0
// rather than missing keys.
type CrossTabRow struct {
	Label  string         `json:"label"`
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total_projects"`
}

// ComputeCrossTab counts record occurrences per (rowColumn, colColumn) pair
// over the view. Rows are ordered by total descending; rows with equal
// totals keep the order in which their label first appeared in the view.
// An empty view yields a matrix with zero rows.
func ComputeCrossTab(view domain.Table, rowColumn, colColumn string) (*CrossTab, error) {
	if !domain.IsCategorical(rowColumn) {
		return nil, fmt.Errorf("cross tab row column: %w: %s", domain.ErrUnknownColumn, rowColumn)
	}
	if !domain.IsCategorical(colColumn) {
		return nil, fmt.Errorf("cross tab column: %w: %s", domain.ErrUnknownColumn, colColumn)
	}

	counts := make(map[string]map[string]int)
	rowOrder := make([]string, 0)
	categorySet := make(map[string]struct{})

	for _, project := range view {
		rowValue, err := project.Category(rowColumn)
		if err != nil {
			return nil, err
		}
		colValue, err := project.Category(colColumn)
		if err != nil {
			return nil, err
		}

		rowKey := categoryLabel(rowValue)
		colKey := categoryLabel(colValue)

		if _, seen := counts[rowKey]; !seen {
			counts[rowKey] = make(map[string]int)
			rowOrder = append(rowOrder, rowKey)
		}
		counts[rowKey][colKey]++
		categorySet[colKey] = struct{}{}
	}

	categories := make([]string, 0, len(categorySet))
	for category := range categorySet {
		categories = append(categories, category)
	}
	sortNatural(categories)

	rows := make([]CrossTabRow, 0, len(rowOrder))
	for _, label := range rowOrder {
		row := CrossTabRow{
			Label:  label,
			Counts: make(map[string]int, len(categories)),
		}
		for _, category := range categories {
			count := counts[label][category]
			row.Counts[category] = count
			row.Total += count
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})

	return &CrossTab{
		RowColumn:  rowColumn,
		ColColumn:  colColumn,
		Categories: categories,
		Rows:       rows,
	}, nil
}
