package analytics

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rpattn/infraboard/internal/domain"
)

// CategoryTotal is one entry of a grouped aggregation: a categorical value
// and either a summed measure or a record count.
type CategoryTotal struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

// GroupedSum groups a view by a categorical column and sums a numeric column
// per group. Groups are emitted in natural key order; only categories present
// in the view appear. Records with an absent group value land in the
// explicit missing bucket.
func GroupedSum(view domain.Table, groupColumn, valueColumn string) ([]CategoryTotal, error) {
	return grouped(view, groupColumn, func(p domain.Project) (float64, error) {
		return p.Numeric(valueColumn)
	})
}

// GroupedCount groups a view by a categorical column and counts records per
// group. This is the constant-one case of a grouped sum.
func GroupedCount(view domain.Table, groupColumn string) ([]CategoryTotal, error) {
	return grouped(view, groupColumn, func(domain.Project) (float64, error) {
		return 1, nil
	})
}

func grouped(view domain.Table, groupColumn string, measure func(domain.Project) (float64, error)) ([]CategoryTotal, error) {
	if !domain.IsCategorical(groupColumn) {
		return nil, fmt.Errorf("group column: %w: %s", domain.ErrUnknownColumn, groupColumn)
	}

	totals := make(map[string]float64)
	for _, project := range view {
		key, err := project.Category(groupColumn)
		if err != nil {
			return nil, err
		}
		value, err := measure(project)
		if err != nil {
			return nil, err
		}
		totals[categoryLabel(key)] += value
	}

	keys := make([]string, 0, len(totals))
	for key := range totals {
		keys = append(keys, key)
	}
	sortNatural(keys)

	result := make([]CategoryTotal, 0, len(keys))
	for _, key := range keys {
		result = append(result, CategoryTotal{Category: key, Value: totals[key]})
	}
	return result, nil
}

// SortByValueDesc reorders grouped totals by value descending, keeping the
// existing order for equal values.
func SortByValueDesc(totals []CategoryTotal) {
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Value > totals[j].Value
	})
}

// sortNatural sorts category values numerically when every value parses as a
// number (year labels, numeric codes), lexicographically otherwise.
func sortNatural(values []string) {
	numeric := make(map[string]float64, len(values))
	allNumeric := len(values) > 0
	for _, v := range values {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			allNumeric = false
			break
		}
		numeric[v] = f
	}

	if allNumeric {
		sort.SliceStable(values, func(i, j int) bool {
			return numeric[values[i]] < numeric[values[j]]
		})
		return
	}
	sort.Strings(values)
}
