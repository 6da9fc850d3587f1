package analytics

import (
	"fmt"

	"github.com/rpattn/infraboard/internal/domain"
)

// FilterOptions returns the selectable values for a filterable column:
// the distinct values present in the FULL table in natural order, with the
// MatchAll sentinel prepended. Option lists are always derived from the
// unfiltered table so choices stay stable regardless of current selections.
func FilterOptions(table domain.Table, column string) ([]string, error) {
	if !domain.IsCategorical(column) {
		return nil, fmt.Errorf("filter options: %w: %s", domain.ErrUnknownColumn, column)
	}

	seen := make(map[string]struct{})
	values := make([]string, 0)
	for _, project := range table {
		value, err := project.Category(column)
		if err != nil {
			return nil, err
		}
		if value == "" {
			continue
		}
		if _, ok := seen[value]; !ok {
			seen[value] = struct{}{}
			values = append(values, value)
		}
	}
	sortNatural(values)

	options := make([]string, 0, len(values)+1)
	options = append(options, domain.MatchAll)
	options = append(options, values...)
	return options, nil
}
