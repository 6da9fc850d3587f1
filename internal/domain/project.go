package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownColumn is returned when an operation references a column that is
// not part of the project schema, or asks for a column of the wrong kind.
var ErrUnknownColumn = errors.New("unknown column")

// Column names for the fixed project schema. Every engine operation that
// takes a column reference uses these keys.
const (
	ColumnSequenceNumber        = "sequence_number"
	ColumnName                  = "name"
	ColumnTotalCost             = "total_cost"
	ColumnSector                = "sector"
	ColumnSubSector             = "sub_sector"
	ColumnAuthority             = "authority"
	ColumnYear                  = "year"
	ColumnLocation              = "location"
	ColumnStatus                = "status"
	ColumnResourceManagement    = "resource_management"
	ColumnLogistics             = "logistics"
	ColumnMachineryMobilization = "machinery_mobilization"
	ColumnWorkForce             = "work_force"
)

// MissingCategory is the explicit bucket for records whose categorical value
// is absent in the source data. Grouping under a visible label instead of
// dropping the record keeps aggregate totals equal to the view size.
const MissingCategory = "(missing)"

// Project represents one infrastructure project row from the source workbook.
// Categorical fields carry an open vocabulary discovered from the data; they
// are never enumerated in code.
type Project struct {
	SequenceNumber        int     `json:"sequence_number"`
	Name                  string  `json:"name"`
	TotalCost             float64 `json:"total_cost"`
	Sector                string  `json:"sector"`
	SubSector             string  `json:"sub_sector"`
	Authority             string  `json:"authority"`
	Year                  string  `json:"year"`
	Location              string  `json:"location"`
	Status                string  `json:"status"`
	ResourceManagement    string  `json:"resource_management"`
	Logistics             string  `json:"logistics"`
	MachineryMobilization string  `json:"machinery_mobilization"`
	WorkForce             string  `json:"work_force"`
}

// Table is an ordered sequence of projects sharing the fixed schema.
// It is loaded once and treated as read-only afterwards; derived views are
// always fresh slices, never in-place mutations.
type Table []Project

// CategoricalColumns lists every column that categorical operations
// (filtering, grouping, cross tabulation, option lists) may reference.
func CategoricalColumns() []string {
	return []string{
		ColumnName,
		ColumnSector,
		ColumnSubSector,
		ColumnAuthority,
		ColumnYear,
		ColumnLocation,
		ColumnStatus,
		ColumnResourceManagement,
		ColumnLogistics,
		ColumnMachineryMobilization,
		ColumnWorkForce,
	}
}

// Columns lists the full schema in source column order.
func Columns() []string {
	return []string{
		ColumnSequenceNumber,
		ColumnName,
		ColumnTotalCost,
		ColumnSector,
		ColumnSubSector,
		ColumnAuthority,
		ColumnYear,
		ColumnLocation,
		ColumnStatus,
		ColumnResourceManagement,
		ColumnLogistics,
		ColumnMachineryMobilization,
		ColumnWorkForce,
	}
}

// IsCategorical reports whether a column can serve categorical operations
// (filtering, grouping, cross tabulation, option lists).
func IsCategorical(column string) bool {
	for _, c := range CategoricalColumns() {
		if c == column {
			return true
		}
	}
	return false
}

// Category returns the value of a categorical column. The raw value is
// returned as stored; callers decide how to present empty values.
func (p Project) Category(column string) (string, error) {
	switch column {
	case ColumnName:
		return p.Name, nil
	case ColumnSector:
		return p.Sector, nil
	case ColumnSubSector:
		return p.SubSector, nil
	case ColumnAuthority:
		return p.Authority, nil
	case ColumnYear:
		return p.Year, nil
	case ColumnLocation:
		return p.Location, nil
	case ColumnStatus:
		return p.Status, nil
	case ColumnResourceManagement:
		return p.ResourceManagement, nil
	case ColumnLogistics:
		return p.Logistics, nil
	case ColumnMachineryMobilization:
		return p.MachineryMobilization, nil
	case ColumnWorkForce:
		return p.WorkForce, nil
	default:
		return "", fmt.Errorf("%w: %s is not a categorical column", ErrUnknownColumn, column)
	}
}

// Numeric returns the value of a numeric column.
func (p Project) Numeric(column string) (float64, error) {
	switch column {
	case ColumnTotalCost:
		return p.TotalCost, nil
	case ColumnSequenceNumber:
		return float64(p.SequenceNumber), nil
	default:
		return 0, fmt.Errorf("%w: %s is not a numeric column", ErrUnknownColumn, column)
	}
}
