package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rpattn/infraboard/internal/domain"

	"github.com/xuri/excelize/v2"
)

var (
	// ErrUnsupportedFormat is returned when the source file is not a
	// supported tabular format.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	byteOrderMark = []byte{0xEF, 0xBB, 0xBF}
)

// columnCount is the fixed width of the source schema.
var columnCount = len(domain.Columns())

// Result is a fully-parsed record table plus any row-level issues that were
// repaired during the load (missing costs coerced to zero, bad sequence
// numbers and the like).
type Result struct {
	Table  domain.Table
	Issues []LoadIssue
}

// Loader reads the source workbook into an in-memory record table. The
// schema is fixed: thirteen columns in source order, first row a header row
// to be skipped.
type Loader struct {
	path       string
	headerRows int
}

// NewLoader creates a loader for the given file path. One leading header
// row is skipped by default.
func NewLoader(path string) *Loader {
	return &Loader{path: path, headerRows: 1}
}

// WithHeaderRows overrides how many leading rows are skipped before data.
func (l *Loader) WithHeaderRows(n int) *Loader {
	if n >= 0 {
		l.headerRows = n
	}
	return l
}

// Load reads and parses the configured source file.
func (l *Loader) Load() (Result, error) {
	payload, err := os.ReadFile(l.path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read source file: %w", err)
	}
	return l.Parse(filepath.Base(l.path), payload)
}

// Parse binds raw file content to the project schema. The format is chosen
// by file extension.
func (l *Loader) Parse(fileName string, payload []byte) (Result, error) {
	if len(payload) == 0 {
		return Result{}, errors.New("source file is empty")
	}

	var rows [][]string
	var err error

	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".xlsx":
		rows, err = readExcel(payload)
	case ".csv":
		rows, err = readCSV(payload)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return Result{}, err
	}

	return l.bindRows(fileName, rows)
}

func readExcel(payload []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}
	return rows, nil
}

func readCSV(payload []byte) ([][]string, error) {
	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return records, nil
}

// bindRows maps raw rows positionally onto the fixed schema, skipping the
// configured header rows and fully-empty rows.
func (l *Loader) bindRows(fileName string, rows [][]string) (Result, error) {
	if len(rows) <= l.headerRows {
		return Result{}, errors.New("no data rows found in source file")
	}

	result := Result{Table: make(domain.Table, 0, len(rows)-l.headerRows)}

	for idx := l.headerRows; idx < len(rows); idx++ {
		row := padRow(rows[idx], columnCount)
		if isEmptyRow(row) {
			continue
		}

		rowNumber := idx + 1 // 1-based, includes header rows
		project, issues := bindProject(fileName, rowNumber, row)
		result.Table = append(result.Table, project)
		result.Issues = append(result.Issues, issues...)
	}

	return result, nil
}

func bindProject(fileName string, rowNumber int, row []string) (domain.Project, []LoadIssue) {
	var issues []LoadIssue

	project := domain.Project{
		Name:                  strings.TrimSpace(row[1]),
		Sector:                strings.TrimSpace(row[3]),
		SubSector:             strings.TrimSpace(row[4]),
		Authority:             strings.TrimSpace(row[5]),
		Year:                  strings.TrimSpace(row[6]),
		Location:              strings.TrimSpace(row[7]),
		Status:                strings.TrimSpace(row[8]),
		ResourceManagement:    strings.TrimSpace(row[9]),
		Logistics:             strings.TrimSpace(row[10]),
		MachineryMobilization: strings.TrimSpace(row[11]),
		WorkForce:             strings.TrimSpace(row[12]),
	}

	if raw := strings.TrimSpace(row[0]); raw != "" {
		seq, err := parseSequence(raw)
		if err != nil {
			issues = append(issues, newLoadIssue(fileName, rowNumber, domain.ColumnSequenceNumber,
				fmt.Sprintf("unparseable sequence number %q", raw)))
		} else {
			project.SequenceNumber = seq
		}
	}

	raw := strings.TrimSpace(row[2])
	if raw == "" {
		issues = append(issues, newLoadIssue(fileName, rowNumber, domain.ColumnTotalCost,
			"missing total cost, treated as 0"))
	} else {
		cost, err := parseCost(raw)
		if err != nil {
			issues = append(issues, newLoadIssue(fileName, rowNumber, domain.ColumnTotalCost,
				fmt.Sprintf("unparseable total cost %q, treated as 0", raw)))
		} else {
			project.TotalCost = cost
		}
	}

	return project, issues
}

func parseSequence(raw string) (int, error) {
	if i, err := strconv.Atoi(raw); err == nil {
		return i, nil
	}
	// Spreadsheet cells often render integers as floats.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func parseCost(raw string) (float64, error) {
	// Currency cells may carry thousands separators.
	raw = strings.ReplaceAll(raw, ",", "")
	cost, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if cost < 0 {
		return 0, fmt.Errorf("negative cost %v", cost)
	}
	return cost, nil
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
