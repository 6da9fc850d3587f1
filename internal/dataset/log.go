package dataset

import (
	"time"

	"github.com/google/uuid"
)

// LoadIssue captures a row-level problem that was repaired while binding the
// source file to the project schema.
type LoadIssue struct {
	ID        uuid.UUID `json:"id"`
	FileName  string    `json:"file_name"`
	RowNumber int       `json:"row_number"`
	Column    string    `json:"column"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

func newLoadIssue(fileName string, rowNumber int, column, message string) LoadIssue {
	return LoadIssue{
		ID:        uuid.New(),
		FileName:  fileName,
		RowNumber: rowNumber,
		Column:    column,
		Message:   message,
		CreatedAt: time.Now(),
	}
}
