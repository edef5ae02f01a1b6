package csvimport

import (
	"fmt"

	"github.com/pricebook/backend/internal/domain/pricebook"
)

// SheetError describes why a price sheet was rejected. Every SheetError
// matches pricebook.ErrInvalidSheet with errors.Is.
type SheetError struct {
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason"`
}

// Error implements the error interface
func (e *SheetError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
	}
	return e.Reason
}

// Unwrap exposes the domain error for HTTP mapping.
func (e *SheetError) Unwrap() error {
	return pricebook.ErrInvalidSheet
}

// Common sheet errors
var (
	// ErrEmptyFile is returned when the CSV file is empty
	ErrEmptyFile = &SheetError{Reason: "CSV file is empty"}

	// ErrInvalidEncoding is returned when the file is not UTF-8
	ErrInvalidEncoding = &SheetError{Reason: "CSV file must be UTF-8 encoded"}

	// ErrMissingHeader is returned when the CSV file has no header row
	ErrMissingHeader = &SheetError{Reason: "CSV file missing header row"}

	// ErrUnknownColumns is returned when no header names a product field
	ErrUnknownColumns = &SheetError{Reason: "CSV header names no known product column"}

	// ErrNoDataRows is returned when the CSV file has no data rows
	ErrNoDataRows = &SheetError{Reason: "CSV file contains no data rows"}

	// ErrTooManyRows is returned when the sheet exceeds the row limit
	ErrTooManyRows = &SheetError{Reason: "CSV file has too many rows"}
)

func malformedRow(line int, err error) *SheetError {
	return &SheetError{Line: line, Reason: err.Error()}
}
