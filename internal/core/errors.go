package core

import (
	"errors"
	"fmt"
)

// Domain errors. Callers match them with errors.Is; the wrapped text carries
// the detail (column name, requested kind) and drives MapError.
var (
	ErrNoDataLoaded         = errors.New("no data loaded")
	ErrUnsupportedStatistic = errors.New("unsupported statistic")
	ErrUnsupportedChart     = errors.New("unsupported chart")
	ErrInvalidColumn        = errors.New("invalid column")
	ErrInsufficientColumns  = errors.New("insufficient numeric columns")
	ErrNoValues             = errors.New("no values to plot")
	ErrEmptyFile            = errors.New("empty file")
	ErrNoFile               = errors.New("no file provided")
	ErrFileTooLarge         = errors.New("file too large")

	errRaggedColumns = errors.New("columns have different lengths")
)

// ParseError reports an upload that could not be read as a table.
// Line is the 1-based input line, or 0 when the failure is not tied to one.
type ParseError struct {
	Format string // "csv" or "xlsx"; empty means csv
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	format := e.Format
	if format == "" {
		format = "csv"
	}
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s: line %d: %v", format, e.Line, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
