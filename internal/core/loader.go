package core

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Input formats accepted by LoadFile.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// LoadInfo describes what LoadFile read.
type LoadInfo struct {
	Format string
	Bytes  int64
}

// DetectFormat picks the input format from a file name. Anything that is
// not an Excel workbook is read as CSV.
func DetectFormat(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return FormatCSV
	}
}

// LoadFile parses an uploaded file into a Table, choosing the format from
// the file name. Parse failures are returned as *ParseError.
func LoadFile(fileName string, r io.Reader) (*Table, LoadInfo, error) {
	if DetectFormat(fileName) == FormatXLSX {
		counter := &countingReader{r: r}
		t, err := LoadXLSX(counter)
		return t, LoadInfo{Format: FormatXLSX, Bytes: counter.BytesRead()}, err
	}
	t, n, err := loadCSV(r)
	return t, LoadInfo{Format: FormatCSV, Bytes: n}, err
}

// LoadCSV parses comma-separated text with a header row into a Table.
//
// A leading BOM is dropped and invalid UTF-8 is replaced. Blank lines are
// skipped. A row with more fields than the header is an error; a row with
// fewer fields is padded with missing values.
func LoadCSV(r io.Reader) (*Table, error) {
	t, _, err := loadCSV(r)
	return t, err
}

func loadCSV(r io.Reader) (*Table, int64, error) {
	in, counter, err := wrapInput(r)
	if err != nil {
		return nil, 0, &ParseError{Err: err}
	}

	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, counter.BytesRead(), &ParseError{Err: ErrEmptyFile}
	}
	if err != nil {
		return nil, counter.BytesRead(), csvError(err)
	}

	var rows [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, counter.BytesRead(), csvError(err)
		}
		if len(record) > len(header) {
			line, _ := cr.FieldPos(0)
			return nil, counter.BytesRead(), &ParseError{
				Line: line,
				Err:  fmt.Errorf("expected %d fields, saw %d", len(header), len(record)),
			}
		}
		rows = append(rows, record)
	}

	t, err := buildTable(header, rows)
	return t, counter.BytesRead(), err
}

// csvError converts an encoding/csv failure into a ParseError.
func csvError(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{Line: pe.Line, Err: pe.Err}
	}
	return &ParseError{Err: err}
}

// LoadXLSX reads the first sheet of an Excel workbook into a Table. The
// first row is the header; cells beyond the header get "Unnamed: i"
// columns and fully blank rows are skipped.
func LoadXLSX(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, &ParseError{Format: FormatXLSX, Err: errors.New("workbook has no sheets")}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ParseError{Format: FormatXLSX, Err: err}
	}
	if len(rows) == 0 {
		return nil, &ParseError{Format: FormatXLSX, Err: ErrEmptyFile}
	}

	header := rows[0]
	var data [][]string
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		data = append(data, row)
		for len(header) < len(row) {
			header = append(header, "")
		}
	}

	t, err := buildTable(header, data)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Format = FormatXLSX
		}
		return nil, err
	}
	return t, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// buildTable turns a header and raw rows into typed columns. Rows shorter
// than the header are padded with missing cells.
func buildTable(header []string, rows [][]string) (*Table, error) {
	names := normalizeHeaders(header)
	columns := make([]*Column, len(names))
	for j, name := range names {
		raw := make([]string, len(rows))
		for i, row := range rows {
			if j < len(row) {
				raw[i] = row[j]
			}
		}
		columns[j] = buildColumn(name, raw)
	}
	return NewTable(columns)
}
