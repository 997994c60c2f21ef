package core

import (
	"math"
	"strconv"
)

// ColumnKind is the inferred type of a column.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindNumeric
)

func (k ColumnKind) String() string {
	if k == KindNumeric {
		return "numeric"
	}
	return "text"
}

// Column is a named, typed sequence of values.
//
// Numeric columns store values in Floats with NaN marking a missing entry.
// Textual columns store values in Texts with Null[i] marking a missing entry.
type Column struct {
	Name    string
	Kind    ColumnKind
	Integer bool // numeric column whose present values are all whole numbers

	Floats []float64
	Texts  []string
	Null   []bool
}

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Floats)
	}
	return len(c.Texts)
}

// IsNumeric reports whether the column holds numbers.
func (c *Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// Missing reports whether row i has no value.
func (c *Column) Missing(i int) bool {
	if c.Kind == KindNumeric {
		return math.IsNaN(c.Floats[i])
	}
	return c.Null[i]
}

// DType returns a short type label for display: int64, float64 or object.
func (c *Column) DType() string {
	switch {
	case c.Kind == KindText:
		return "object"
	case c.Integer:
		return "int64"
	default:
		return "float64"
	}
}

// Present returns the non-missing values of a numeric column.
func (c *Column) Present() []float64 {
	if c.Kind != KindNumeric {
		return nil
	}
	out := make([]float64, 0, len(c.Floats))
	for _, v := range c.Floats {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Format renders row i for display. Missing entries render as "NaN".
func (c *Column) Format(i int) string {
	if c.Missing(i) {
		return "NaN"
	}
	if c.Kind == KindNumeric {
		return FormatNumber(c.Floats[i])
	}
	return c.Texts[i]
}

// Table is an ordered set of equally long columns.
type Table struct {
	Columns []*Column
	rows    int
}

// NewTable builds a table from columns that must all have the same length.
func NewTable(columns []*Column) (*Table, error) {
	t := &Table{Columns: columns}
	for i, c := range columns {
		if i == 0 {
			t.rows = c.Len()
			continue
		}
		if c.Len() != t.rows {
			return nil, &ParseError{Err: errRaggedColumns}
		}
	}
	return t, nil
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return t.rows
}

// NumColumns returns the number of columns.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// NumericColumns returns the numeric columns in table order.
func (t *Table) NumericColumns() []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if c.IsNumeric() {
			out = append(out, c)
		}
	}
	return out
}

// NumericNames returns the names of the numeric columns in table order.
func (t *Table) NumericNames() []string {
	cols := t.NumericColumns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// Row returns row i formatted for display.
func (t *Table) Row(i int) []string {
	row := make([]string, len(t.Columns))
	for j, c := range t.Columns {
		row[j] = c.Format(i)
	}
	return row
}

// FormatNumber prints a float without trailing zeros.
func FormatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
