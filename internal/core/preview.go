package core

const defaultPreviewRows = 5

// Preview is the head of a dataset shown after an upload.
type Preview struct {
	FileName     string
	Headers      []string
	DTypes       []string
	Rows         [][]string
	TotalRows    int
	TotalColumns int
	NumericNames []string
}

// Truncated reports whether the preview shows fewer rows than the table has.
func (p *Preview) Truncated() bool {
	return len(p.Rows) < p.TotalRows
}

// NewPreview returns the first n rows of d formatted for display.
func NewPreview(d *Dataset, n int) *Preview {
	if n <= 0 {
		n = defaultPreviewRows
	}
	t := d.Table
	if n > t.NumRows() {
		n = t.NumRows()
	}

	p := &Preview{
		FileName:     d.FileName,
		Headers:      t.Names(),
		DTypes:       make([]string, t.NumColumns()),
		Rows:         make([][]string, n),
		TotalRows:    t.NumRows(),
		TotalColumns: t.NumColumns(),
		NumericNames: t.NumericNames(),
	}
	for i, c := range t.Columns {
		p.DTypes[i] = c.DType()
	}
	for i := 0; i < n; i++ {
		p.Rows[i] = t.Row(i)
	}
	return p
}
