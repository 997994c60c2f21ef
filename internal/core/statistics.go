package core

import (
	"fmt"
	"math"
	"sort"
)

// StatKind identifies an aggregate computed per numeric column.
type StatKind string

const (
	StatMean   StatKind = "mean"
	StatStd    StatKind = "std"
	StatMin    StatKind = "min"
	StatMax    StatKind = "max"
	StatCount  StatKind = "count"
	StatMedian StatKind = "median"
)

// StatInfo describes a statistic kind for forms and exports.
type StatInfo struct {
	Kind  StatKind
	Label string
}

// aggregate reduces the present values of one column. ok is false when the
// column has too few values for the statistic to be defined.
type aggregate func(values []float64) (v float64, ok bool)

type statDef struct {
	StatInfo
	fn aggregate
}

// statistics is the fixed set, in display order.
var statistics = []statDef{
	{StatInfo{StatMean, "Mean"}, mean},
	{StatInfo{StatStd, "Standard deviation"}, sampleStd},
	{StatInfo{StatMin, "Minimum"}, minimum},
	{StatInfo{StatMax, "Maximum"}, maximum},
	{StatInfo{StatCount, "Count"}, count},
	{StatInfo{StatMedian, "Median"}, median},
}

// Statistics returns the supported statistic kinds in display order.
func Statistics() []StatInfo {
	out := make([]StatInfo, len(statistics))
	for i, d := range statistics {
		out[i] = d.StatInfo
	}
	return out
}

func lookupStatistic(kind string) (statDef, error) {
	for _, d := range statistics {
		if string(d.Kind) == kind {
			return d, nil
		}
	}
	return statDef{}, fmt.Errorf("%w: %q", ErrUnsupportedStatistic, kind)
}

// ColumnValue is one column's aggregate.
type ColumnValue struct {
	Column string
	Value  float64
}

// Statistic is the result of one aggregate over every numeric column, in
// table order. Columns for which the aggregate is undefined are absent.
type Statistic struct {
	Kind   StatKind
	Label  string
	Values []ColumnValue
}

// Map returns the values keyed by column name.
func (s *Statistic) Map() map[string]float64 {
	m := make(map[string]float64, len(s.Values))
	for _, cv := range s.Values {
		m[cv.Column] = cv.Value
	}
	return m
}

// ComputeStatistic applies the named aggregate to each numeric column of t.
// Missing values are skipped.
func ComputeStatistic(t *Table, kind string) (*Statistic, error) {
	def, err := lookupStatistic(kind)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoDataLoaded
	}

	res := &Statistic{Kind: def.Kind, Label: def.Label}
	for _, c := range t.NumericColumns() {
		if v, ok := def.fn(c.Present()); ok {
			res.Values = append(res.Values, ColumnValue{Column: c.Name, Value: v})
		}
	}
	return res, nil
}

// SummaryRow holds every statistic for one column, in Statistics() order.
// Defined[i] is false where the aggregate has no value.
type SummaryRow struct {
	Column  string
	Values  []float64
	Defined []bool
}

// Summary is the describe-style table of all statistics over all numeric
// columns.
type Summary struct {
	Kinds []StatInfo
	Rows  []SummaryRow
}

// Summarize computes every statistic for every numeric column of t.
func Summarize(t *Table) (*Summary, error) {
	if t == nil {
		return nil, ErrNoDataLoaded
	}

	s := &Summary{Kinds: Statistics()}
	for _, c := range t.NumericColumns() {
		present := c.Present()
		row := SummaryRow{
			Column:  c.Name,
			Values:  make([]float64, len(statistics)),
			Defined: make([]bool, len(statistics)),
		}
		for i, d := range statistics {
			row.Values[i], row.Defined[i] = d.fn(present)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}

func count(values []float64) (float64, bool) {
	return float64(len(values)), true
}

func mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// sampleStd is the n-1 standard deviation, accumulated with Welford's method.
func sampleStd(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	var m, m2 float64
	for i, v := range values {
		delta := v - m
		m += delta / float64(i+1)
		m2 += delta * (v - m)
	}
	return math.Sqrt(m2 / float64(len(values)-1)), true
}

func minimum(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	lo := values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
	}
	return lo, true
}

func maximum(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	hi := values[0]
	for _, v := range values[1:] {
		hi = math.Max(hi, v)
	}
	return hi, true
}

func median(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return quantile(sorted, 0.5), true
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
