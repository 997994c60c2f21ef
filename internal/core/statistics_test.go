package core

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func loadTable(t *testing.T, csv string) *Table {
	t.Helper()
	table, err := LoadCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("LoadCSV() error = %v", err)
	}
	return table
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeStatistic_Mean(t *testing.T) {
	table := loadTable(t, "a,b\n1,2\n3,4\n")

	got, err := ComputeStatistic(table, "mean")
	if err != nil {
		t.Fatalf("ComputeStatistic() error = %v", err)
	}

	m := got.Map()
	if len(m) != 2 || m["a"] != 2.0 || m["b"] != 3.0 {
		t.Errorf("mean = %v, want map[a:2 b:3]", m)
	}
	if got.Kind != StatMean || got.Label != "Mean" {
		t.Errorf("Kind/Label = %s/%s, want mean/Mean", got.Kind, got.Label)
	}
}

func TestComputeStatistic_Kinds(t *testing.T) {
	table := loadTable(t, "x,name,y\n1,a,10\n2,b,\n3,c,30\n4,d,\n")

	tests := []struct {
		kind string
		want map[string]float64
	}{
		{kind: "mean", want: map[string]float64{"x": 2.5, "y": 20}},
		{kind: "std", want: map[string]float64{"x": math.Sqrt(5.0 / 3.0), "y": math.Sqrt(200)}},
		{kind: "min", want: map[string]float64{"x": 1, "y": 10}},
		{kind: "max", want: map[string]float64{"x": 4, "y": 30}},
		{kind: "count", want: map[string]float64{"x": 4, "y": 2}},
		{kind: "median", want: map[string]float64{"x": 2.5, "y": 20}},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			got, err := ComputeStatistic(table, tt.kind)
			if err != nil {
				t.Fatalf("ComputeStatistic() error = %v", err)
			}
			m := got.Map()
			if len(m) != len(tt.want) {
				t.Fatalf("got %v, want %v", m, tt.want)
			}
			for col, want := range tt.want {
				if !approxEqual(m[col], want) {
					t.Errorf("%s[%s] = %v, want %v", tt.kind, col, m[col], want)
				}
			}
		})
	}
}

func TestComputeStatistic_ColumnOrder(t *testing.T) {
	table := loadTable(t, "z,a,m\n1,2,3\n")

	got, err := ComputeStatistic(table, "max")
	if err != nil {
		t.Fatalf("ComputeStatistic() error = %v", err)
	}

	var names []string
	for _, cv := range got.Values {
		names = append(names, cv.Column)
	}
	if strings.Join(names, ",") != "z,a,m" {
		t.Errorf("column order = %v, want [z a m]", names)
	}
}

func TestComputeStatistic_CountEqualsRows(t *testing.T) {
	table := loadTable(t, "a,b\n1,2\n3,4\n5,6\n")

	got, err := ComputeStatistic(table, "count")
	if err != nil {
		t.Fatalf("ComputeStatistic() error = %v", err)
	}
	for _, cv := range got.Values {
		if int(cv.Value) != table.NumRows() {
			t.Errorf("count[%s] = %v, want %d", cv.Column, cv.Value, table.NumRows())
		}
	}
}

func TestComputeStatistic_EmptyColumn(t *testing.T) {
	table := loadTable(t, "a,b\n1,\n2,\n")

	count, err := ComputeStatistic(table, "count")
	if err != nil {
		t.Fatalf("ComputeStatistic() error = %v", err)
	}
	if v, ok := count.Map()["b"]; !ok || v != 0 {
		t.Errorf("count[b] = %v (present %v), want 0", v, ok)
	}

	mean, err := ComputeStatistic(table, "mean")
	if err != nil {
		t.Fatalf("ComputeStatistic() error = %v", err)
	}
	if _, ok := mean.Map()["b"]; ok {
		t.Error("mean of a column with no values should be omitted")
	}
}

func TestComputeStatistic_StdNeedsTwoValues(t *testing.T) {
	table := loadTable(t, "a\n5\n")

	got, err := ComputeStatistic(table, "std")
	if err != nil {
		t.Fatalf("ComputeStatistic() error = %v", err)
	}
	if len(got.Values) != 0 {
		t.Errorf("std with one value = %v, want no entries", got.Values)
	}
}

func TestComputeStatistic_Errors(t *testing.T) {
	table := loadTable(t, "a\n1\n")

	if _, err := ComputeStatistic(table, "variance"); !errors.Is(err, ErrUnsupportedStatistic) {
		t.Errorf("unknown kind: got %v, want ErrUnsupportedStatistic", err)
	}
	if _, err := ComputeStatistic(table, ""); !errors.Is(err, ErrUnsupportedStatistic) {
		t.Errorf("empty kind: got %v, want ErrUnsupportedStatistic", err)
	}
	if _, err := ComputeStatistic(nil, "mean"); !errors.Is(err, ErrNoDataLoaded) {
		t.Errorf("nil table: got %v, want ErrNoDataLoaded", err)
	}
}

func TestSummarize(t *testing.T) {
	table := loadTable(t, "a,label,b\n1,x,\n3,y,\n")

	s, err := Summarize(table)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if len(s.Kinds) != 6 {
		t.Fatalf("len(Kinds) = %d, want 6", len(s.Kinds))
	}
	if len(s.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2 numeric columns", len(s.Rows))
	}

	a := s.Rows[0]
	if a.Column != "a" || a.Values[0] != 2 || !a.Defined[0] {
		t.Errorf("row a = %+v, want mean 2", a)
	}

	b := s.Rows[1]
	for i, k := range s.Kinds {
		wantDefined := k.Kind == StatCount
		if b.Defined[i] != wantDefined {
			t.Errorf("b %s defined = %v, want %v", k.Kind, b.Defined[i], wantDefined)
		}
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	tests := map[float64]float64{0: 1, 0.5: 2.5, 1: 4, 0.25: 1.75}
	for q, want := range tests {
		if got := quantile(sorted, q); !approxEqual(got, want) {
			t.Errorf("quantile(%v) = %v, want %v", q, got, want)
		}
	}
	if !math.IsNaN(quantile(nil, 0.5)) {
		t.Error("quantile of empty slice should be NaN")
	}
}
