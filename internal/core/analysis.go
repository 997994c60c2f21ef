package core

// analysis.go holds the numeric work behind the charts: histogram binning,
// Gaussian kernel density and the Pearson correlation matrix. Rendering
// lives in package chart.

import (
	"math"

	"github.com/JonMunkholm/tabscope/internal/chart"
)

const (
	defaultBins      = 20
	defaultKDEPoints = 200
)

// HistogramBins splits values into n equal-width bins over [min, max]. The
// last bin is closed so the maximum is counted. A zero-width range is
// widened by 0.5 on each side. NaN values are ignored.
func HistogramBins(values []float64, n int) []chart.Bin {
	if n <= 0 {
		n = defaultBins
	}
	present := dropNaN(values)
	lo, ok := minimum(present)
	if !ok {
		return nil
	}
	hi, _ := maximum(present)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}

	width := (hi - lo) / float64(n)
	bins := make([]chart.Bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi

	for _, v := range present {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		bins[i].Count++
	}
	return bins
}

// ScottBandwidth returns the Gaussian kernel bandwidth by Scott's rule,
// sample std * n^(-1/5). ok is false for fewer than two values or zero
// variance.
func ScottBandwidth(values []float64) (h float64, ok bool) {
	std, ok := sampleStd(values)
	if !ok || std == 0 || math.IsNaN(std) {
		return 0, false
	}
	return std * math.Pow(float64(len(values)), -0.2), true
}

// KDE estimates the density of values with a Gaussian kernel on points
// evenly spaced from min-3h to max+3h. It returns ErrNoValues when the
// bandwidth is undefined.
func KDE(values []float64, points int) (xs, ys []float64, err error) {
	values = dropNaN(values)
	if points < 2 {
		points = defaultKDEPoints
	}
	h, ok := ScottBandwidth(values)
	if !ok {
		return nil, nil, ErrNoValues
	}

	lo, _ := minimum(values)
	hi, _ := maximum(values)
	lo -= 3 * h
	hi += 3 * h
	step := (hi - lo) / float64(points-1)

	norm := 1 / (float64(len(values)) * h * math.Sqrt(2*math.Pi))
	xs = make([]float64, points)
	ys = make([]float64, points)
	for i := range xs {
		x := lo + float64(i)*step
		var sum float64
		for _, v := range values {
			u := (x - v) / h
			sum += math.Exp(-0.5 * u * u)
		}
		xs[i] = x
		ys[i] = sum * norm
	}
	return xs, ys, nil
}

// Pearson returns the correlation of the rows where both x and y are
// present. The result is NaN when fewer than two such rows exist or either
// side is constant.
func Pearson(x, y []float64) float64 {
	var n, sx, sy float64
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		n++
		sx += x[i]
		sy += y[i]
	}
	if n < 2 {
		return math.NaN()
	}
	mx, my := sx/n, sy/n

	var sxy, sxx, syy float64
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN()
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r))
}

// Correlation computes the pairwise Pearson matrix over the numeric columns
// of t. It returns ErrInsufficientColumns when fewer than two exist.
func Correlation(t *Table) (names []string, matrix [][]float64, err error) {
	if t == nil {
		return nil, nil, ErrNoDataLoaded
	}
	cols := t.NumericColumns()
	if len(cols) < 2 {
		return nil, nil, ErrInsufficientColumns
	}

	names = make([]string, len(cols))
	matrix = make([][]float64, len(cols))
	for i, c := range cols {
		names[i] = c.Name
		matrix[i] = make([]float64, len(cols))
	}
	for i := range cols {
		for j := i; j < len(cols); j++ {
			r := Pearson(cols[i].Floats, cols[j].Floats)
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return names, matrix, nil
}

// PairedValues returns the rows of x and y where both are present.
func PairedValues(x, y []float64) (xs, ys []float64) {
	for i := range x {
		if i >= len(y) || math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

func dropNaN(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}
