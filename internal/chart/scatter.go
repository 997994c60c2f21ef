package chart

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ScatterOptions controls the interactive scatter document.
type ScatterOptions struct {
	// AssetsHost is the base URL echarts.min.js is loaded from.
	AssetsHost string
	Width      string
	Height     string
}

// Scatter renders xs against ys as a self-contained echarts HTML document.
// The document is meant to be embedded, e.g. through an iframe srcdoc.
func Scatter(title, xName, yName string, xs, ys []float64, o ScatterOptions) (string, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return "", ErrNoData
	}
	if o.Width == "" {
		o.Width = "900px"
	}
	if o.Height == "" {
		o.Height = "500px"
	}

	points := make([]opts.ScatterData, len(xs))
	for i := range xs {
		points[i] = opts.ScatterData{
			Value:      []interface{}{xs[i], ys[i]},
			SymbolSize: 8,
		}
	}

	init := opts.Initialization{
		PageTitle: title,
		Width:     o.Width,
		Height:    o.Height,
	}
	if o.AssetsHost != "" {
		init.AssetsHost = o.AssetsHost
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "value"}),
	)
	scatter.AddSeries(fmt.Sprintf("%s vs %s", xName, yName), points)

	var buf bytes.Buffer
	if err := scatter.Render(&buf); err != nil {
		return "", fmt.Errorf("render scatter: %w", err)
	}
	return buf.String(), nil
}
