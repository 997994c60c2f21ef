package chart

import (
	"bytes"
	"fmt"
	"strconv"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Bin is one histogram bucket covering [Lo, Hi).
type Bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// Center returns the midpoint of the bucket.
func (b Bin) Center() float64 {
	return (b.Lo + b.Hi) / 2
}

// Histogram draws bins as adjacent bars labelled by their centre.
func Histogram(title string, bins []Bin, opts Options) (*Image, error) {
	opts = opts.withDefaults()
	if len(bins) == 0 {
		return nil, ErrNoData
	}

	maxCount := 0
	bars := make([]gochart.Value, len(bins))
	for i, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		bars[i] = gochart.Value{
			Label: formatTick(b.Center()),
			Value: float64(b.Count),
			Style: gochart.Style{
				FillColor:   barFill,
				StrokeColor: barColor,
				StrokeWidth: 1,
			},
		}
	}
	if maxCount == 0 {
		return nil, ErrNoData
	}

	const spacing = 2
	barWidth := (opts.Width-120)/len(bins) - spacing
	if barWidth < 1 {
		barWidth = 1
	}

	graph := gochart.BarChart{
		Title:      title,
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{
			FillColor: canvasStyle.FillColor,
			Padding: gochart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 70,
			},
		},
		XAxis: gochart.Style{
			StrokeColor:         gochart.ColorBlack,
			StrokeWidth:         1,
			FontSize:            9,
			TextRotationDegrees: 45,
		},
		YAxis: gochart.YAxis{
			Name: "Count",
			Range: &gochart.ContinuousRange{
				Min: 0,
				Max: float64(maxCount) * 1.1,
			},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return strconv.Itoa(int(f))
				}
				return ""
			},
			GridMajorStyle: gochart.Style{
				StrokeColor:     gridColor,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return &Image{MIME: MIMEPNG, Data: buf.Bytes()}, nil
}

// formatTick prints a value with at most four significant digits.
func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
