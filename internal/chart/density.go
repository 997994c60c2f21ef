package chart

import (
	"bytes"
	"fmt"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// Density draws an estimated density curve with the area beneath it shaded.
// xs and ys are the evaluation grid and the density at each grid point.
func Density(title, column string, xs, ys []float64, opts Options) (*Image, error) {
	opts = opts.withDefaults()
	if len(xs) < 2 || len(xs) != len(ys) {
		return nil, ErrNoData
	}

	area := gochart.ContinuousSeries{
		Name:    column,
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeColor: barColor,
			StrokeWidth: 2,
			FillColor:   barFill.WithAlpha(60),
		},
	}

	graph := gochart.Chart{
		Title:  title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: gochart.Style{
			FillColor: canvasStyle.FillColor,
			Padding: gochart.Box{
				Top:    50,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		XAxis: gochart.XAxis{
			Name: column,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return formatTick(f)
				}
				return ""
			},
		},
		YAxis: gochart.YAxis{
			Name: "Density",
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.4f", f)
				}
				return ""
			},
			GridMajorStyle: gochart.Style{
				StrokeColor:     gridColor,
				StrokeWidth:     1,
				StrokeDashArray: []float64{5.0, 5.0},
			},
		},
		Series: []gochart.Series{area},
	}
	graph.Background.StrokeWidth = canvasStyle.StrokeWidth
	graph.Background.StrokeColor = canvasStyle.StrokeColor

	var buf bytes.Buffer
	if err := graph.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render density: %w", err)
	}
	return &Image{MIME: MIMEPNG, Data: buf.Bytes()}, nil
}
