package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// coolwarm anchors: blue at -1, grey at 0, red at +1.
var (
	coolLow  = drawing.Color{R: 59, G: 76, B: 192, A: 255}
	coolMid  = drawing.Color{R: 221, G: 221, B: 221, A: 255}
	coolHigh = drawing.Color{R: 180, G: 4, B: 38, A: 255}
	nanColor = drawing.Color{R: 245, G: 245, B: 245, A: 255}
)

// CoolWarm maps v in [-1, 1] onto a diverging blue-grey-red scale.
// Values outside the range are clamped; NaN maps to a neutral fill.
func CoolWarm(v float64) drawing.Color {
	if math.IsNaN(v) {
		return nanColor
	}
	v = math.Max(-1, math.Min(1, v))
	if v < 0 {
		return lerp(coolMid, coolLow, -v)
	}
	return lerp(coolMid, coolHigh, v)
}

func lerp(a, b drawing.Color, t float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Heatmap draws a square matrix as coloured cells annotated with their
// values, with row and column labels and a colour bar. values must be
// len(labels) x len(labels) and lie in [-1, 1] or be NaN.
func Heatmap(title string, labels []string, values [][]float64, opts Options) (*Image, error) {
	opts = opts.withDefaults()
	n := len(labels)
	if n == 0 || len(values) != n {
		return nil, ErrNoData
	}
	for i, row := range values {
		if len(row) != n {
			return nil, fmt.Errorf("heatmap: row %d has %d values, want %d", i, len(row), n)
		}
	}

	font, err := gochart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("heatmap font: %w", err)
	}

	const (
		labelSize = 10.0
		top       = 50
		right     = 90
	)

	names := make([]string, n)
	labelWidth, err := measureLabels(font, labels, names, labelSize)
	if err != nil {
		return nil, err
	}
	left := labelWidth + 16
	bottom := labelWidth + 16

	// Wide tables grow the canvas so every cell keeps minCell pixels.
	width := max(opts.Width, left+right+n*minCell)
	height := max(opts.Height, top+bottom+n*minCell)
	cell := min((width-left-right)/n, (height-top-bottom)/n)

	r, err := gochart.PNG(width, height)
	if err != nil {
		return nil, fmt.Errorf("heatmap canvas: %w", err)
	}
	r.SetFont(font)

	fillRect(r, 0, 0, width, height, drawing.ColorWhite)

	gridW := cell * n

	if title != "" {
		r.SetFontSize(14)
		r.SetFontColor(drawing.ColorBlack)
		tb := r.MeasureText(title)
		r.Text(title, left+(gridW-tb.Width())/2, top/2+tb.Height()/2)
	}

	annotate := cell >= minAnnotatedCell
	annotSize := math.Max(6, math.Min(12, float64(cell)/4))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := values[i][j]
			x, y := left+j*cell, top+i*cell
			fillRect(r, x, y, x+cell, y+cell, CoolWarm(v))
			if !annotate {
				continue
			}

			text := "nan"
			if !math.IsNaN(v) {
				text = fmt.Sprintf("%.2f", v)
			}
			r.SetFontSize(annotSize)
			if !math.IsNaN(v) && math.Abs(v) > 0.6 {
				r.SetFontColor(drawing.ColorWhite)
			} else {
				r.SetFontColor(drawing.ColorBlack)
			}
			tb := r.MeasureText(text)
			r.Text(text, x+(cell-tb.Width())/2, y+(cell+tb.Height())/2)
		}
	}

	r.SetFontSize(math.Min(labelSize, float64(cell)))
	r.SetFontColor(drawing.ColorBlack)
	for i, name := range names {
		tb := r.MeasureText(name)
		// row label, right aligned against the grid
		r.Text(name, left-8-tb.Width(), top+i*cell+(cell+tb.Height())/2)

		// column label, running downwards under the grid
		r.SetTextRotation(math.Pi / 2)
		r.Text(name, left+i*cell+(cell-tb.Height())/2, top+gridW+8)
		r.ClearTextRotation()
	}

	drawColorBar(r, left+gridW+24, top, gridW, labelSize)

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("render heatmap: %w", err)
	}
	return &Image{MIME: MIMEPNG, Data: buf.Bytes()}, nil
}

// Cell sizes in pixels: the smallest cell drawn, and the smallest that
// still carries a value annotation.
const (
	minCell          = 8
	minAnnotatedCell = 24
)

// measureLabels truncates labels into names and returns the widest
// rendered name.
func measureLabels(font *truetype.Font, labels, names []string, size float64) (int, error) {
	r, err := gochart.PNG(1, 1)
	if err != nil {
		return 0, fmt.Errorf("heatmap canvas: %w", err)
	}
	r.SetFont(font)
	r.SetFontSize(size)

	widest := 0
	for i, l := range labels {
		names[i] = truncate(l, 18)
		if w := r.MeasureText(names[i]).Width(); w > widest {
			widest = w
		}
	}
	return widest, nil
}

// drawColorBar paints the -1..1 scale as a vertical strip with end labels.
func drawColorBar(r gochart.Renderer, x, y, height int, fontSize float64) {
	const width, steps = 18, 64
	for s := 0; s < steps; s++ {
		y0 := y + s*height/steps
		y1 := y + (s+1)*height/steps
		v := 1 - 2*(float64(s)+0.5)/steps
		fillRect(r, x, y0, x+width, y1, CoolWarm(v))
	}

	r.SetFontSize(fontSize)
	r.SetFontColor(drawing.ColorBlack)
	for _, tick := range []struct {
		label string
		at    int
	}{
		{"1.0", y},
		{"0.0", y + height/2},
		{"-1.0", y + height},
	} {
		tb := r.MeasureText(tick.label)
		r.Text(tick.label, x+width+6, tick.at+tb.Height()/2)
	}
}

func fillRect(r gochart.Renderer, x0, y0, x1, y1 int, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.SetStrokeWidth(0)
	r.MoveTo(x0, y0)
	r.LineTo(x1, y0)
	r.LineTo(x1, y1)
	r.LineTo(x0, y1)
	r.LineTo(x0, y0)
	r.Close()
	r.FillStroke()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}
