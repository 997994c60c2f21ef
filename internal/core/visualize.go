package core

import (
	"fmt"
	"math"
	"strings"

	"github.com/JonMunkholm/tabscope/internal/chart"
)

// Registered chart kinds.
const (
	ChartHistogram ChartKind = "histogram"
	ChartScatter   ChartKind = "scatter"
	ChartKDE       ChartKind = "kde"
	ChartHeatmap   ChartKind = "heatmap"
)

func init() {
	RegisterChart(ChartDefinition{
		Info:   ChartInfo{Kind: ChartHistogram, Label: "Histogram", Aliases: []string{"Histogramme"}, Axes: 1},
		Render: renderHistogram,
	})
	RegisterChart(ChartDefinition{
		Info:   ChartInfo{Kind: ChartScatter, Label: "Scatter Plot", Axes: 2},
		Render: renderScatter,
	})
	RegisterChart(ChartDefinition{
		Info:   ChartInfo{Kind: ChartKDE, Label: "KDE Plot", Axes: 1},
		Render: renderKDE,
	})
	RegisterChart(ChartDefinition{
		Info:   ChartInfo{Kind: ChartHeatmap, Label: "Heatmap"},
		Render: renderHeatmap,
	})
}

// ChartRequest selects a chart kind and its axis columns.
type ChartRequest struct {
	Choice string // kind, label or alias
	X      string
	Y      string
}

// RenderSettings carries the rendering knobs from configuration.
type RenderSettings struct {
	Options    chart.Options
	Bins       int
	KDEPoints  int
	AssetsHost string
}

// Chart is the result of one render. Exactly one of Image and HTML is set.
type Chart struct {
	Kind     ChartKind
	Title    string
	FileName string
	Image    *chart.Image
	HTML     string
}

// Interactive reports whether the chart is an embeddable document rather
// than an image.
func (c *Chart) Interactive() bool {
	return c.Image == nil && c.HTML != ""
}

// Visualize resolves req.Choice and draws it from t.
func Visualize(t *Table, req ChartRequest, s RenderSettings) (*Chart, error) {
	def, err := ResolveChart(req.Choice)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrNoDataLoaded
	}
	return def.Render(t, req, s)
}

// numericColumn returns the named column when it exists and is numeric.
func numericColumn(t *Table, name, axis string) (*Column, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: no %s column selected", ErrInvalidColumn, axis)
	}
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q does not exist", ErrInvalidColumn, name)
	}
	if !c.IsNumeric() {
		return nil, fmt.Errorf("%w: %q is not numeric", ErrInvalidColumn, name)
	}
	return c, nil
}

// requireFinite rejects columns holding inf or -inf, which have no
// place on a binned or smoothed axis.
func requireFinite(c *Column) error {
	for _, v := range c.Floats {
		if math.IsInf(v, 0) {
			return fmt.Errorf("%w: %q contains infinite values", ErrNoValues, c.Name)
		}
	}
	return nil
}

func renderHistogram(t *Table, req ChartRequest, s RenderSettings) (*Chart, error) {
	c, err := numericColumn(t, req.X, "x")
	if err != nil {
		return nil, err
	}
	if err := requireFinite(c); err != nil {
		return nil, err
	}
	bins := HistogramBins(c.Floats, s.Bins)
	if bins == nil {
		return nil, fmt.Errorf("%w: %q has no values", ErrNoValues, c.Name)
	}

	title := "Histogram of " + c.Name
	img, err := chart.Histogram(title, bins, s.Options)
	if err != nil {
		return nil, fmt.Errorf("draw histogram: %w", err)
	}
	return &Chart{
		Kind:     ChartHistogram,
		Title:    title,
		FileName: chart.FileName(string(ChartHistogram), "png", c.Name),
		Image:    img,
	}, nil
}

func renderKDE(t *Table, req ChartRequest, s RenderSettings) (*Chart, error) {
	c, err := numericColumn(t, req.X, "x")
	if err != nil {
		return nil, err
	}
	if err := requireFinite(c); err != nil {
		return nil, err
	}
	xs, ys, err := KDE(c.Floats, s.KDEPoints)
	if err != nil {
		return nil, fmt.Errorf("%w: %q needs at least two distinct finite values", err, c.Name)
	}

	title := "KDE Plot of " + c.Name
	img, err := chart.Density(title, c.Name, xs, ys, s.Options)
	if err != nil {
		return nil, fmt.Errorf("draw density: %w", err)
	}
	return &Chart{
		Kind:     ChartKDE,
		Title:    title,
		FileName: chart.FileName(string(ChartKDE), "png", c.Name),
		Image:    img,
	}, nil
}

func renderScatter(t *Table, req ChartRequest, s RenderSettings) (*Chart, error) {
	x, err := numericColumn(t, req.X, "x")
	if err != nil {
		return nil, err
	}
	y, err := numericColumn(t, req.Y, "y")
	if err != nil {
		return nil, err
	}
	xs, ys := PairedValues(x.Floats, y.Floats)
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: %q and %q share no rows", ErrNoValues, x.Name, y.Name)
	}

	title := fmt.Sprintf("Scatter Plot: %s vs %s", x.Name, y.Name)
	html, err := chart.Scatter(title, x.Name, y.Name, xs, ys, chart.ScatterOptions{
		AssetsHost: s.AssetsHost,
	})
	if err != nil {
		return nil, fmt.Errorf("draw scatter: %w", err)
	}
	return &Chart{
		Kind:     ChartScatter,
		Title:    title,
		FileName: chart.FileName(string(ChartScatter), "html", x.Name, y.Name),
		HTML:     html,
	}, nil
}

func renderHeatmap(t *Table, _ ChartRequest, s RenderSettings) (*Chart, error) {
	names, matrix, err := Correlation(t)
	if err != nil {
		return nil, err
	}

	title := "Correlation Heatmap"
	img, err := chart.Heatmap(title, names, matrix, s.Options)
	if err != nil {
		return nil, fmt.Errorf("draw heatmap: %w", err)
	}
	return &Chart{
		Kind:     ChartHeatmap,
		Title:    title,
		FileName: chart.FileName(string(ChartHeatmap), "png"),
		Image:    img,
	}, nil
}
