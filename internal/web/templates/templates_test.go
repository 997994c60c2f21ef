package templates

import (
	"bytes"
	"strings"
	"testing"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/a-h/templ"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(t.Context(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestHomeShowsAlert(t *testing.T) {
	out := renderString(t, Home(HomeParams{
		MaxSize: "32.0 MB",
		Error:   &Alert{Message: "No file has been loaded", Code: "DATA001"},
	}))
	for _, want := range []string{"<title>", "max 32.0 MB", "No file has been loaded", "Code: DATA001"} {
		if !strings.Contains(out, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestPreviewEscapesCells(t *testing.T) {
	out := renderString(t, Preview(PreviewParams{Preview: &core.Preview{
		FileName:     "x.csv",
		Headers:      []string{"name"},
		DTypes:       []string{"object"},
		Rows:         [][]string{{"<script>"}},
		TotalRows:    1,
		TotalColumns: 1,
	}}))
	if strings.Contains(out, "<script>") {
		t.Error("cell value was not escaped")
	}
	if !strings.Contains(out, "No numeric columns") {
		t.Error("missing no-numeric notice")
	}
}

func TestStatsMarksSelection(t *testing.T) {
	out := renderString(t, Stats(StatsParams{
		FileName: "x.csv",
		Choices:  core.Statistics(),
		Selected: "median",
	}))
	if !strings.Contains(out, `<option value="median" selected>`) {
		t.Errorf("median not selected:\n%s", out)
	}
}

func TestVisualizationsEmbedsInteractiveChart(t *testing.T) {
	var infos []core.ChartInfo
	for _, def := range core.Charts() {
		infos = append(infos, def.Info)
	}
	out := renderString(t, Visualizations(VisualizationsParams{
		FileName: "x.csv",
		Charts:   infos,
		Chart:    &core.Chart{Kind: core.ChartScatter, Title: "Scatter Plot: a vs b", HTML: `<div id="c">"quoted"</div>`},
	}))
	if !strings.Contains(out, `srcdoc="&lt;div id=&#34;c&#34;&gt;`) {
		t.Errorf("chart document not attribute-escaped:\n%s", out)
	}
	if !strings.Contains(out, `<option value="Scatter Plot">Scatter Plot</option>`) {
		t.Error("chart choices not listed")
	}
}

func TestErrorAlert(t *testing.T) {
	out := renderString(t, ErrorAlert("busy", "try later", "UPL001"))
	if !strings.Contains(out, `role="alert"`) || !strings.Contains(out, "try later") {
		t.Errorf("alert = %q", out)
	}
}
