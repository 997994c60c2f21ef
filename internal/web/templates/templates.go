// Package templates holds the page components of the web UI.
//
// Pages are html/template files embedded in the binary and exposed as
// templ.Component values, so handlers render them the same way whatever
// produced the markup:
//
//	templates.Home(params).Render(r.Context(), w)
package templates

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/a-h/templ"
)

//go:embed *.html
var files embed.FS

var funcs = template.FuncMap{
	"formatNumber": core.FormatNumber,
	"join":         strings.Join,
}

// pages maps a page file to its parsed set: the shared layout, the shared
// partials and the page's own "title" and "content" blocks.
var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home.html", "preview.html", "stats.html", "visualizations.html"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(files, "layout.html", "error_alert.html", name))
	}
	pages["error_alert.html"] = template.Must(template.New("error_alert.html").Funcs(funcs).ParseFS(files, "error_alert.html"))
}

func render(page, name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		t, ok := pages[page]
		if !ok {
			return fmt.Errorf("unknown page: %s", page)
		}
		return t.ExecuteTemplate(w, name, data)
	})
}

// Alert is a user-facing error shown at the top of a page.
type Alert struct {
	Message string
	Action  string
	Code    string
}

// AlertFrom converts a mapped error message into an Alert.
func AlertFrom(msg core.UserMessage) *Alert {
	return &Alert{Message: msg.Message, Action: msg.Action, Code: msg.Code}
}

// HomeParams feeds the upload page.
type HomeParams struct {
	Error    *Alert
	FileName string // current dataset, empty when nothing is loaded
	MaxSize  string
}

// Home renders the upload form.
func Home(p HomeParams) templ.Component {
	return render("home.html", "layout", p)
}

// PreviewParams feeds the page shown after a successful upload.
type PreviewParams struct {
	Preview *core.Preview
}

// Preview renders the head of an uploaded table.
func Preview(p PreviewParams) templ.Component {
	return render("preview.html", "layout", p)
}

// StatsParams feeds the statistics page.
type StatsParams struct {
	FileName string
	Choices  []core.StatInfo
	Selected string
	Result   *core.Statistic
	Error    *Alert
}

// Stats renders the statistic form and, when set, its result.
func Stats(p StatsParams) templ.Component {
	return render("stats.html", "layout", p)
}

// VisualizationsParams feeds the chart page.
type VisualizationsParams struct {
	FileName string
	Charts   []core.ChartInfo
	Columns  []string
	Selected string
	X        string
	Y        string
	Chart    *core.Chart
	ImageURL template.URL
	Error    *Alert
}

// Visualizations renders the chart form and, when set, the drawn chart.
func Visualizations(p VisualizationsParams) templ.Component {
	return render("visualizations.html", "layout", p)
}

// ErrorAlert renders the alert fragment alone.
func ErrorAlert(message, action, code string) templ.Component {
	return render("error_alert.html", "error_alert", Alert{Message: message, Action: action, Code: code})
}
