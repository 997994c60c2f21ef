package web

import (
	"net/http"
	"strings"

	"github.com/JonMunkholm/tabscope/internal/chart"
	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/web/templates"
	"github.com/a-h/templ"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// statsPage returns the statistics page builder for d.
func statsPage(d *core.Dataset, selected string, result *core.Statistic) errorPage {
	return func(alert *templates.Alert) templ.Component {
		return templates.Stats(templates.StatsParams{
			FileName: d.FileName,
			Choices:  core.Statistics(),
			Selected: selected,
			Result:   result,
			Error:    alert,
		})
	}
}

// handleStatsForm renders the statistic choice form.
func (s *Server) handleStatsForm(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.Dataset(core.SessionIDFromContext(r.Context()))
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}
	renderPage(w, r, http.StatusOK, statsPage(d, "", nil)(nil))
}

// handleStats computes the statistic named by stat_choice. An empty choice
// re-renders the form.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	sessionID := core.SessionIDFromContext(r.Context())
	d, err := s.service.Dataset(sessionID)
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}

	choice := strings.TrimSpace(r.FormValue("stat_choice"))
	if choice == "" {
		renderPage(w, r, http.StatusOK, statsPage(d, "", nil)(nil))
		return
	}

	res, err := s.service.Statistic(r.Context(), sessionID, choice)
	if err != nil {
		s.respondError(w, r, err, statsPage(d, choice, nil))
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, map[string]any{
			"statistic": res.Kind,
			"value":     res.Map(),
		})
		return
	}
	renderPage(w, r, http.StatusOK, statsPage(d, choice, res)(nil))
}

// handleStatsExport downloads every statistic for every numeric column as
// a table. ?format= selects text (default), markdown or csv.
func (s *Server) handleStatsExport(w http.ResponseWriter, r *http.Request) {
	sessionID := core.SessionIDFromContext(r.Context())
	d, err := s.service.Dataset(sessionID)
	if err != nil {
		s.respondExportError(w, r, err)
		return
	}
	summary, err := s.service.Summary(r.Context(), sessionID)
	if err != nil {
		s.respondExportError(w, r, err)
		return
	}

	tw := summaryTable(summary)
	var body, ext, contentType string
	switch r.URL.Query().Get("format") {
	case "markdown", "md":
		body, ext, contentType = tw.RenderMarkdown(), "md", "text/markdown; charset=utf-8"
	case "csv":
		body, ext, contentType = tw.RenderCSV(), "csv", "text/csv; charset=utf-8"
	default:
		body, ext, contentType = tw.Render(), "txt", "text/plain; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+chart.FileName("summary", ext, d.FileName)+`"`)
	w.Write([]byte(body + "\n"))
}

// respondExportError answers export failures in plain text, since there is
// no page to render into.
func (s *Server) respondExportError(w http.ResponseWriter, r *http.Request, err error) {
	if wantsJSON(r) {
		s.respondError(w, r, err, nil)
		return
	}
	logRequestError(r, err)
	http.Error(w, core.FormatUserError(err), statusFor(err))
}

// summaryTable lays out a summary with one row per column and one column
// per statistic. Undefined values are left blank.
func summaryTable(s *core.Summary) table.Writer {
	tw := table.NewWriter()

	header := table.Row{"Column"}
	configs := make([]table.ColumnConfig, 0, len(s.Kinds))
	for i, k := range s.Kinds {
		header = append(header, string(k.Kind))
		configs = append(configs, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, row := range s.Rows {
		cells := table.Row{row.Column}
		for i, v := range row.Values {
			if row.Defined[i] {
				cells = append(cells, core.FormatNumber(v))
			} else {
				cells = append(cells, "")
			}
		}
		tw.AppendRow(cells)
	}

	tw.SetStyle(table.StyleLight)
	return tw
}
