package web

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/web/templates"
	"github.com/a-h/templ"
)

// visualizationsPage returns the chart page builder for d and the
// submitted form values.
func visualizationsPage(d *core.Dataset, req core.ChartRequest, c *core.Chart) errorPage {
	infos := make([]core.ChartInfo, 0, 4)
	for _, def := range core.Charts() {
		infos = append(infos, def.Info)
	}

	selected := req.Choice
	if def, err := core.ResolveChart(req.Choice); err == nil {
		selected = def.Info.Label
	}

	params := templates.VisualizationsParams{
		FileName: d.FileName,
		Charts:   infos,
		Columns:  d.Table.NumericNames(),
		Selected: selected,
		X:        req.X,
		Y:        req.Y,
		Chart:    c,
	}
	if c != nil && c.Image != nil {
		// Rendered by us from a PNG; safe as an img src.
		params.ImageURL = template.URL(c.Image.DataURL())
	}

	return func(alert *templates.Alert) templ.Component {
		params.Error = alert
		return templates.Visualizations(params)
	}
}

// handleVisualizationsForm renders the chart form with the numeric
// columns as axis choices.
func (s *Server) handleVisualizationsForm(w http.ResponseWriter, r *http.Request) {
	d, err := s.service.Dataset(core.SessionIDFromContext(r.Context()))
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}
	renderPage(w, r, http.StatusOK, visualizationsPage(d, core.ChartRequest{}, nil)(nil))
}

// handleVisualize draws the chart named by vis_choice using x_axis and
// y_axis. An empty choice re-renders the form.
func (s *Server) handleVisualize(w http.ResponseWriter, r *http.Request) {
	sessionID := core.SessionIDFromContext(r.Context())
	d, err := s.service.Dataset(sessionID)
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}

	req := core.ChartRequest{
		Choice: strings.TrimSpace(r.FormValue("vis_choice")),
		X:      r.FormValue("x_axis"),
		Y:      r.FormValue("y_axis"),
	}
	if req.Choice == "" {
		renderPage(w, r, http.StatusOK, visualizationsPage(d, req, nil)(nil))
		return
	}

	c, err := s.service.Visualize(r.Context(), sessionID, req)
	if err != nil {
		s.respondError(w, r, err, visualizationsPage(d, req, nil))
		return
	}

	if wantsJSON(r) {
		resp := map[string]string{
			"kind":      string(c.Kind),
			"title":     c.Title,
			"file_name": c.FileName,
		}
		if c.Image != nil {
			resp["image"] = c.Image.Base64()
			resp["mime"] = c.Image.MIME
		} else {
			resp["html"] = c.HTML
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}
	renderPage(w, r, http.StatusOK, visualizationsPage(d, req, c)(nil))
}
