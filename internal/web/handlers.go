package web

import (
	"net/http"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/web/templates"
	"github.com/a-h/templ"
)

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status        string `json:"status"`
	Sessions      int    `json:"sessions"`
	UploadsActive int    `json:"uploads_active"`
	ChartsActive  int    `json:"charts_active"`
}

// homePage returns the landing page builder for the caller's session.
func (s *Server) homePage(r *http.Request) errorPage {
	params := templates.HomeParams{MaxSize: formatBytes(s.cfg.Upload.MaxFileSize)}
	if d, err := s.service.Dataset(core.SessionIDFromContext(r.Context())); err == nil {
		params.FileName = d.FileName
	}
	return func(alert *templates.Alert) templ.Component {
		params.Error = alert
		return templates.Home(params)
	}
}

// handleHome renders the upload form.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, s.homePage(r)(nil))
}

// handleHealth reports liveness plus session and limiter occupancy.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.service.Status()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Sessions:      st.Sessions,
		UploadsActive: st.UploadsActive,
		ChartsActive:  st.ChartsActive,
	})
}
