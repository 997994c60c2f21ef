package web

// errors.go provides unified error response handling for the web layer.
//
// It ensures all errors are:
//   - Logged with full technical details for debugging (server-side)
//   - Returned to clients as user-friendly messages with action suggestions
//   - Rendered into the page the user was on, or as JSON when asked for
//
// The error flow:
//  1. Handler encounters an error
//  2. Calls respondError(w, r, err, page)
//  3. Error is mapped via core.MapError to get user-friendly message
//  4. Technical error + context is logged with request ID for correlation
//  5. User message is rendered into page, or the landing page when nothing
//     is loaded

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/logging"
	"github.com/JonMunkholm/tabscope/internal/web/templates"
	"github.com/a-h/templ"
)

// ErrorResponse represents the JSON structure for error responses.
// Includes both machine-readable (Code) and human-readable (Message, Action) fields.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Action  string `json:"action,omitempty"`
	Code    string `json:"code"`
}

// errorPage builds the page an error is shown on.
type errorPage func(alert *templates.Alert) templ.Component

// respondError logs err and answers with its user-facing message. page
// renders the message in context; when nil, or when no data is loaded, the
// landing page is used instead.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, page errorPage) {
	userMsg := core.MapError(err)
	status := logRequestError(r, err)

	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}

	if page == nil || errors.Is(err, core.ErrNoDataLoaded) {
		page = s.homePage(r)
	}
	renderPage(w, r, status, page(templates.AlertFrom(userMsg)))
}

// logRequestError logs err with request context and returns the status it
// maps to. Errors with a specific user message are logged as warnings.
func logRequestError(r *http.Request, err error) int {
	status := statusFor(err)
	logger := logging.WithFields(r.Context(),
		"session_id", core.SessionIDFromContext(r.Context()),
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"code", core.MapError(err).Code,
	)
	if core.IsUserFacing(err) {
		logger.Warn("request error", "error", err.Error())
	} else {
		logger.Error("request error", "error", err.Error())
	}
	return status
}

// respondStatus answers with a fixed status and a technical message that is
// mapped like any other error. Used by middleware that runs before a page
// is known.
func respondStatus(w http.ResponseWriter, r *http.Request, status int, message string) {
	userMsg := core.MapError(errors.New(message))
	if wantsJSON(r) {
		respondErrorJSON(w, userMsg, status)
		return
	}
	renderPage(w, r, status, templates.ErrorAlert(userMsg.Message, userMsg.Action, userMsg.Code))
}

// respondErrorJSON writes a JSON error response.
func respondErrorJSON(w http.ResponseWriter, msg core.UserMessage, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{
		Error:   msg.Message,
		Message: msg.Message,
		Action:  msg.Action,
		Code:    msg.Code,
	})
}

// renderPage writes an HTML component with the given status.
func renderPage(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}

// statusFor picks the HTTP status for a domain error.
func statusFor(err error) int {
	var pe *core.ParseError
	var mbe *http.MaxBytesError
	switch {
	case errors.Is(err, core.ErrNoDataLoaded):
		return http.StatusNotFound
	case errors.Is(err, core.ErrFileTooLarge), errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &pe),
		errors.Is(err, core.ErrNoFile),
		errors.Is(err, core.ErrEmptyFile):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrInvalidColumn),
		errors.Is(err, core.ErrUnsupportedStatistic),
		errors.Is(err, core.ErrUnsupportedChart),
		errors.Is(err, core.ErrInsufficientColumns),
		errors.Is(err, core.ErrNoValues):
		return http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrTooManyUploads), errors.Is(err, core.ErrTooManyCharts):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// wantsJSON checks if the client prefers JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
