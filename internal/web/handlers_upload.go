package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/web/templates"
)

// multipartOverhead is headroom for form boundaries and headers on top of
// the file size limit.
const multipartOverhead = 1 << 20

// handleUpload parses the "file" form field into the caller's session and
// shows a preview. Failures are shown on the landing page.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxSize := s.cfg.Upload.MaxFileSize
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	if err := r.ParseMultipartForm(maxSize); err != nil {
		s.respondError(w, r, uploadFormError(err), nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		s.respondError(w, r, core.ErrNoFile, nil)
		return
	}
	defer file.Close()

	sessionID := core.SessionIDFromContext(r.Context())
	preview, err := s.service.Upload(r.Context(), sessionID, header.Filename, file, header.Size)
	if err != nil {
		s.respondError(w, r, err, nil)
		return
	}

	if wantsJSON(r) {
		writeJSON(w, http.StatusOK, preview)
		return
	}
	renderPage(w, r, http.StatusOK, templates.Preview(templates.PreviewParams{Preview: preview}))
}

// uploadFormError classifies a multipart parsing failure.
func uploadFormError(err error) error {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return fmt.Errorf("%w: limit %d bytes", core.ErrFileTooLarge, mbe.Limit-multipartOverhead)
	}
	if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingFile) {
		return core.ErrNoFile
	}
	return fmt.Errorf("%w: %v", core.ErrNoFile, err)
}
