// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/JonMunkholm/tabscope/internal/logging"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Logger is an HTTP middleware that logs one structured line per request.
//
// It must run after RequestID and Session so the line carries request_id
// and session_id. Static assets are logged at debug level.
//
// Log fields:
//   - method, path, status
//   - bytes: response body size
//   - duration_ms: request processing time in milliseconds
//   - ip: client IP (after TrustedRealIP)
//   - session_id: caller session
//   - user_agent
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		ctx := r.Context()
		ip := core.IPAddressFromContext(ctx)
		if ip == "" {
			ip = clientIP(r)
		}

		logger := logging.FromContext(ctx)
		log := logger.Info
		if strings.HasPrefix(r.URL.Path, "/static/") {
			log = logger.Debug
		}
		log("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", ip,
			"session_id", core.SessionIDFromContext(ctx),
			"user_agent", r.UserAgent(),
		)
	})
}
