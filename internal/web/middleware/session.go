package middleware

import (
	"net/http"
	"time"

	"github.com/JonMunkholm/tabscope/internal/core"
	"github.com/google/uuid"
)

// SessionOptions controls the session cookie.
type SessionOptions struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session identifies the caller by a random cookie, issuing one when the
// request carries none or a malformed one. The identifier is stored in the
// request context with core.ContextWithSessionID, together with the client
// IP address.
//
// The cookie is refreshed on every response so it expires TTL after the
// last request, matching the idle expiry of the session store.
func Session(opts SessionOptions) func(http.Handler) http.Handler {
	if opts.CookieName == "" {
		opts.CookieName = "tabscope_session"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := ""
			if c, err := r.Cookie(opts.CookieName); err == nil {
				if parsed, err := uuid.Parse(c.Value); err == nil {
					id = parsed.String()
				}
			}
			if id == "" {
				id = uuid.NewString()
			}

			cookie := &http.Cookie{
				Name:     opts.CookieName,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			}
			if opts.TTL > 0 {
				cookie.MaxAge = int(opts.TTL.Seconds())
			}
			http.SetCookie(w, cookie)

			ctx := core.ContextWithSessionID(r.Context(), id)
			ctx = core.ContextWithIPAddress(ctx, clientIP(r))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
