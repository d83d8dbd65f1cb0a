package httpapi

import (
	"net/http"
	"strings"

	"github.com/spex2024/ug-dashboard/internal/upstream"
)

// guardExempt lists the API paths reachable without a session cookie.
var guardExempt = map[string]bool{
	"/api/admin/login": true,
	"/healthz":         true,
	"/readyz":          true,
	"/metrics":         true,
}

// Guard enforces the dashboard's route rules from cookie presence alone.
// Token validity is the upstream backend's problem; a stale cookie simply
// produces upstream 401s on the API calls behind it.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := r.Cookie(upstream.TokenCookie)
		hasCookie := err == nil

		path := r.URL.Path
		switch {
		case path == "/login":
			if hasCookie {
				http.Redirect(w, r, "/dashboard", http.StatusFound)
				return
			}
		case path == "/" || path == "/dashboard" || strings.HasPrefix(path, "/dashboard/"):
			if !hasCookie {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
		case strings.HasPrefix(path, "/api/"):
			if !hasCookie && !guardExempt[path] {
				writeError(w, r, http.StatusUnauthorized, "authentication required")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
