package httpapi

import (
	"net/http"
)

// apiKeyAuth returns middleware that validates the x-api-key header against
// the configured key. Requests with a missing or wrong key get 403.
func apiKeyAuth(apiKey string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("x-api-key") != apiKey {
				writeError(w, http.StatusForbidden, "Invalid API Key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
