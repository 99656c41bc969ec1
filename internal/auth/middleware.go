package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// HeaderAPIKey carries the shared secret on protected routes.
const HeaderAPIKey = "X-API-Key"

// APIKeyMiddleware rejects every request whose X-API-Key header is not
// exactly secret. An empty secret rejects everything.
func APIKeyMiddleware(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderAPIKey)
			if secret == "" || key != secret {
				slog.Warn("api key rejected",
					"path", r.URL.Path,
					"remote", r.RemoteAddr,
					"key_present", key != "",
					"secret_configured", secret != "")
				unauthorized(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"detail": "Unauthorized"})
}
