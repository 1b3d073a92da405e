package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/heartmarshall/ewasl-backend/internal/config"
)

// CORS answers preflight requests and marks responses for allowed origins.
// The dashboard origins in trusted are always allowed, whatever the
// configured list says.
func CORS(cfg config.CORSConfig, trusted ...string) Middleware {
	allowed, wildcard := parseOrigins(cfg.AllowedOrigins, trusted)
	maxAge := strconv.Itoa(cfg.MaxAge)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add("Vary", "Origin")

			if origin := r.Header.Get("Origin"); origin != "" && (wildcard || allowed[origin]) {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Expose-Headers", RequestIDHeader)
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", cfg.AllowedMethods)
				h.Set("Access-Control-Allow-Headers", cfg.AllowedHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func parseOrigins(list string, trusted []string) (map[string]bool, bool) {
	allowed := make(map[string]bool)
	wildcard := false
	for _, o := range append(strings.Split(list, ","), trusted...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		switch o {
		case "":
		case "*":
			wildcard = true
		default:
			allowed[o] = true
		}
	}
	return allowed, wildcard
}
