package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/ewasl-backend/pkg/ctxutil"
)

// accessTokenParam carries the session on GET requests the dashboard opens
// in a popup, where it cannot set headers.
const accessTokenParam = "access_token"

type tokenValidator interface {
	ValidateToken(ctx context.Context, token string) (uuid.UUID, error)
}

// Auth resolves the session token into the user id on the context.
// Requests without a token pass through anonymously; a bad token is
// rejected with 401.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := requestToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token", codeUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithUserID(r.Context(), userID)))
		})
	}
}

// RequireUser rejects anonymous requests. It must run after Auth.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ctxutil.UserIDFromCtx(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "authentication required", codeUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestToken prefers the Authorization header. GET requests may fall
// back to the access_token query parameter.
func requestToken(r *http.Request) string {
	if t := extractBearerToken(r); t != "" {
		return t
	}
	if r.Method == http.MethodGet {
		return strings.TrimSpace(r.URL.Query().Get(accessTokenParam))
	}
	return ""
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
