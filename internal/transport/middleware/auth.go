package middleware

import (
	"net/http"
	"strings"

	"github.com/aidflow/fundflow-backend/internal/auth"
	"github.com/aidflow/fundflow-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (auth.Principal, error)
}

// Auth attaches the bearer token's principal to the request context.
// Requests without a token pass through anonymously.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			p, err := validator.ValidateAccessToken(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized: invalid token")
				return
			}
			ctx := ctxutil.WithPrincipal(r.Context(), p.Address, p.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
