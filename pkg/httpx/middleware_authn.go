package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// RevocationChecker reports whether a token id has been revoked (logout).
type RevocationChecker func(ctx context.Context, jti string) (bool, error)

// AuthnMiddleware verifies the bearer token and puts its claims in the
// request context. When revoked is non-nil, logged out tokens are refused.
func AuthnMiddleware(v jwtx.Verifier, revoked RevocationChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := BearerToken(r)
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			claims, err := v.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			if revoked != nil {
				isRevoked, err := revoked(ctx, claims.ID)
				if err != nil {
					log.Error("revocation lookup failed", "err", err)
					WriteError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
					return
				}
				if isRevoked {
					writeBearerError(w, "token revoked")
					return
				}
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.With(ctx, "user_id", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from an "Authorization: Bearer" header.
func BearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if !strings.HasPrefix(authz, "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	return raw, raw != ""
}

// RFC 6750 error for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "unauthorized", desc)
}
