package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

type principalKey struct{}

// principalMiddleware reloads the token subject from the store. The admin
// flag and the audit actor come from the stored user, never from claims.
// Must run after httpx.AuthnMiddleware.
func principalMiddleware(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			u, err := auth.Principal(ctx, httpx.UserIDFromContext(ctx))
			switch {
			case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrAccountLocked):
				slogx.FromContext(ctx).Warn("principal rejected", "err", err)
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "Account is not active")
				return
			case err != nil:
				slogx.FromContext(ctx).Error("principal lookup failed", "err", err)
				httpx.WriteError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
				return
			}

			ctx = httpx.WithAdmin(ctx, u.IsAdmin)
			ctx = service.WithActor(ctx, service.Actor{ID: u.ID, Name: u.Username})
			ctx = context.WithValue(ctx, principalKey{}, u)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// principalFromContext returns the user loaded by principalMiddleware.
func principalFromContext(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(principalKey{}).(domain.User)
	return u, ok
}
