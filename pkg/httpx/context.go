package httpx

import (
	"context"

	"github.com/aussiebroadwan/roster/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyUserID  ctxKey = "user_id"
	CtxKeyClaims  ctxKey = "claims"
	CtxKeyIsAdmin ctxKey = "is_admin" // set from the user store, never from claims
)

// UserIDFromContext returns the authenticated subject, or "".
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(CtxKeyUserID).(string)
	return id
}

// ClaimsFromContext returns the verified token claims.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// WithAdmin records whether the caller currently holds admin rights.
func WithAdmin(ctx context.Context, isAdmin bool) context.Context {
	return context.WithValue(ctx, CtxKeyIsAdmin, isAdmin)
}

// IsAdmin reports the flag stored by WithAdmin. Missing means false.
func IsAdmin(ctx context.Context) bool {
	v, _ := ctx.Value(CtxKeyIsAdmin).(bool)
	return v
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyUserID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}
