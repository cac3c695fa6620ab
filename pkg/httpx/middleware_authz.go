package httpx

import "net/http"

// RequireAdmin lets the request through only when the context carries a
// store-confirmed admin flag (see WithAdmin).
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdmin(r.Context()) {
				WriteError(w, http.StatusForbidden, "forbidden", "Administrator access is required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSelfOrAdmin allows admins, and callers whose subject equals the
// path value named param.
func RequireSelfOrAdmin(param string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if IsAdmin(ctx) {
				next.ServeHTTP(w, r)
				return
			}

			self := UserIDFromContext(ctx)
			if self == "" || self != r.PathValue(param) {
				WriteError(w, http.StatusForbidden, "forbidden", "You can only manage your own account")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
