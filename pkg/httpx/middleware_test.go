package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("first"), mark("second"), mark("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"first", "second", "third"}, order)
}

func newKeyManager(t *testing.T) *jwtx.KeyManager {
	t.Helper()
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "roster-test", Audience: []string{"roster"}})
	require.NoError(t, err)
	return km
}

func signToken(t *testing.T, km *jwtx.KeyManager, subject string) (string, jwtx.Claims) {
	t.Helper()
	claims := jwtx.NewSessionClaims(
		jwtx.Identity{Subject: subject, Username: "alice"},
		time.Hour, "roster-test", []string{"roster"}, time.Now(),
	)
	tok, err := km.Signer.Sign(claims)
	require.NoError(t, err)
	return tok, claims
}

func TestAuthnMiddleware(t *testing.T) {
	km := newKeyManager(t)

	var seen string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = httpx.UserIDFromContext(r.Context())
		c, ok := httpx.ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "alice", c.Username)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token", func(t *testing.T) {
		tok, _ := signToken(t, km, "user-1")
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		httpx.AuthnMiddleware(km.Verifier, nil)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "user-1", seen)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(km.Verifier, nil)(inner).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Header().Get("WWW-Authenticate"), "invalid_token")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(km.Verifier, nil)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		tok, claims := signToken(t, km, "user-1")
		revoked := func(_ context.Context, jti string) (bool, error) {
			return jti == claims.ID, nil
		}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(km.Verifier, revoked)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revocation lookup fails", func(t *testing.T) {
		tok, _ := signToken(t, km, "user-1")
		broken := func(context.Context, string) (bool, error) { return false, errors.New("db down") }
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		httpx.AuthnMiddleware(km.Verifier, broken)(inner).ServeHTTP(rec, req)
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := httpx.BearerToken(req)
	require.False(t, ok)

	req.Header.Set("Authorization", "Basic abc")
	_, ok = httpx.BearerToken(req)
	require.False(t, ok)

	req.Header.Set("Authorization", "Bearer  abc ")
	tok, ok := httpx.BearerToken(req)
	require.True(t, ok)
	require.Equal(t, "abc", tok)
}

// withSubject runs the authn middleware with a real token so the subject
// lands in the context the same way it does in production.
func withSubject(t *testing.T, km *jwtx.KeyManager, subject string, admin bool, next http.Handler) (http.Handler, *http.Request) {
	t.Helper()
	tok, _ := signToken(t, km, subject)
	setAdmin := func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, r.WithContext(httpx.WithAdmin(r.Context(), admin)))
		})
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	return httpx.Chain(next, httpx.AuthnMiddleware(km.Verifier, nil), setAdmin), req
}

func TestRequireAdmin(t *testing.T) {
	km := newKeyManager(t)

	h, req := withSubject(t, km, "u1", false, httpx.RequireAdmin()(okHandler()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	h, req = withSubject(t, km, "u1", true, httpx.RequireAdmin()(okHandler()))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireSelfOrAdmin(t *testing.T) {
	km := newKeyManager(t)

	route := func(inner http.Handler) http.Handler {
		mux := http.NewServeMux()
		mux.Handle("GET /users/{id}", httpx.RequireSelfOrAdmin("id")(inner))
		return mux
	}

	cases := []struct {
		name    string
		subject string
		admin   bool
		path    string
		want    int
	}{
		{"self", "u1", false, "/users/u1", http.StatusOK},
		{"other", "u1", false, "/users/u2", http.StatusForbidden},
		{"admin on other", "u1", true, "/users/u2", http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, req := withSubject(t, km, tc.subject, tc.admin, route(okHandler()))
			req.URL.Path = tc.path
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tc.want, rec.Code)
		})
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	httpx.WriteError(rec, http.StatusNotFound, "not_found", "User not found")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.JSONEq(t, `{"error":"not_found","message":"User not found"}`, rec.Body.String())
}
