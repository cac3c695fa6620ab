package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *Application {
	t.Helper()
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	dir := t.TempDir()
	cfg, err := LoadConfig()
	require.NoError(t, err)
	cfg.DB.Path = filepath.Join(dir, "roster.db")
	cfg.Keys.SigningKeyFile = filepath.Join(dir, "signing.pem")
	cfg.Keys.PepperFile = filepath.Join(dir, "pepper")
	cfg.Avatar.Dir = filepath.Join(dir, "avatars")
	cfg.BootstrapToken = "boot"
	cfg.ShutdownGracePeriod = time.Second

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.db.Close() })
	return a
}

func TestNewWiresReadyService(t *testing.T) {
	a := newTestApp(t)

	for _, path := range []string{"/livez", "/readyz", "/.well-known/jwks.json"} {
		rec := httptest.NewRecorder()
		a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, rec.Code, path)
	}
	require.FileExists(t, a.cfg.Keys.SigningKeyFile)
	require.FileExists(t, a.cfg.Keys.PepperFile)
}

func TestCORSPreflight(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/v1/users", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRunStopsOnCancel(t *testing.T) {
	a := newTestApp(t)
	a.server.Addr = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
