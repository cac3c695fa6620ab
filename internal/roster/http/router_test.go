package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/avatar"
	rosterhttp "github.com/aussiebroadwan/roster/internal/roster/http"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/stretchr/testify/require"
)

const (
	testPassword   = "Secret1!"
	bootstrapToken = "boot-token"
)

// pngHeader is enough for content sniffing to report image/png.
var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "roster-http")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

type testServer struct {
	store  *sqlite.Store
	srv    *httptest.Server
	client *rostersdk.Client
	admin  *rostersdk.Session
}

// newTestServer wires the full router over an in-memory store and signs in
// as a bootstrapped administrator.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWithClock(t, nil)
}

// newTestServerWithClock is newTestServer with the user service reading
// time from now.
func newTestServerWithClock(t *testing.T, now func() time.Time) *testServer {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(sqlite.DSN(":memory:"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	aud := []string{"roster-client"}
	km, err := jwtx.NewKeyManager(jwtx.KeyManagerOptions{Issuer: "roster", Audience: aud})
	require.NoError(t, err)

	fs, err := avatar.NewFS(t.TempDir())
	require.NoError(t, err)

	v := &service.VersioningService{}
	router := rosterhttp.NewRouter(km.KeySet, km.Verifier, "test", st, fs, slog.New(slog.DiscardHandler))
	router.AuthService = &service.AuthService{Store: st, Versioning: v, Signer: km.Signer, Issuer: "roster", Audience: aud}
	router.UserService = &service.UserService{Store: st, Versioning: v, Avatars: fs, Now: now}
	router.HistoryService = &service.HistoryService{Store: st, Versioning: v}
	router.AvatarService = &service.AvatarService{Store: st, Versioning: v, Storage: fs}
	router.MFAService = &service.MFAService{Store: st, Versioning: v, Issuer: "Roster"}
	router.BootstrapService = &service.BootstrapService{Store: st, Versioning: v, Token: bootstrapToken}
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	client := rostersdk.NewClient(srv.URL)
	_, err = client.Bootstrap(ctx, bootstrapToken, rostersdk.BootstrapRequest{
		Username: "root", Email: "root@x.com", Password: testPassword, Name: "Root",
	})
	require.NoError(t, err)

	admin, err := client.Login(ctx, rostersdk.LoginRequest{Email: "root@x.com", Password: testPassword})
	require.NoError(t, err)

	return &testServer{store: st, srv: srv, client: client, admin: admin}
}

func (ts *testServer) createUser(t *testing.T, username string) *rostersdk.User {
	t.Helper()
	u, err := ts.admin.CreateUser(context.Background(), rostersdk.CreateUserRequest{
		Username: username,
		Email:    username + "@x.com",
		Password: testPassword,
		Name:     strings.ToUpper(username[:1]) + username[1:],
	})
	require.NoError(t, err)
	return u
}

func (ts *testServer) login(t *testing.T, username string) *rostersdk.Session {
	t.Helper()
	s, err := ts.client.Login(context.Background(), rostersdk.LoginRequest{Email: username + "@x.com", Password: testPassword})
	require.NoError(t, err)
	return s
}

// get issues a raw request with the admin token.
func (ts *testServer) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, ts.srv.URL+path, nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+ts.admin.Token())
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func requireAPIError(t *testing.T, err error, status int, code string) *rostersdk.APIError {
	t.Helper()
	var apiErr *rostersdk.APIError
	require.True(t, errors.As(err, &apiErr), "expected API error, got %v", err)
	require.Equal(t, status, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestUserLifecycle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	alice := ts.createUser(t, "alice")
	require.Equal(t, "/avatars/default.png", alice.AvatarPath)

	newName := "Alice Smith"
	updated, err := ts.admin.UpdateUser(ctx, alice.ID, rostersdk.UpdateUserRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, newName, updated.Name)

	history, err := ts.admin.History(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, 2, history[0].VersionNumber)
	require.Equal(t, 1, history[1].VersionNumber)

	restored, err := ts.admin.Restore(ctx, alice.ID, history[1].VersionID)
	require.NoError(t, err)
	require.Equal(t, 1, restored.RestoredFromVersion)
	require.Equal(t, "Alice", restored.User.Name)

	audit, err := ts.admin.AuditLogs(ctx, rostersdk.AuditQuery{UserID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, 3, audit.TotalCount)
	require.Equal(t, "Restore", audit.Logs[0].Action)
	require.Equal(t, "root", audit.Logs[0].UserName)

	changes, err := audit.Logs[1].DecodeChanges()
	require.NoError(t, err)
	require.Equal(t, "Alice", changes.Old["name"])
	require.Equal(t, newName, changes.New["name"])

	updates, err := ts.admin.AuditLogs(ctx, rostersdk.AuditQuery{UserID: alice.ID, Action: "Update"})
	require.NoError(t, err)
	require.Equal(t, 1, updates.TotalCount)

	require.NoError(t, ts.admin.DeleteUser(ctx, alice.ID))

	_, err = ts.admin.GetUser(ctx, alice.ID)
	requireAPIError(t, err, http.StatusNotFound, rostersdk.ErrorCodeNotFound)

	audit, err = ts.admin.AuditLogs(ctx, rostersdk.AuditQuery{UserID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, 4, audit.TotalCount)
	require.Equal(t, "Delete", audit.Logs[0].Action)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.admin.CreateUser(ctx, rostersdk.CreateUserRequest{Username: "x", Email: "nope", Password: "weak"})
	apiErr := requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeValidation)
	require.Contains(t, apiErr.Details, "username")
	require.Contains(t, apiErr.Details, "email")
	require.Contains(t, apiErr.Details, "password")

	ts.createUser(t, "bob")
	_, err = ts.admin.CreateUser(ctx, rostersdk.CreateUserRequest{Username: "BOB", Email: "other@x.com", Password: testPassword})
	apiErr = requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeValidation)
	require.Equal(t, "username is already taken", apiErr.Details["username"])
}

func TestListUsers(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"carol", "dave", "erin"} {
		ts.createUser(t, name)
	}

	page, err := ts.admin.ListUsers(ctx, rostersdk.ListUsersParams{PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 4, page.TotalCount)
	require.Len(t, page.Users, 2)
	require.Equal(t, "root", page.Users[0].Username)

	page, err = ts.admin.ListUsers(ctx, rostersdk.ListUsersParams{PageIndex: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page.Users, 2)
	require.Equal(t, "dave", page.Users[0].Username)

	page, err = ts.admin.ListUsers(ctx, rostersdk.ListUsersParams{Search: "ERI"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalCount)
	require.True(t, page.Users[0].IsActive)

	resp := ts.get(t, "/v1/users?page=1&pageSize=3")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "4", resp.Header.Get("X-Total-Count"))
	var body rostersdk.UserListResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Users, 1)

	resp = ts.get(t, "/v1/users?pageIndex=abc&isActive=maybe")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var verr rostersdk.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&verr))
	require.Equal(t, rostersdk.ErrorCodeValidation, verr.Error)
	require.Contains(t, verr.Details, "pageIndex")
	require.Contains(t, verr.Details, "isActive")
}

func TestStatusToggle(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	frank := ts.createUser(t, "frank")
	frankSession := ts.login(t, "frank")

	res, err := ts.admin.SetStatus(ctx, frank.ID, false)
	require.NoError(t, err)
	require.False(t, res.IsActive)
	require.NotNil(t, res.LockoutEnd)
	require.Equal(t, "User deactivated successfully", res.Message)

	// The token is still valid but the account behind it is not.
	_, err = frankSession.Check(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized)

	_, err = ts.client.Login(ctx, rostersdk.LoginRequest{Email: "frank@x.com", Password: testPassword})
	requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeAccountLock)

	page, err := ts.admin.ListUsers(ctx, rostersdk.ListUsersParams{IsActive: new(bool)})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalCount)
	require.Equal(t, "frank", page.Users[0].Username)

	res, err = ts.admin.SetStatus(ctx, frank.ID, true)
	require.NoError(t, err)
	require.True(t, res.IsActive)
	require.Nil(t, res.LockoutEnd)
}

func TestLockoutStateFollowsServiceClock(t *testing.T) {
	t.Parallel()
	later := time.Now().Add(time.Hour)
	ts := newTestServerWithClock(t, func() time.Time { return later })
	ctx := context.Background()

	gina := ts.createUser(t, "gina")
	require.NoError(t, ts.store.Users().Lock(ctx, gina.ID, time.Now().Add(5*time.Minute)))

	// The lockout has lapsed on the service clock, so the filter and the
	// reported state must both say active.
	page, err := ts.admin.ListUsers(ctx, rostersdk.ListUsersParams{IsActive: new(bool)})
	require.NoError(t, err)
	require.Zero(t, page.TotalCount)

	page, err = ts.admin.ListUsers(ctx, rostersdk.ListUsersParams{Search: "gina"})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalCount)
	require.True(t, page.Users[0].IsActive)
	require.NotNil(t, page.Users[0].LockoutEnd)
}

func TestSelfProtection(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()
	me := ts.admin.User()

	err := ts.admin.DeleteUser(ctx, me.ID)
	requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeValidation)

	_, err = ts.admin.SetStatus(ctx, me.ID, false)
	requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeValidation)

	audit, err := ts.admin.AuditLogs(ctx, rostersdk.AuditQuery{UserID: me.ID})
	require.NoError(t, err)
	require.Equal(t, 1, audit.TotalCount, "only the bootstrap create is audited")
}

func TestNonAdminIsForbidden(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	registered, err := ts.client.Register(ctx, rostersdk.RegisterRequest{
		Username: "gina", Email: "gina@x.com", Password: testPassword,
	})
	require.NoError(t, err)
	require.False(t, registered.IsAdmin)

	gina := ts.login(t, "gina")

	_, err = gina.ListUsers(ctx, rostersdk.ListUsersParams{})
	requireAPIError(t, err, http.StatusForbidden, rostersdk.ErrorCodeForbidden)

	_, err = gina.GetUser(ctx, ts.admin.User().ID)
	requireAPIError(t, err, http.StatusForbidden, rostersdk.ErrorCodeForbidden)

	me, err := gina.Check(ctx)
	require.NoError(t, err)
	require.Equal(t, registered.ID, me.ID)
}

func TestLoginAndLogout(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	_, err := ts.client.Login(ctx, rostersdk.LoginRequest{Email: "root@x.com", Password: "Wrong1!!"})
	apiErr := requireAPIError(t, err, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized)
	require.Equal(t, "Check your login credentials and try again", apiErr.Message)

	_, err = ts.client.Login(ctx, rostersdk.LoginRequest{Email: "nobody@x.com", Password: testPassword})
	requireAPIError(t, err, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized)

	me, err := ts.admin.Check(ctx)
	require.NoError(t, err)
	require.True(t, me.IsAdmin)

	require.NoError(t, ts.admin.Logout(ctx))

	_, err = ts.admin.Check(ctx)
	requireAPIError(t, err, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized)
}

func TestAvatarUpload(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	hank := ts.createUser(t, "hank")
	ivy := ts.createUser(t, "ivy")
	hankSession := ts.login(t, "hank")

	res, err := hankSession.UploadAvatar(ctx, hank.ID, "me.png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.AvatarPath, "/avatars/"+hank.ID+"_"))
	require.True(t, strings.HasSuffix(res.AvatarPath, ".png"))

	body, ct, err := ts.client.FetchAvatar(ctx, res.AvatarPath)
	require.NoError(t, err)
	require.Equal(t, pngHeader, body)
	require.Equal(t, "image/png", ct)

	// Only admins may change someone else's avatar.
	_, err = hankSession.UploadAvatar(ctx, ivy.ID, "x.png", "image/png", bytes.NewReader(pngHeader))
	requireAPIError(t, err, http.StatusForbidden, rostersdk.ErrorCodeForbidden)

	_, err = hankSession.UploadAvatar(ctx, hank.ID, "x.png", "image/png", strings.NewReader("plain text"))
	requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeBadRequest)

	removed, err := hankSession.DeleteAvatar(ctx, hank.ID)
	require.NoError(t, err)
	require.Equal(t, "/avatars/default.png", removed.AvatarPath)

	_, _, err = ts.client.FetchAvatar(ctx, res.AvatarPath)
	requireAPIError(t, err, http.StatusNotFound, rostersdk.ErrorCodeNotFound)

	_, err = hankSession.DeleteAvatar(ctx, hank.ID)
	apiErr := requireAPIError(t, err, http.StatusBadRequest, rostersdk.ErrorCodeBadRequest)
	require.Equal(t, "User does not have a custom avatar", apiErr.Message)

	body, ct, err = ts.client.FetchAvatar(ctx, "/avatars/default.png")
	require.NoError(t, err)
	require.NotEmpty(t, body)
	require.Equal(t, "image/png", ct)
}

func TestExportCSV(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	ts.createUser(t, "jack")

	out, err := ts.admin.ExportUsersCSV(ctx, rostersdk.ListUsersParams{Search: "jack"})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "Id,Username,Email"))
	require.Contains(t, lines[1], "jack@x.com")

	resp := ts.get(t, "/v1/users/export?format=xlsx")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBootstrapOnlyOnce(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	_, err := ts.client.Bootstrap(context.Background(), bootstrapToken, rostersdk.BootstrapRequest{
		Username: "second", Email: "second@x.com", Password: testPassword,
	})
	requireAPIError(t, err, http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized)
}

func TestSystemEndpoints(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)
	ctx := context.Background()

	live, err := ts.client.Livez(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := ts.client.Readyz(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.Equal(t, &rostersdk.HealthChecks{Database: "ok", Signer: "ok", Avatars: "ok"}, ready.Checks)

	jwks, err := ts.client.JWKS(ctx)
	require.NoError(t, err)
	var set jwtx.JWKS
	require.NoError(t, json.Unmarshal(jwks, &set))
	require.Len(t, set.Keys, 1)
	require.Equal(t, "EdDSA", set.Keys[0].Alg)

	resp, err := http.Get(ts.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "roster_http_requests_total")
}
