//go:build e2e

package roster_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

func TestLogoutRevokesToken(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	me, err := admin.Check(ctx)
	require.NoError(t, err)
	require.Equal(t, adminUsername, me.Username)

	require.NoError(t, admin.Logout(ctx))

	_, err = admin.Check(ctx)
	requireStatus(t, err, http.StatusUnauthorized)
}

func TestLockoutAfterFailedLogins(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	bootstrapAdmin(t, client)
	ctx := t.Context()

	bad := rostersdk.LoginRequest{Email: adminEmail, Password: "Wrong123!"}
	for i := range 4 {
		_, err := client.Login(ctx, bad)
		requireStatus(t, err, http.StatusUnauthorized)
		t.Logf("failed attempt %d rejected", i+1)
	}

	_, err := client.Login(ctx, bad)
	apiErr := requireStatus(t, err, http.StatusBadRequest)
	require.Equal(t, rostersdk.ErrorCodeAccountLock, apiErr.Code)

	// The right password does not help while locked.
	_, err = client.Login(ctx, rostersdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	apiErr = requireStatus(t, err, http.StatusBadRequest)
	require.Equal(t, rostersdk.ErrorCodeAccountLock, apiErr.Code)
}

func TestDeactivatedUserLosesSession(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	u, err := client.Register(ctx, rostersdk.RegisterRequest{
		Username: "frank",
		Email:    "frank@roster.test",
		Password: "Frank123!",
	})
	require.NoError(t, err)
	frank := login(t, client, "frank@roster.test", "Frank123!")

	_, err = admin.SetStatus(ctx, u.ID, false)
	require.NoError(t, err)

	_, err = frank.Check(ctx)
	requireStatus(t, err, http.StatusUnauthorized)

	_, err = client.Login(ctx, rostersdk.LoginRequest{Email: "frank@roster.test", Password: "Frank123!"})
	requireStatus(t, err, http.StatusBadRequest)
}

func TestBootstrapIsOneShot(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	ctx := t.Context()

	_, err := client.Bootstrap(ctx, "wrong-token", rostersdk.BootstrapRequest{
		Username: adminUsername, Email: adminEmail, Password: adminPassword,
	})
	requireStatus(t, err, http.StatusUnauthorized)

	bootstrapAdmin(t, client)

	_, err = client.Bootstrap(ctx, bootstrapToken, rostersdk.BootstrapRequest{
		Username: "second", Email: "second@roster.test", Password: adminPassword,
	})
	requireStatus(t, err, http.StatusUnauthorized)
}
