//go:build e2e

package roster_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

// TestUserLifecycleWithHistory walks a user through create, update,
// restore and delete, checking versions and audit entries along the way.
func TestUserLifecycleWithHistory(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	alice, err := admin.CreateUser(ctx, rostersdk.CreateUserRequest{
		Username: "alice",
		Email:    "alice@roster.test",
		Password: "Alice123!",
		Name:     "Alice",
	})
	require.NoError(t, err)
	require.False(t, alice.IsAdmin)

	newName := "Alice B"
	updated, err := admin.UpdateUser(ctx, alice.ID, rostersdk.UpdateUserRequest{Name: &newName})
	require.NoError(t, err)
	require.Equal(t, "Alice B", updated.Name)

	versions, err := admin.History(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	require.Equal(t, 2, versions[0].VersionNumber)
	first := versions[1]
	require.Equal(t, "Alice", first.Name)

	restored, err := admin.Restore(ctx, alice.ID, first.VersionID)
	require.NoError(t, err)
	require.Equal(t, 1, restored.RestoredFromVersion)
	require.Equal(t, "Alice", restored.User.Name)

	versions, err = admin.History(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)

	logs, err := admin.AuditLogs(ctx, rostersdk.AuditQuery{UserID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, 3, logs.TotalCount)
	require.Equal(t, "Restore", logs.Logs[0].Action)
	changes, err := logs.Logs[0].DecodeChanges()
	require.NoError(t, err)
	require.Equal(t, "Alice B", changes.Old["name"])
	require.Equal(t, "Alice", changes.New["name"])
	require.Equal(t, adminUsername, logs.Logs[0].UserName)

	require.NoError(t, admin.DeleteUser(ctx, alice.ID))
	_, err = admin.GetUser(ctx, alice.ID)
	requireStatus(t, err, http.StatusNotFound)

	// Versions go with the account, the audit trail stays.
	_, err = admin.History(ctx, alice.ID)
	requireStatus(t, err, http.StatusNotFound)

	logs, err = admin.AuditLogs(ctx, rostersdk.AuditQuery{UserID: alice.ID})
	require.NoError(t, err)
	require.Equal(t, 4, logs.TotalCount)
	require.Equal(t, "Delete", logs.Logs[0].Action)
}

func TestListAndExport(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	admin := bootstrapAdmin(t, client)
	ctx := t.Context()

	for _, name := range []string{"bob", "carol", "dave"} {
		_, err := admin.CreateUser(ctx, rostersdk.CreateUserRequest{
			Username: name,
			Email:    name + "@roster.test",
			Password: "Passw0rd!",
		})
		require.NoError(t, err)
	}

	page, err := admin.ListUsers(ctx, rostersdk.ListUsersParams{PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 4, page.TotalCount)
	require.Len(t, page.Users, 2)

	found, err := admin.ListUsers(ctx, rostersdk.ListUsersParams{Search: "car"})
	require.NoError(t, err)
	require.Equal(t, 1, found.TotalCount)
	require.Equal(t, "carol", found.Users[0].Username)

	_, err = admin.SetStatus(ctx, found.Users[0].ID, false)
	require.NoError(t, err)

	inactive := false
	off, err := admin.ListUsers(ctx, rostersdk.ListUsersParams{IsActive: &inactive})
	require.NoError(t, err)
	require.Equal(t, 1, off.TotalCount)

	csv, err := admin.ExportUsersCSV(ctx, rostersdk.ListUsersParams{})
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csv)), "\n")
	require.Len(t, lines, 5, "header plus four users")
}

func TestNonAdminCannotManageUsers(t *testing.T) {
	baseURL := setupRosterContainer(t)
	client := rostersdk.NewClient(baseURL)
	bootstrapAdmin(t, client)
	ctx := t.Context()

	_, err := client.Register(ctx, rostersdk.RegisterRequest{
		Username: "eve",
		Email:    "eve@roster.test",
		Password: "Eve12345!",
	})
	require.NoError(t, err)
	eve := login(t, client, "eve@roster.test", "Eve12345!")

	_, err = eve.ListUsers(ctx, rostersdk.ListUsersParams{})
	requireStatus(t, err, http.StatusForbidden)

	_, err = eve.AuditLogs(ctx, rostersdk.AuditQuery{})
	requireStatus(t, err, http.StatusForbidden)
}
