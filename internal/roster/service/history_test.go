package service_test

import (
	"testing"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/stretchr/testify/require"
)

func TestAliceScenario(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)

	// Create.
	u := e.createUser(t, ctx, "alice", "alice@x.com", "Alice")
	vs, err := e.history.GetUserVersions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, vs, 1)
	require.Equal(t, 1, vs[0].VersionNumber)
	require.Equal(t, "alice", vs[0].Username)
	require.Equal(t, "alice@x.com", vs[0].Email)
	require.Equal(t, "Alice", vs[0].Name)
	require.Len(t, e.auditFor(t, u.ID), 1)
	v1 := vs[0]

	// Update the name.
	_, err = e.users.Update(ctx, u.ID, service.UpdateUserInput{Name: ptr("Alice B")})
	require.NoError(t, err)
	vs, err = e.history.GetUserVersions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, vs, 2)
	require.Equal(t, 2, vs[0].VersionNumber)
	require.Equal(t, "Alice B", vs[0].Name)

	logs := e.auditFor(t, u.ID)
	require.Len(t, logs, 2)
	require.Equal(t, domain.ActionUpdate, logs[0].Action)
	require.Equal(t, "Alice", logs[0].Changes.Old["name"])
	require.Equal(t, "Alice B", logs[0].Changes.New["name"])

	// Restore to version 1.
	res, err := e.history.RestoreUserVersion(ctx, u.ID, v1.ID)
	require.NoError(t, err)
	require.Equal(t, 1, res.RestoredFromVersion)
	require.Equal(t, "Alice", res.User.Name)
	require.Equal(t, 3, res.Version.VersionNumber)

	vs, err = e.history.GetUserVersions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, vs, 3)
	require.Equal(t, 3, vs[0].VersionNumber)
	require.Equal(t, v1.Profile(), vs[0].Profile())

	got, err := e.users.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)

	logs = e.auditFor(t, u.ID)
	require.Equal(t, domain.ActionRestore, logs[0].Action)
	require.Equal(t, "Alice B", logs[0].Changes.Old["name"])
	require.Equal(t, "Alice", logs[0].Changes.New["name"])
}

func TestRestoreRejectsForeignAndMissingVersions(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)
	a := e.createUser(t, ctx, "kate", "kate@x.com", "")
	b := e.createUser(t, ctx, "liam", "liam@x.com", "")

	bv := e.versionsOf(t, b.ID)[0]

	_, err := e.history.RestoreUserVersion(ctx, a.ID, bv.ID)
	require.ErrorIs(t, err, service.ErrVersionNotFound)

	_, err = e.history.RestoreUserVersion(ctx, a.ID, 99999)
	require.ErrorIs(t, err, service.ErrVersionNotFound)

	_, err = e.history.RestoreUserVersion(ctx, "missing", bv.ID)
	require.ErrorIs(t, err, service.ErrUserNotFound)

	_, err = e.history.GetUserVersions(ctx, "missing")
	require.ErrorIs(t, err, service.ErrUserNotFound)

	require.Len(t, e.versionsOf(t, a.ID), 1)
}

func TestRestoreChecksUniqueness(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)
	m := e.createUser(t, ctx, "mia", "mia@x.com", "")
	v1 := e.versionsOf(t, m.ID)[0]

	_, err := e.users.Update(ctx, m.ID, service.UpdateUserInput{Username: ptr("mia2")})
	require.NoError(t, err)
	e.createUser(t, ctx, "mia", "other@x.com", "")

	_, err = e.history.RestoreUserVersion(ctx, m.ID, v1.ID)
	requireValidation(t, err, "username")
	require.Len(t, e.versionsOf(t, m.ID), 2)
}

func TestGetAuditLogsFiltersAndPages(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	_, ctx := e.seedAdmin(t)
	n := e.createUser(t, ctx, "nora", "nora@x.com", "")
	for _, name := range []string{"N1", "N2", "N3"} {
		_, err := e.users.Update(ctx, n.ID, service.UpdateUserInput{Name: ptr(name)})
		require.NoError(t, err)
	}
	_, err := e.users.ToggleStatus(ctx, n.ID, false)
	require.NoError(t, err)

	res, err := e.history.GetAuditLogs(ctx, service.AuditQuery{UserID: n.ID, Action: domain.ActionUpdate})
	require.NoError(t, err)
	require.Equal(t, 3, res.TotalCount)
	for _, l := range res.Logs {
		require.Equal(t, domain.ActionUpdate, l.Action)
	}
	require.Equal(t, "N3", res.Logs[0].Changes.New["name"])
	require.Equal(t, "N1", res.Logs[2].Changes.New["name"])
	for i := 1; i < len(res.Logs); i++ {
		require.False(t, res.Logs[i].CreatedAt.After(res.Logs[i-1].CreatedAt))
	}

	// Exact match only.
	res, err = e.history.GetAuditLogs(ctx, service.AuditQuery{UserID: n.ID, Action: "Upd"})
	require.NoError(t, err)
	require.Equal(t, 0, res.TotalCount)
	require.NotNil(t, res.Logs)

	// No action filter returns every action for the user.
	res, err = e.history.GetAuditLogs(ctx, service.AuditQuery{UserID: n.ID})
	require.NoError(t, err)
	require.Equal(t, 5, res.TotalCount)
	require.Equal(t, domain.ActionStatusChange, res.Logs[0].Action)

	res, err = e.history.GetAuditLogs(ctx, service.AuditQuery{UserID: n.ID, PageSize: 2, PageIndex: 2})
	require.NoError(t, err)
	require.Equal(t, 5, res.TotalCount)
	require.Len(t, res.Logs, 1)
	require.Equal(t, domain.ActionCreate, res.Logs[0].Action)

	res, err = e.history.GetAuditLogs(ctx, service.AuditQuery{PageSize: 1000, PageIndex: -1})
	require.NoError(t, err)
	require.Equal(t, 6, res.TotalCount)
	require.Len(t, res.Logs, 6)
}
