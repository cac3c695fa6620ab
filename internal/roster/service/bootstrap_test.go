package service_test

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	ctx := context.Background()
	in := service.RegisterInput{Username: "admin", Email: "admin@x.com", Password: testPassword}

	done, err := e.boot.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	_, err = e.boot.Bootstrap(ctx, "wrong", in)
	require.ErrorIs(t, err, service.ErrBootstrapUnauthorized)

	u, err := e.boot.Bootstrap(ctx, "boot-token", in)
	require.NoError(t, err)
	require.True(t, u.IsAdmin)

	logs := e.auditFor(t, u.ID)
	require.Len(t, logs, 1)
	require.Equal(t, domain.ActionCreate, logs[0].Action)
	require.Equal(t, domain.SystemActor, logs[0].ActorName)

	in.Username, in.Email = "admin2", "admin2@x.com"
	_, err = e.boot.Bootstrap(ctx, "boot-token", in)
	require.ErrorIs(t, err, service.ErrBootstrapAlready)

	done, err = e.boot.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.True(t, done)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	t.Parallel()
	e := newEnv(t)
	e.boot.Token = ""

	_, err := e.boot.Bootstrap(context.Background(), "", service.RegisterInput{
		Username: "admin", Email: "admin@x.com", Password: testPassword,
	})
	require.ErrorIs(t, err, service.ErrBootstrapDisabled)
}
