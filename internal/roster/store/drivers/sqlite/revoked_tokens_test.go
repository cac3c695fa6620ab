package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/stretchr/testify/require"
)

func TestRevokedTokens(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tok := domain.RevokedToken{JTI: "jti-1", UserID: "u1", ExpiresAt: t0.Add(time.Hour)}
	require.NoError(t, s.RevokedTokens().Revoke(ctx, tok))
	require.NoError(t, s.RevokedTokens().Revoke(ctx, tok))
	require.NoError(t, s.RevokedTokens().Revoke(ctx, domain.RevokedToken{JTI: "jti-2", UserID: "u1", ExpiresAt: t0.Add(3 * time.Hour)}))

	revoked, err := s.RevokedTokens().IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, revoked)

	revoked, err = s.RevokedTokens().IsRevoked(ctx, "other")
	require.NoError(t, err)
	require.False(t, revoked)

	n, err := s.RevokedTokens().DeleteExpired(ctx, t0.Add(2*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	revoked, err = s.RevokedTokens().IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, revoked)

	revoked, err = s.RevokedTokens().IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	require.True(t, revoked)
}
