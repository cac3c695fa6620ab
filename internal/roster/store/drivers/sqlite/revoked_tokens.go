package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type revokedTokensRepo struct {
	q *gen.Queries
}

func (r *revokedTokensRepo) Revoke(ctx context.Context, t domain.RevokedToken) error {
	return r.q.RevokeToken(ctx, gen.RevokeTokenParams{
		Jti:       t.JTI,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt.UTC(),
	})
}

func (r *revokedTokensRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.q.IsTokenRevoked(ctx, jti)
	return n == 1, err
}

func (r *revokedTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return r.q.DeleteExpiredRevokedTokens(ctx, now.UTC())
}
