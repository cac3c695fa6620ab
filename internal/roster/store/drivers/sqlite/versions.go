package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type versionsRepo struct {
	q *gen.Queries
}

func (r *versionsRepo) Create(
	ctx context.Context,
	userID string,
	p domain.Profile,
	at time.Time,
) (domain.UserVersion, error) {
	row, err := r.q.CreateUserVersion(ctx, gen.CreateUserVersionParams{
		UserID:    userID,
		Username:  p.Username,
		Email:     p.Email,
		Name:      p.Name,
		IsAdmin:   p.IsAdmin,
		CreatedAt: at.UTC(),
	})
	if err != nil {
		return domain.UserVersion{}, mapWriteErr(err)
	}
	return domain.UserVersion{
		ID:            row.ID,
		UserID:        userID,
		Username:      p.Username,
		Email:         p.Email,
		Name:          p.Name,
		IsAdmin:       p.IsAdmin,
		VersionNumber: int(row.VersionNumber),
		CreatedAt:     at.UTC(),
	}, nil
}

func (r *versionsRepo) GetByID(ctx context.Context, id int64) (domain.UserVersion, error) {
	row, err := r.q.GetUserVersionByID(ctx, id)
	if err != nil {
		return domain.UserVersion{}, mapNotFound(err)
	}
	return mapVersion(row), nil
}

func (r *versionsRepo) ListByUser(ctx context.Context, userID string) ([]domain.UserVersion, error) {
	rows, err := r.q.ListUserVersions(ctx, userID)
	if err != nil {
		return nil, err
	}

	versions := make([]domain.UserVersion, len(rows))
	for i, row := range rows {
		versions[i] = mapVersion(row)
	}
	return versions, nil
}
