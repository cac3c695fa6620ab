package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	avatar := u.AvatarPath
	if avatar == "" {
		avatar = domain.DefaultAvatarPath
	}
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		IsAdmin:      u.IsAdmin,
		LockoutEnd:   mapOptionalTime(u.LockoutEnd),
		AvatarPath:   avatar,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	})
	return mapWriteErr(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	row, err := r.q.GetUserByUsername(ctx, username)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) List(ctx context.Context, f domain.UserFilter) ([]domain.User, error) {
	rows, err := r.q.ListUsers(ctx, gen.ListUsersParams{
		Search: escapeLike(f.Search),
		Active: activeFilter(f.IsActive),
		Now:    nowOf(f),
		Lim:    limitOf(f.Limit),
		Off:    int64(max(f.Offset, 0)),
	})
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, len(rows))
	for i, row := range rows {
		users[i] = mapUser(row)
	}
	return users, nil
}

func (r *usersRepo) Count(ctx context.Context, f domain.UserFilter) (int, error) {
	n, err := r.q.CountUsers(ctx, gen.CountUsersParams{
		Search: escapeLike(f.Search),
		Active: activeFilter(f.IsActive),
		Now:    nowOf(f),
	})
	return int(n), err
}

func (r *usersRepo) CountAdmins(ctx context.Context) (int, error) {
	n, err := r.q.CountAdmins(ctx)
	return int(n), err
}

func (r *usersRepo) Update(ctx context.Context, id string, p domain.Profile, updatedAt time.Time) error {
	return mapAffected(r.q.UpdateUserProfile(ctx, gen.UpdateUserProfileParams{
		Username:  p.Username,
		Email:     p.Email,
		Name:      p.Name,
		IsAdmin:   p.IsAdmin,
		UpdatedAt: updatedAt.UTC(),
		ID:        id,
	}))
}

func (r *usersRepo) UpdatePassword(ctx context.Context, id, hash string, updatedAt time.Time) error {
	return mapAffected(r.q.UpdateUserPassword(ctx, gen.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    updatedAt.UTC(),
		ID:           id,
	}))
}

func (r *usersRepo) SetLockoutEnd(ctx context.Context, id string, end *time.Time, updatedAt time.Time) error {
	return mapAffected(r.q.SetUserLockoutEnd(ctx, gen.SetUserLockoutEndParams{
		LockoutEnd: mapOptionalTime(end),
		UpdatedAt:  updatedAt.UTC(),
		ID:         id,
	}))
}

func (r *usersRepo) SetAvatarPath(ctx context.Context, id, path string, updatedAt time.Time) error {
	return mapAffected(r.q.SetUserAvatarPath(ctx, gen.SetUserAvatarPathParams{
		AvatarPath: path,
		UpdatedAt:  updatedAt.UTC(),
		ID:         id,
	}))
}

func (r *usersRepo) SetMFA(
	ctx context.Context,
	id string,
	secret *string,
	enabledAt *time.Time,
	updatedAt time.Time,
) error {
	return mapAffected(r.q.SetUserMFA(ctx, gen.SetUserMFAParams{
		MfaSecret:    mapOptionalString(secret),
		MfaEnabledAt: mapOptionalTime(enabledAt),
		UpdatedAt:    updatedAt.UTC(),
		ID:           id,
	}))
}

func (r *usersRepo) RecordLoginSuccess(ctx context.Context, id string, at time.Time) error {
	return mapAffected(r.q.RecordLoginSuccess(ctx, gen.RecordLoginSuccessParams{
		LastLoginAt: sql.NullTime{Time: at.UTC(), Valid: true},
		ID:          id,
	}))
}

func (r *usersRepo) RecordLoginFailure(ctx context.Context, id string) (int, error) {
	n, err := r.q.IncrementFailedAttempts(ctx, id)
	if err != nil {
		return 0, mapNotFound(err)
	}
	return int(n), nil
}

func (r *usersRepo) Lock(ctx context.Context, id string, until time.Time) error {
	return mapAffected(r.q.LockUser(ctx, gen.LockUserParams{
		LockoutEnd: sql.NullTime{Time: until.UTC(), Valid: true},
		ID:         id,
	}))
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	return mapAffected(r.q.DeleteUser(ctx, id))
}

// activeFilter encodes a tri-state for the list queries: 0 any, 1 active,
// 2 inactive.
func activeFilter(active *bool) int64 {
	switch {
	case active == nil:
		return 0
	case *active:
		return 1
	default:
		return 2
	}
}

func nowOf(f domain.UserFilter) time.Time {
	if f.Now.IsZero() {
		return time.Now().UTC()
	}
	return f.Now.UTC()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(strings.TrimSpace(s))
}
