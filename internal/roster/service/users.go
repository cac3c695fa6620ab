package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/avatar"
	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// Paging limits for list and audit queries.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type UserService struct {
	Store      store.Store
	Versioning *VersioningService
	Avatars    avatar.Storage // optional; custom avatars of deleted users are removed
	Now        func() time.Time
}

// CurrentTime is the service clock. Lockout state shown to callers must be
// judged against it so it matches the isActive filter.
func (s *UserService) CurrentTime() time.Time {
	return nowUTC(s.Now)
}

type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Name     string
	IsAdmin  bool
}

// UpdateUserInput holds the fields to change. Nil fields keep their value.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Name     *string
	Password *string
	IsAdmin  *bool
}

type ListQuery struct {
	PageIndex int
	PageSize  int
	Search    string
	IsActive  *bool
}

type ListResult struct {
	Users      []domain.User
	TotalCount int
}

// ExportQuery selects users for export. Format must be "csv" or empty.
type ExportQuery struct {
	Format   string
	Search   string
	IsActive *bool
}

func pageBounds(index, size int) (limit, offset int) {
	if size <= 0 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)
	index = max(index, 0)
	return size, index * size
}

func (s *UserService) Get(ctx context.Context, id string) (domain.User, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// List pages through users matching q, oldest first.
func (s *UserService) List(ctx context.Context, q ListQuery) (ListResult, error) {
	limit, offset := pageBounds(q.PageIndex, q.PageSize)
	f := domain.UserFilter{
		Search:   strings.TrimSpace(q.Search),
		IsActive: q.IsActive,
		Now:      nowUTC(s.Now),
		Limit:    limit,
		Offset:   offset,
	}

	total, err := s.Store.Users().Count(ctx, f)
	if err != nil {
		return ListResult{}, fmt.Errorf("count users: %w", err)
	}
	users, err := s.Store.Users().List(ctx, f)
	if err != nil {
		return ListResult{}, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []domain.User{}
	}
	return ListResult{Users: users, TotalCount: total}, nil
}

// Create adds a user on behalf of an administrator. It writes version 1
// and a Create audit entry in the same transaction.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	p := normalizeProfile(domain.Profile{
		Username: in.Username,
		Email:    in.Email,
		Name:     in.Name,
		IsAdmin:  in.IsAdmin,
	})
	if err := checkProfile(p); err != nil {
		return domain.User{}, err
	}
	if err := checkPassword(in.Password); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := nowUTC(s.Now)
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		PasswordHash: hash,
		AvatarPath:   domain.DefaultAvatarPath,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	u.Apply(p)

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := checkUnique(ctx, tx, p, ""); err != nil {
			return err
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return uniqueConflict(err)
		}
		return s.Versioning.record(ctx, tx, u, domain.ActionCreate, nil, profileChanges(p))
	})
	if err != nil {
		return domain.User{}, err
	}
	committed(domain.ActionCreate)

	l.Info("user created", slog.String("target_id", u.ID), slog.String("username", u.Username))
	return u, nil
}

// Update applies the set fields of in. A new password is hashed and stored
// but not recorded in the audit entry.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	var hash string
	if in.Password != nil && *in.Password != "" {
		if err := checkPassword(*in.Password); err != nil {
			return domain.User{}, err
		}
		h, err := cryptox.HashPassword(*in.Password)
		if err != nil {
			return domain.User{}, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}

	now := nowUTC(s.Now)
	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		old := u.Profile()
		p := old
		if in.Username != nil {
			p.Username = *in.Username
		}
		if in.Email != nil {
			p.Email = *in.Email
		}
		if in.Name != nil {
			p.Name = *in.Name
		}
		if in.IsAdmin != nil {
			p.IsAdmin = *in.IsAdmin
		}
		p = normalizeProfile(p)

		if err := checkProfile(p); err != nil {
			return err
		}
		if old.IsAdmin && !p.IsAdmin {
			if err := ensureOtherAdmin(ctx, tx); err != nil {
				return err
			}
		}
		if err := checkUnique(ctx, tx, p, id); err != nil {
			return err
		}

		if err := tx.Users().Update(ctx, id, p, now); err != nil {
			return uniqueConflict(err)
		}
		if hash != "" {
			if err := tx.Users().UpdatePassword(ctx, id, hash, now); err != nil {
				return fmt.Errorf("update password: %w", err)
			}
			u.PasswordHash = hash
		}
		u.Apply(p)
		u.UpdatedAt = now

		return s.Versioning.record(ctx, tx, u, domain.ActionUpdate, profileChanges(old), profileChanges(p))
	})
	if err != nil {
		return domain.User{}, err
	}
	committed(domain.ActionUpdate)

	l.Info("user updated", slog.String("target_id", id), slog.Bool("password_changed", hash != ""))
	return u, nil
}

// Delete removes a user. The Delete audit entry is written before the row
// goes; versions cascade with it. Callers cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, id string) error {
	l := slogx.FromContext(ctx)

	if a, ok := ActorFromContext(ctx); ok && a.ID == id {
		return ErrSelfDelete
	}

	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}
		if u.IsAdmin {
			if err := ensureOtherAdmin(ctx, tx); err != nil {
				return err
			}
		}

		if err := s.Versioning.CreateAuditLog(ctx, tx, domain.EntityUser, id, domain.ActionDelete, profileChanges(u.Profile()), nil); err != nil {
			return err
		}
		if err := tx.Users().Delete(ctx, id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	committed(domain.ActionDelete)

	if s.Avatars != nil && u.HasCustomAvatar() {
		if name, ok := avatar.NameOf(u.AvatarPath); ok {
			if err := s.Avatars.Delete(ctx, name); err != nil {
				l.Warn("orphaned avatar after delete", slog.String("file", name), slog.Any("err", err))
			}
		}
	}

	l.Info("user deleted", slog.String("target_id", id), slog.String("username", u.Username))
	return nil
}

// ToggleStatus activates or deactivates a user. Deactivation locks the
// account until LockoutForever; activation clears the lockout.
func (s *UserService) ToggleStatus(ctx context.Context, id string, isActive bool) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if a, ok := ActorFromContext(ctx); ok && a.ID == id && !isActive {
		return domain.User{}, ErrSelfDeactivate
	}

	now := nowUTC(s.Now)
	var u domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		u, err = tx.Users().GetByID(ctx, id)
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		old := statusChanges(u, now)
		if isActive {
			u.LockoutEnd = nil
		} else {
			end := domain.LockoutForever
			u.LockoutEnd = &end
		}
		if err := tx.Users().SetLockoutEnd(ctx, id, u.LockoutEnd, now); err != nil {
			return fmt.Errorf("set lockout: %w", err)
		}
		u.UpdatedAt = now

		return s.Versioning.record(ctx, tx, u, domain.ActionStatusChange, old, statusChanges(u, now))
	})
	if err != nil {
		return domain.User{}, err
	}
	committed(domain.ActionStatusChange)

	l.Info("user status changed", slog.String("target_id", id), slog.Bool("active", isActive))
	return u, nil
}

// exportHeader is the first row of a CSV export.
var exportHeader = []string{
	"Id", "Username", "Email", "Name", "IsAdmin", "IsActive",
	"LockoutEnd", "AvatarPath", "LastLogin", "CreateDate", "ModifiedDate",
}

// Export writes every user matching q to w.
func (s *UserService) Export(ctx context.Context, w io.Writer, q ExportQuery) error {
	if f := strings.ToLower(strings.TrimSpace(q.Format)); f != "" && f != "csv" {
		return ErrUnsupportedFormat
	}

	now := nowUTC(s.Now)
	users, err := s.Store.Users().List(ctx, domain.UserFilter{
		Search:   strings.TrimSpace(q.Search),
		IsActive: q.IsActive,
		Now:      now,
	})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, u := range users {
		row := []string{
			u.ID,
			u.Username,
			u.Email,
			u.Name,
			strconv.FormatBool(u.IsAdmin),
			strconv.FormatBool(u.IsActive(now)),
			formatTimePtr(u.LockoutEnd),
			u.AvatarPath,
			formatTimePtr(u.LastLoginAt),
			u.CreatedAt.UTC().Format(time.RFC3339),
			u.UpdatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// ensureOtherAdmin refuses changes that would leave no administrator.
func ensureOtherAdmin(ctx context.Context, st store.Store) error {
	n, err := st.Users().CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if n <= 1 {
		return ErrLastAdmin
	}
	return nil
}
