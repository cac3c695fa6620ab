package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapDisabled     = errors.New("bootstrap token not configured")
)

// BootstrapService creates the first administrator.
type BootstrapService struct {
	Store      store.Store
	Versioning *VersioningService
	Token      string // pre-shared bootstrap token; empty disables bootstrap
	Now        func() time.Time
}

// IsBootstrapped reports whether an administrator exists.
func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	n, err := s.Store.Users().CountAdmins(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Bootstrap creates an admin from in when token matches and no admin
// exists yet. The admin's creation is versioned and audited as Create by
// the system actor.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, in RegisterInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.User{}, ErrBootstrapDisabled
	}
	if !cryptox.EqualTokens(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.User{}, ErrBootstrapUnauthorized
	}

	p := normalizeProfile(domain.Profile{Username: in.Username, Email: in.Email, Name: in.Name, IsAdmin: true})
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
		n, err := tx.Users().CountAdmins(ctx)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if n > 0 {
			return ErrBootstrapAlready
		}
		if err := checkUnique(ctx, tx, p, ""); err != nil {
			return err
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return uniqueConflict(err)
		}
		return s.Versioning.record(ctx, tx, u, domain.ActionCreate, nil, profileChanges(p))
	})
	if err != nil {
		if errors.Is(err, ErrBootstrapAlready) {
			l.Warn("attempted bootstrap on already-bootstrapped system")
		}
		return domain.User{}, err
	}
	committed(domain.ActionCreate)

	l.Info("bootstrap admin created", slog.String("target_id", u.ID), slog.String("username", u.Username))
	return u, nil
}
