package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/metrics"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/cryptox"
	"github.com/aussiebroadwan/roster/pkg/idx"
	"github.com/aussiebroadwan/roster/pkg/jwtx"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/pquerna/otp/totp"
)

// Lockout policy for failed logins.
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 5 * time.Minute
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked")
	ErrTooManyAttempts    = fmt.Errorf("%w: too many failed attempts", ErrAccountLocked)
	ErrMFARequired        = errors.New("mfa code required")
)

type AuthService struct {
	Store      store.Store
	Versioning *VersioningService
	Signer     jwtx.Signer
	Issuer     string
	Audience   []string
	TTL        time.Duration // defaults to jwtx.DefaultSessionTTL
	Now        func() time.Time
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
	Code     string // TOTP code, required once MFA is enabled
}

// Session is an issued login token.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      domain.User
}

// Register creates a non-admin account. Like an admin create it writes
// version 1, but the audit action is Register. Anonymous registrations
// are audited as the system actor.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	l := slogx.FromContext(ctx)

	p := normalizeProfile(domain.Profile{Username: in.Username, Email: in.Email, Name: in.Name})
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
		return s.Versioning.record(ctx, tx, u, domain.ActionRegister, nil, profileChanges(p))
	})
	if err != nil {
		return domain.User{}, err
	}
	committed(domain.ActionRegister)

	l.Info("user registered", slog.String("target_id", u.ID), slog.String("username", u.Username))
	return u, nil
}

// Login checks credentials and issues a session token. Five consecutive
// failures lock the account for LockoutDuration. Login bookkeeping is not
// versioned or audited.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (Session, error) {
	l := slogx.FromContext(ctx)
	now := nowUTC(s.Now)

	u, err := s.Store.Users().GetByEmail(ctx, strings.TrimSpace(in.Email))
	if errors.Is(err, store.ErrNotFound) {
		metrics.ObserveLogin(metrics.LoginInvalid)
		return Session{}, ErrInvalidCredentials
	}
	if err != nil {
		return Session{}, fmt.Errorf("get user: %w", err)
	}

	if !u.IsActive(now) {
		metrics.ObserveLogin(metrics.LoginLocked)
		l.Warn("login on locked account", slog.String("target_id", u.ID))
		return Session{}, ErrAccountLocked
	}

	if err := cryptox.VerifyPassword(in.Password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrMismatchedPassword) {
			return Session{}, fmt.Errorf("verify password: %w", err)
		}
		return Session{}, s.failLogin(ctx, u, now, ErrInvalidCredentials)
	}

	if u.MFAEnabled() {
		code := strings.TrimSpace(in.Code)
		if code == "" {
			metrics.ObserveLogin(metrics.LoginMFARequired)
			return Session{}, ErrMFARequired
		}
		if !totp.Validate(code, *u.MFASecret) {
			return Session{}, s.failLogin(ctx, u, now, ErrInvalidTOTPCode)
		}
	}

	if err := s.Store.Users().RecordLoginSuccess(ctx, u.ID, now); err != nil {
		return Session{}, fmt.Errorf("record login: %w", err)
	}
	u.FailedAttempts = 0
	u.LastLoginAt = &now

	claims := jwtx.NewSessionClaims(jwtx.Identity{
		Subject:  u.ID,
		Username: u.Username,
		Email:    u.Email,
		Name:     u.Name,
		IsAdmin:  u.IsAdmin,
	}, s.TTL, s.Issuer, s.Audience, now)

	token, err := s.Signer.Sign(claims)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	metrics.ObserveLogin(metrics.LoginSuccess)

	l.Info("user logged in", slog.String("target_id", u.ID))
	return Session{Token: token, ExpiresAt: claims.Expiry(), User: u}, nil
}

// failLogin counts a failed attempt and locks the account when the limit
// is reached.
func (s *AuthService) failLogin(ctx context.Context, u domain.User, now time.Time, cause error) error {
	l := slogx.FromContext(ctx)

	n, err := s.Store.Users().RecordLoginFailure(ctx, u.ID)
	if err != nil {
		return fmt.Errorf("record login failure: %w", err)
	}
	if n < MaxFailedAttempts {
		metrics.ObserveLogin(metrics.LoginInvalid)
		return cause
	}

	if err := s.Store.Users().Lock(ctx, u.ID, now.Add(LockoutDuration)); err != nil {
		return fmt.Errorf("lock user: %w", err)
	}
	metrics.ObserveLogin(metrics.LoginLocked)
	l.Warn("account locked after failed logins",
		slog.String("target_id", u.ID),
		slog.Int("attempts", n),
	)
	return ErrTooManyAttempts
}

// Logout revokes the token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, claims jwtx.Claims) error {
	if claims.ID == "" {
		return errors.New("token has no jti")
	}
	err := s.Store.RevokedTokens().Revoke(ctx, domain.RevokedToken{
		JTI:       claims.ID,
		UserID:    claims.Subject,
		ExpiresAt: claims.Expiry(),
	})
	if err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	slogx.FromContext(ctx).Info("user logged out", slog.String("jti", claims.ID))
	return nil
}

// IsRevoked reports whether jti was logged out.
func (s *AuthService) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.Store.RevokedTokens().IsRevoked(ctx, jti)
}

// Principal loads the signed in user and checks it may still act. Tokens
// of deleted or locked accounts are refused.
func (s *AuthService) Principal(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	if !u.IsActive(nowUTC(s.Now)) {
		return domain.User{}, ErrAccountLocked
	}
	return u, nil
}
