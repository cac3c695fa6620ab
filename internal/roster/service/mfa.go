package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnabled     = errors.New("MFA not enabled for this user")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled for this user")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
)

type MFAService struct {
	Store      store.Store
	Versioning *VersioningService
	Issuer     string // shown in authenticator apps
	Now        func() time.Time
}

func (s *MFAService) user(ctx context.Context, st store.Store, userID string) (domain.User, error) {
	u, err := st.Users().GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// EnrollTOTP generates and stores a pending secret. MFA is not enforced
// until VerifyTOTP confirms a code. Enrolling again replaces a pending
// secret. The secret itself never reaches the audit trail.
func (s *MFAService) EnrollTOTP(ctx context.Context, userID string) (domain.TOTPEnrollment, error) {
	now := nowUTC(s.Now)
	var enr domain.TOTPEnrollment
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := s.user(ctx, tx, userID)
		if err != nil {
			return err
		}
		if u.MFAEnabled() {
			return ErrMFAAlreadyEnabled
		}

		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      s.Issuer,
			AccountName: u.Email,
			Period:      30,
			Digits:      otp.DigitsSix,
			Algorithm:   otp.AlgorithmSHA1,
		})
		if err != nil {
			return fmt.Errorf("generate TOTP key: %w", err)
		}

		secret := key.Secret()
		if err := tx.Users().SetMFA(ctx, userID, &secret, nil, now); err != nil {
			return fmt.Errorf("store MFA secret: %w", err)
		}
		hadPending := u.MFASecret != nil && *u.MFASecret != ""
		u.MFASecret = &secret
		u.UpdatedAt = now

		enr = domain.TOTPEnrollment{
			Secret:  secret,
			URI:     key.URL(),
			Issuer:  s.Issuer,
			Account: u.Email,
		}
		return s.Versioning.record(ctx, tx, u, domain.ActionEnrollMFA,
			map[string]any{"mfaPending": hadPending},
			map[string]any{"mfaPending": true},
		)
	})
	if err != nil {
		return domain.TOTPEnrollment{}, err
	}
	committed(domain.ActionEnrollMFA)

	slogx.FromContext(ctx).Info("MFA enrollment started", slog.String("target_id", userID))
	return enr, nil
}

// VerifyTOTP confirms the pending secret with a code and turns MFA on.
func (s *MFAService) VerifyTOTP(ctx context.Context, userID, code string) error {
	now := nowUTC(s.Now)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := s.user(ctx, tx, userID)
		if err != nil {
			return err
		}
		if u.MFAEnabled() {
			return ErrMFAAlreadyEnabled
		}
		if u.MFASecret == nil || *u.MFASecret == "" {
			return ErrMFANotEnrolled
		}
		if !totp.Validate(code, *u.MFASecret) {
			return ErrInvalidTOTPCode
		}

		if err := tx.Users().SetMFA(ctx, userID, u.MFASecret, &now, now); err != nil {
			return fmt.Errorf("enable MFA: %w", err)
		}
		u.MFAEnabledAt = &now
		u.UpdatedAt = now

		return s.Versioning.record(ctx, tx, u, domain.ActionEnableMFA,
			map[string]any{"mfaEnabled": false},
			map[string]any{"mfaEnabled": true},
		)
	})
	if err != nil {
		return err
	}
	committed(domain.ActionEnableMFA)

	slogx.FromContext(ctx).Info("MFA enabled", slog.String("target_id", userID))
	return nil
}

// DisableTOTP turns MFA off after checking a current code.
func (s *MFAService) DisableTOTP(ctx context.Context, userID, code string) error {
	now := nowUTC(s.Now)
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := s.user(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !u.MFAEnabled() {
			return ErrMFANotEnabled
		}
		if !totp.Validate(code, *u.MFASecret) {
			return ErrInvalidTOTPCode
		}

		if err := tx.Users().SetMFA(ctx, userID, nil, nil, now); err != nil {
			return fmt.Errorf("disable MFA: %w", err)
		}
		u.MFASecret = nil
		u.MFAEnabledAt = nil
		u.UpdatedAt = now

		return s.Versioning.record(ctx, tx, u, domain.ActionDisableMFA,
			map[string]any{"mfaEnabled": true},
			map[string]any{"mfaEnabled": false},
		)
	})
	if err != nil {
		return err
	}
	committed(domain.ActionDisableMFA)

	slogx.FromContext(ctx).Info("MFA disabled", slog.String("target_id", userID))
	return nil
}
