package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/roster/internal/roster/domain"
	"github.com/aussiebroadwan/roster/internal/roster/store"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
)

const (
	reasonUsernameTaken = "username is already taken"
	reasonEmailTaken    = "email is already registered"
)

func normalizeProfile(p domain.Profile) domain.Profile {
	p.Username = strings.TrimSpace(p.Username)
	p.Email = strings.TrimSpace(p.Email)
	p.Name = strings.TrimSpace(p.Name)
	return p
}

// checkProfile applies the field rules to p.
func checkProfile(p domain.Profile) error {
	fields := map[string]string{}
	if r := rostersdk.CheckUsername(p.Username); r != "" {
		fields["username"] = r
	}
	if r := rostersdk.CheckEmail(p.Email); r != "" {
		fields["email"] = r
	}
	if r := rostersdk.CheckName(p.Name); r != "" {
		fields["name"] = r
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkPassword(pw string) error {
	if r := rostersdk.CheckPassword(pw); r != "" {
		return invalid("password", r)
	}
	return nil
}

// checkUnique reports a validation error when another user already holds
// p's username or email. selfID is excluded from the comparison.
func checkUnique(ctx context.Context, st store.Store, p domain.Profile, selfID string) error {
	fields := map[string]string{}

	u, err := st.Users().GetByUsername(ctx, p.Username)
	switch {
	case err == nil && u.ID != selfID:
		fields["username"] = reasonUsernameTaken
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("lookup username: %w", err)
	}

	u, err = st.Users().GetByEmail(ctx, p.Email)
	switch {
	case err == nil && u.ID != selfID:
		fields["email"] = reasonEmailTaken
	case err != nil && !errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("lookup email: %w", err)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// uniqueConflict turns a store unique violation that slipped past
// checkUnique into a validation error.
func uniqueConflict(err error) error {
	if !errors.Is(err, store.ErrAlreadyExists) {
		return err
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "users.username"):
		return invalid("username", reasonUsernameTaken)
	case strings.Contains(msg, "users.email"):
		return invalid("email", reasonEmailTaken)
	}
	return &ValidationError{Fields: map[string]string{"user": "username or email is already in use"}}
}
